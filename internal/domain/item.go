package domain

import "time"

// SearchItem - одна запись выдачи.
// Title и Description могут содержать разметку провайдера (<b>...</b>).
type SearchItem struct {
	Title        string
	OriginalLink string
	Link         string
	Description  string

	// только для новостей
	PublishedAt *time.Time

	// только для постов из кафе
	SourceName string
	SourceURL  string
}

func (i SearchItem) IsNews() bool {
	return i.PublishedAt != nil
}

func (i SearchItem) IsForumPost() bool {
	return i.SourceName != "" || i.SourceURL != ""
}

// ResultPage - один ответ провайдера.
// Total - оценка провайдера, может быть больше реального корпуса.
type ResultPage struct {
	Items   []SearchItem
	Total   int
	Start   int
	Display int
}
