package domain

import (
	"strings"
)

const (
	MaxQueryLength = 1000

	// PageSize - максимум записей за один запрос к провайдеру
	PageSize = 100
	// MaxResults - максимальный адресуемый offset провайдера
	MaxResults = 1000
)

type SearchType string

const (
	SearchNews  SearchType = "news"
	SearchForum SearchType = "forum"
)

func (t SearchType) IsValid() bool {
	return t == SearchNews || t == SearchForum
}

// ProviderValue - значение параметра type для прокси
func (t SearchType) ProviderValue() string {
	if t == SearchForum {
		return "cafe"
	}
	return "news"
}

func ParseSearchType(s string) (SearchType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "news":
		return SearchNews, nil
	case "forum", "cafe":
		return SearchForum, nil
	default:
		return "", ErrInvalidType
	}
}

type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortDate      SortMode = "date"
)

func (m SortMode) IsValid() bool {
	return m == SortRelevance || m == SortDate
}

// ProviderValue - значение параметра sort для прокси (sim|date)
func (m SortMode) ProviderValue() string {
	if m == SortDate {
		return "date"
	}
	return "sim"
}

func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance", "sim":
		return SortRelevance, nil
	case "date":
		return SortDate, nil
	default:
		return "", ErrInvalidSort
	}
}

type SearchQuery struct {
	Text string
	Type SearchType
	Sort SortMode
}

func (q *SearchQuery) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuery
	}

	if len(q.Text) > MaxQueryLength {
		return ErrQueryTooLong
	}

	if !q.Type.IsValid() {
		return ErrInvalidType
	}

	if !q.Sort.IsValid() {
		return ErrInvalidSort
	}

	return nil
}

// Sanitize подставляет дефолты и обрезает пробелы
func (q *SearchQuery) Sanitize() {
	q.Text = strings.TrimSpace(q.Text)
	if q.Type == "" {
		q.Type = SearchNews
	}
	if q.Sort == "" {
		q.Sort = SortRelevance
	}
}

// PageRequest - запрос одной страницы выдачи
type PageRequest struct {
	Query   string
	Type    SearchType
	Sort    SortMode
	Start   int
	Display int
}

func (r PageRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if r.Start < 1 || r.Display < 1 || r.Display > PageSize {
		return ErrInvalidPageParam
	}
	return nil
}
