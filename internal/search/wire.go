package search

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kitbuilder587/naver-search/internal/domain"
)

// формат даты в выдаче новостей: "Mon, 02 Jan 2006 15:04:05 -0700"
const pubDateLayout = time.RFC1123Z

// WireResponse - JSON ответа провайдера, прокси отдает его как есть.
type WireResponse struct {
	LastBuildDate string     `json:"lastBuildDate,omitempty"`
	Items         []WireItem `json:"items"`
	Total         int        `json:"total"`
	Start         int        `json:"start"`
	Display       int        `json:"display"`
	Error         string     `json:"error,omitempty"`
}

type WireItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink,omitempty"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate,omitempty"`
	CafeName     string `json:"cafename,omitempty"`
	CafeURL      string `json:"cafeurl,omitempty"`
}

// DecodePage разбирает тело ответа. Поле error в теле - ошибка даже при 200.
func DecodePage(body []byte, status int) (*domain.ResultPage, error) {
	var wire WireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if wire.Error != "" {
		return nil, &UpstreamError{Status: status, Message: wire.Error}
	}

	return wire.ToPage(), nil
}

func (w *WireResponse) ToPage() *domain.ResultPage {
	items := make([]domain.SearchItem, len(w.Items))
	for i, it := range w.Items {
		items[i] = it.ToItem()
	}

	return &domain.ResultPage{
		Items:   items,
		Total:   w.Total,
		Start:   w.Start,
		Display: w.Display,
	}
}

func (it WireItem) ToItem() domain.SearchItem {
	item := domain.SearchItem{
		Title:        it.Title,
		OriginalLink: it.OriginalLink,
		Link:         it.Link,
		Description:  it.Description,
		SourceName:   it.CafeName,
		SourceURL:    it.CafeURL,
	}
	if ts, ok := ParsePubDate(it.PubDate); ok {
		item.PublishedAt = &ts
	}
	return item
}

// ParsePubDate - битая дата считается отсутствующей
func ParsePubDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{pubDateLayout, time.RFC1123, time.RFC3339} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// FromItem - обратное преобразование, нужно моку и тестам
func FromItem(item domain.SearchItem) WireItem {
	w := WireItem{
		Title:        item.Title,
		OriginalLink: item.OriginalLink,
		Link:         item.Link,
		Description:  item.Description,
		CafeName:     item.SourceName,
		CafeURL:      item.SourceURL,
	}
	if item.PublishedAt != nil {
		w.PubDate = item.PublishedAt.Format(pubDateLayout)
	}
	return w
}
