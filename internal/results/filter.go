package results

import (
	"strings"
	"time"

	"github.com/kitbuilder587/naver-search/internal/domain"
)

// Criteria - локальные фильтры. RecencyDays == nil - фильтр по дате выключен.
type Criteria struct {
	SubQuery    string
	RecencyDays *int
}

func (c Criteria) IsEmpty() bool {
	return c.SubQuery == "" && c.RecencyDays == nil
}

// RecencyCutoff - граница фильтра: now минус days календарных дней
func RecencyCutoff(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// Filter возвращает новый срез, вход не меняется.
// Подстрока ищется без учета регистра в Title или Description вместе с разметкой.
// При активном фильтре по дате записи без PublishedAt отбрасываются.
func Filter(items []domain.SearchItem, c Criteria, now time.Time) []domain.SearchItem {
	needle := strings.ToLower(c.SubQuery)

	var cutoff time.Time
	if c.RecencyDays != nil {
		cutoff = RecencyCutoff(now, *c.RecencyDays)
	}

	out := make([]domain.SearchItem, 0, len(items))
	for _, item := range items {
		if needle != "" && !matchesSubQuery(item, needle) {
			continue
		}
		if c.RecencyDays != nil && !publishedSince(item, cutoff) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSubQuery(item domain.SearchItem, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(item.Title), lowerNeedle) ||
		strings.Contains(strings.ToLower(item.Description), lowerNeedle)
}

func publishedSince(item domain.SearchItem, cutoff time.Time) bool {
	return item.PublishedAt != nil && !item.PublishedAt.Before(cutoff)
}
