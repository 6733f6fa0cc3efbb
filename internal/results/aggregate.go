// Package results - чистые функции конвейера выдачи: склейка страниц,
// локальные фильтры и разбиение на страницы отображения.
package results

import (
	"sort"

	"github.com/kitbuilder587/naver-search/internal/domain"
)

// Aggregate склеивает страницы по возрастанию Start.
// Дубликаты между страницами не удаляются.
func Aggregate(pages ...*domain.ResultPage) []domain.SearchItem {
	ordered := make([]*domain.ResultPage, 0, len(pages))
	total := 0
	for _, p := range pages {
		if p == nil {
			continue
		}
		ordered = append(ordered, p)
		total += len(p.Items)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	items := make([]domain.SearchItem, 0, total)
	for _, p := range ordered {
		items = append(items, p.Items...)
	}
	return items
}
