package results

import "github.com/kitbuilder587/naver-search/internal/domain"

const (
	DefaultPageSize = domain.PageSize
	MaxPageButtons  = 10
)

func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage приводит номер страницы к [1, max(TotalPages, 1)]
func ClampPage(page, n, pageSize int) int {
	last := TotalPages(n, pageSize)
	if last < 1 {
		last = 1
	}
	if page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}

// Paginate - срез [(page-1)*size, page*size) после клампа страницы.
// Возвращает подсрез входа, не копию.
func Paginate(items []domain.SearchItem, pageSize, page int) []domain.SearchItem {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page = ClampPage(page, len(items), pageSize)

	from := (page - 1) * pageSize
	if from >= len(items) {
		return items[len(items):]
	}
	to := from + pageSize
	if to > len(items) {
		to = len(items)
	}
	return items[from:to:to]
}

// PageWindow - номера кнопок пагинации: не больше MaxPageButtons,
// при current > 5 окно сдвигается так, чтобы current был по центру,
// и не выходит за totalPages. Если страниц не больше MaxPageButtons,
// окно не сдвигается (иначе появлялись бы номера <= 0).
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}

	count := totalPages
	if count > MaxPageButtons {
		count = MaxPageButtons
	}
	half := MaxPageButtons / 2

	pages := make([]int, 0, count)
	for i := 0; i < count; i++ {
		page := i + 1
		if current > half && totalPages > MaxPageButtons {
			page = min(current-half+i, totalPages-(MaxPageButtons-1)+i)
		}
		if page > totalPages {
			continue
		}
		pages = append(pages, page)
	}
	return pages
}
