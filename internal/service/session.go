package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/results"
)

// ErrStaleSearch - поиск завершился, но пока он шел, был запущен более новый;
// его результат отброшен.
var ErrStaleSearch = errors.New("search superseded by a newer one")

// View - все, что нужно для отрисовки текущего состояния сессии
type View struct {
	Query       domain.SearchQuery
	Items       []domain.SearchItem
	CurrentPage int
	TotalPages  int
	PageWindow  []int
	// Offset - сколько отфильтрованных записей идет до текущей страницы
	Offset int

	TotalCount    int
	FilteredCount int
	SubQuery      string
	RecencyDays   *int

	Loading   bool
	Searched  bool
	NoResults bool
	Err       error
	Message   string
}

func (v *View) HasPrev() bool { return v.CurrentPage > 1 }

func (v *View) HasNext() bool { return v.CurrentPage < v.TotalPages }

// ShowPagination - контрол страниц показывается только если страниц больше одной
func (v *View) ShowPagination() bool { return v.TotalPages > 1 }

// ShowFilters - фильтры доступны, когда есть что фильтровать
func (v *View) ShowFilters() bool { return v.TotalCount > 0 && !v.Loading }

// ShowRecency - фильтр по дате имеет смысл только для новостей
func (v *View) ShowRecency() bool { return v.ShowFilters() && v.Query.Type == domain.SearchNews }

type SessionOption func(*Session)

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func WithPageSize(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// Session - состояние одного клиента: последний запрос, вся выдача,
// локальные фильтры и текущая страница. Безопасна для конкурентного доступа.
type Session struct {
	mu       sync.Mutex
	searcher Searcher
	now      func() time.Time
	pageSize int

	query    domain.SearchQuery
	items    []domain.SearchItem
	criteria results.Criteria
	page     int
	loading  bool
	searched bool
	err      error

	gen    uint64
	cancel context.CancelFunc

	filtered      []domain.SearchItem
	filteredValid bool
	view          *View
}

func NewSession(searcher Searcher, opts ...SessionOption) *Session {
	s := &Session{
		searcher: searcher,
		now:      time.Now,
		pageSize: results.DefaultPageSize,
		query:    domain.SearchQuery{Type: domain.SearchNews, Sort: domain.SortRelevance},
		page:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search запускает новый поиск и заменяет выдачу целиком, когда придут все страницы.
// Предыдущий незавершенный поиск отменяется; если за время поиска стартовал
// более новый, результат не коммитится и возвращается ErrStaleSearch.
func (s *Session) Search(ctx context.Context, q domain.SearchQuery) error {
	q.Sanitize()

	s.mu.Lock()
	if err := q.Validate(); err != nil {
		// невалидный запрос тоже вытесняет незавершенный поиск
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
			s.gen++
		}
		s.loading = false
		s.err = err
		s.invalidatePage()
		s.mu.Unlock()
		return err
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.query = q
	s.items = nil
	s.criteria = results.Criteria{}
	s.page = 1
	s.loading = true
	s.searched = true
	s.err = nil
	s.invalidateFiltered()
	s.mu.Unlock()

	items, err := s.searcher.FetchAll(ctx, q)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return ErrStaleSearch
	}

	s.cancel = nil
	s.loading = false
	s.err = err
	if err == nil {
		s.items = items
	}
	s.invalidateFiltered()

	return err
}

// SetSubQuery меняет фильтр "поиск в результатах" и сбрасывает страницу на первую
func (s *Session) SetSubQuery(sub string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria.SubQuery = sub
	s.page = 1
	s.invalidateFiltered()
}

// SetRecency: nil - без фильтра. Сбрасывает страницу на первую.
func (s *Session) SetRecency(days *int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if days != nil {
		d := *days
		days = &d
	}
	s.criteria.RecencyDays = days
	s.page = 1
	s.invalidateFiltered()
}

// SetPage - номер не проверяется, приводится к допустимому при чтении
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = page
	s.invalidatePage()
}

func (s *Session) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := results.TotalPages(len(s.filteredLocked()), s.pageSize)
	s.page = min(max(total, 1), s.clampedPageLocked()+1)
	s.invalidatePage()
}

func (s *Session) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = max(1, s.clampedPageLocked()-1)
	s.invalidatePage()
}

// Criteria - текущие локальные фильтры
func (s *Session) Criteria() results.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

func (s *Session) Query() domain.SearchQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// View возвращает снимок для отрисовки. Снимок кешируется до следующего изменения.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != nil {
		return *s.view
	}

	filtered := s.filteredLocked()
	page := s.clampedPageLocked()
	total := results.TotalPages(len(filtered), s.pageSize)

	v := &View{
		Query:         s.query,
		Items:         results.Paginate(filtered, s.pageSize, page),
		CurrentPage:   page,
		TotalPages:    total,
		PageWindow:    results.PageWindow(page, total),
		Offset:        (page - 1) * s.pageSize,
		TotalCount:    len(s.items),
		FilteredCount: len(filtered),
		SubQuery:      s.criteria.SubQuery,
		RecencyDays:   s.criteria.RecencyDays,
		Loading:       s.loading,
		Searched:      s.searched,
		NoResults:     errors.Is(s.err, domain.ErrNoResults),
		Err:           s.err,
		Message:       MessageFor(s.err),
	}
	s.view = v
	return *v
}

// Close отменяет незавершенный поиск
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

func (s *Session) filteredLocked() []domain.SearchItem {
	if !s.filteredValid {
		s.filtered = results.Filter(s.items, s.criteria, s.now())
		s.filteredValid = true
	}
	return s.filtered
}

func (s *Session) clampedPageLocked() int {
	return results.ClampPage(s.page, len(s.filteredLocked()), s.pageSize)
}

func (s *Session) invalidateFiltered() {
	s.filteredValid = false
	s.filtered = nil
	s.invalidatePage()
}

func (s *Session) invalidatePage() {
	s.view = nil
}
