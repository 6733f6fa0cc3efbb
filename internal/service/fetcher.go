package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/metrics"
	"github.com/kitbuilder587/naver-search/internal/results"
	"github.com/kitbuilder587/naver-search/internal/search"
)

// Searcher - полный поиск: все страницы одного запроса, склеенные по рангу
type Searcher interface {
	FetchAll(ctx context.Context, q domain.SearchQuery) ([]domain.SearchItem, error)
}

type FetcherConfig struct {
	PageSize   int
	MaxResults int
	Timeout    time.Duration
}

type FetcherDeps struct {
	Client  search.PageClient
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Config  FetcherConfig
}

type Fetcher struct {
	client  search.PageClient
	logger  *zap.Logger
	metrics *metrics.Metrics
	config  FetcherConfig
}

func NewFetcher(deps FetcherDeps) *Fetcher {
	if deps.Config.PageSize <= 0 || deps.Config.PageSize > domain.PageSize {
		deps.Config.PageSize = domain.PageSize
	}
	if deps.Config.MaxResults <= 0 || deps.Config.MaxResults > domain.MaxResults {
		deps.Config.MaxResults = domain.MaxResults
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Fetcher{
		client:  deps.Client,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		config:  deps.Config,
	}
}

// RemainingPages - сколько страниц нужно после первой при данном total
func RemainingPages(total, pageSize, maxResults int) int {
	if total > maxResults {
		total = maxResults
	}
	rest := total - pageSize
	if rest <= 0 {
		return 0
	}
	return (rest + pageSize - 1) / pageSize
}

// FetchAll: первая страница синхронно, остальные параллельно.
// Любая ошибка любой страницы - ошибка всего поиска, частичных результатов нет.
// Пустая выдача - domain.ErrNoResults.
func (f *Fetcher) FetchAll(ctx context.Context, q domain.SearchQuery) ([]domain.SearchItem, error) {
	startTime := time.Now()

	q.Sanitize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if f.metrics != nil {
		f.metrics.IncSearchesInFlight()
		defer f.metrics.DecSearchesInFlight()
	}

	if f.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.config.Timeout)
		defer cancel()
	}

	items, err := f.fetchAll(ctx, q)
	f.recordSearch(err, time.Since(startTime))
	if err != nil {
		return nil, err
	}

	f.logger.Info("search completed",
		zap.String("type", string(q.Type)),
		zap.String("sort", string(q.Sort)),
		zap.Int("items", len(items)),
		zap.Duration("took", time.Since(startTime)),
	)

	return items, nil
}

func (f *Fetcher) fetchAll(ctx context.Context, q domain.SearchQuery) ([]domain.SearchItem, error) {
	first, err := f.fetchPage(ctx, q, 1)
	if err != nil {
		return nil, err
	}

	remaining := RemainingPages(first.Total, f.config.PageSize, f.config.MaxResults)
	if f.metrics != nil {
		f.metrics.RecordFanOut(remaining)
	}

	f.logger.Debug("first page fetched",
		zap.Int("total", first.Total),
		zap.Int("remaining_pages", remaining),
	)

	pages := make([]*domain.ResultPage, remaining+1)
	pages[0] = first

	if remaining > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for i := 1; i <= remaining; i++ {
			i := i
			start := i*f.config.PageSize + 1
			g.Go(func() error {
				p, err := f.fetchPage(gctx, q, start)
				if err != nil {
					return err
				}
				pages[i] = p
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	items := results.Aggregate(pages...)
	if len(items) > f.config.MaxResults {
		items = items[:f.config.MaxResults]
	}

	if len(items) == 0 {
		return nil, domain.ErrNoResults
	}

	return items, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, q domain.SearchQuery, start int) (*domain.ResultPage, error) {
	p, err := f.client.SearchPage(ctx, domain.PageRequest{
		Query:   q.Text,
		Type:    q.Type,
		Sort:    q.Sort,
		Start:   start,
		Display: f.config.PageSize,
	})
	if err != nil {
		if f.metrics != nil {
			f.metrics.RecordPageFetch("error")
		}
		if !errors.Is(err, context.Canceled) {
			f.logger.Warn("page fetch failed",
				zap.Int("start", start),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("fetch page start=%d: %w", start, err)
	}

	if f.metrics != nil {
		f.metrics.RecordPageFetch("success")
	}

	// порядок склейки - по запрошенному offset, а не по тому, что вернул сервер
	p.Start = start
	return p, nil
}

func (f *Fetcher) recordSearch(err error, took time.Duration) {
	if f.metrics == nil {
		return
	}
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNoResults):
		outcome = "no_results"
	case errors.Is(err, context.Canceled):
		outcome = "canceled"
	default:
		outcome = "error"
	}
	f.metrics.RecordSearch(outcome, took)
}
