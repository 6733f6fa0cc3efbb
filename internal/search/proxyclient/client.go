package proxyclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/search"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	SearchPath     = "/api/search"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client - клиент прокси /api/search, транспорт для Fetcher.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

func (c *Client) SearchPage(ctx context.Context, req domain.PageRequest) (*domain.ResultPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	u.Path = SearchPath

	q := u.Query()
	q.Set("query", req.Query)
	q.Set("display", strconv.Itoa(req.Display))
	q.Set("start", strconv.Itoa(req.Start))
	q.Set("sort", req.Sort.ProviderValue())
	q.Set("type", req.Type.ProviderValue())
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", search.ErrNetwork, err)
	}

	page, err := search.DecodePage(body, resp.StatusCode)

	var upErr *search.UpstreamError
	switch {
	case errors.As(err, &upErr):
		return nil, err
	case resp.StatusCode != http.StatusOK:
		// тело без поля error - все равно фатально
		return nil, &search.UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("API call failed with status %d", resp.StatusCode),
		}
	case err != nil:
		c.logger.Debug("proxy returned malformed page",
			zap.Int("start", req.Start),
			zap.Error(err),
		)
		return nil, err
	}

	return page, nil
}

var _ search.PageClient = (*Client)(nil)
