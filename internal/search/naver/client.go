package naver

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
	DefaultBaseURL = "https://openapi.naver.com"

	headerClientID     = "X-Naver-Client-Id"
	headerClientSecret = "X-Naver-Client-Secret"
)

var ErrMissingCredentials = errors.New("naver client id and secret are required")

type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

// Client ходит в Naver Search API с заголовками авторизации.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	client       *http.Client
	logger       *zap.Logger
}

func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      cfg.BaseURL,
		client:       &http.Client{Timeout: cfg.Timeout},
		logger:       logger,
	}, nil
}

// Params - параметры запроса в том виде, в каком их прислал клиент прокси.
// Пустые значения не передаются.
type Params struct {
	Query   string
	Display string
	Start   string
	Sort    string
	Type    string
}

// Response - сырой ответ апстрима
type Response struct {
	Status int
	Body   []byte
}

func endpointPath(searchType string) string {
	switch searchType {
	case "cafe", "forum", "cafearticle":
		return "/v1/search/cafearticle.json"
	default:
		return "/v1/search/news.json"
	}
}

// Fetch выполняет запрос и возвращает тело без изменений.
// Не-200 превращается в *search.UpstreamError с сырым текстом апстрима,
// транспортные ошибки оборачиваются в search.ErrNetwork.
func (c *Client) Fetch(ctx context.Context, p Params) (*Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	u.Path = endpointPath(p.Type)

	q := u.Query()
	q.Set("query", p.Query)
	if p.Display != "" {
		q.Set("display", p.Display)
	}
	if p.Start != "" {
		q.Set("start", p.Start)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set(headerClientID, c.clientID)
	httpReq.Header.Set(headerClientSecret, c.clientSecret)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", search.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("naver api returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("type", p.Type),
			zap.String("start", p.Start),
		)
		return nil, &search.UpstreamError{
			Status:  resp.StatusCode,
			Message: "Naver API error: " + string(body),
		}
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}

// SearchPage - типизированная обертка над Fetch, реализует search.PageClient
func (c *Client) SearchPage(ctx context.Context, req domain.PageRequest) (*domain.ResultPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.Fetch(ctx, Params{
		Query:   req.Query,
		Display: strconv.Itoa(req.Display),
		Start:   strconv.Itoa(req.Start),
		Sort:    req.Sort.ProviderValue(),
		Type:    req.Type.ProviderValue(),
	})
	if err != nil {
		return nil, err
	}

	return search.DecodePage(resp.Body, resp.Status)
}

var _ search.PageClient = (*Client)(nil)
