// Package proxy - GET /api/search: подставляет ключи Naver и пересылает запрос.
// Тело ответа апстрима отдается без изменений.
package proxy

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kitbuilder587/naver-search/internal/config"
	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/metrics"
	"github.com/kitbuilder587/naver-search/internal/search"
	"github.com/kitbuilder587/naver-search/internal/search/naver"
)

const (
	MsgMissingCredentials = "Naver API credentials are not set in environment variables."
	MsgMissingQuery       = "Query parameter is required."
	MsgUpstreamFailed     = "Failed to fetch from Naver API."
)

type Upstream interface {
	Fetch(ctx context.Context, p naver.Params) (*naver.Response, error)
}

type Handler struct {
	upstream Upstream
	credErr  error
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewHandler проверяет ключи один раз. Без ключей хендлер все равно создается
// и на каждый запрос отвечает 500, в апстрим не ходит.
func NewHandler(cfg config.NaverConfig, logger *zap.Logger, m *metrics.Metrics) *Handler {
	h := &Handler{logger: logger, metrics: m}

	logger.Info("naver credentials",
		zap.String("client_id", config.MaskSecret(cfg.ClientID)),
		zap.String("client_secret", config.MaskSecret(cfg.ClientSecret)),
	)

	if err := cfg.Validate(); err != nil {
		logger.Error("proxy started without credentials, every search will fail", zap.Error(err))
		h.credErr = err
		return h
	}

	client, err := naver.New(naver.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		BaseURL:      cfg.BaseURL,
		Timeout:      cfg.Timeout,
	}, logger)
	if err != nil {
		h.credErr = err
		return h
	}
	h.upstream = client
	return h
}

func NewHandlerWithUpstream(up Upstream, logger *zap.Logger, m *metrics.Metrics) *Handler {
	return &Handler{upstream: up, logger: logger, metrics: m}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/api/search", h.Search)
}

func (h *Handler) Search(c *gin.Context) {
	startTime := time.Now()
	status := h.search(c)

	if h.metrics != nil {
		h.metrics.RecordProxyRequest(typeLabel(c.Query("type")), strconv.Itoa(status), time.Since(startTime))
	}
}

// typeLabel - метка метрики только из известного набора, сырой ввод в метки не попадает
func typeLabel(raw string) string {
	t, err := domain.ParseSearchType(raw)
	if err != nil {
		return "invalid"
	}
	return t.ProviderValue()
}

func (h *Handler) search(c *gin.Context) int {
	if h.credErr != nil || h.upstream == nil {
		return abort(c, http.StatusInternalServerError, MsgMissingCredentials)
	}

	params := naver.Params{
		Query:   c.Query("query"),
		Display: c.Query("display"),
		Start:   c.Query("start"),
		Sort:    c.Query("sort"),
		Type:    c.Query("type"),
	}
	if params.Query == "" {
		return abort(c, http.StatusBadRequest, MsgMissingQuery)
	}

	upstreamStart := time.Now()
	resp, err := h.upstream.Fetch(c.Request.Context(), params)
	if err != nil {
		var upErr *search.UpstreamError
		if errors.As(err, &upErr) {
			h.recordUpstream(strconv.Itoa(upErr.Status), upstreamStart)
			h.logger.Warn("upstream error forwarded",
				zap.Int("status", upErr.Status),
				zap.String("type", params.Type),
			)
			return abort(c, upErr.Status, upErr.Message)
		}

		h.recordUpstream("network_error", upstreamStart)
		h.logger.Error("upstream request failed",
			zap.Error(err),
			zap.String("type", params.Type),
		)
		return abort(c, http.StatusInternalServerError, MsgUpstreamFailed)
	}

	h.recordUpstream("200", upstreamStart)
	c.Data(http.StatusOK, "application/json", resp.Body)
	return http.StatusOK
}

func (h *Handler) recordUpstream(status string, since time.Time) {
	if h.metrics != nil {
		h.metrics.RecordUpstreamRequest(status, time.Since(since))
	}
}

func abort(c *gin.Context, status int, msg string) int {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
	return status
}
