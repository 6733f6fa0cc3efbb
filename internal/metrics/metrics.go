package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	ProxyRequestsTotal   *prometheus.CounterVec
	ProxyRequestDuration *prometheus.HistogramVec

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	PageFetchesTotal *prometheus.CounterVec
	SearchesTotal    *prometheus.CounterVec
	SearchDuration   prometheus.Histogram
	FanOutWidth      prometheus.Histogram
	StaleSearches    prometheus.Counter

	SearchesInFlight prometheus.Gauge
	ActiveSessions   prometheus.Gauge

	BotUpdatesTotal   *prometheus.CounterVec
	BotUpdateDuration *prometheus.HistogramVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default - общий набор метрик процесса, регистрируется один раз
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewWithRegisterer(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// NewWithRegisterer - для тестов можно передать prometheus.NewRegistry()
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		ProxyRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "naver_search_proxy_requests_total",
				Help: "Total number of proxy requests by response status",
			},
			[]string{"type", "status"},
		),
		ProxyRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "naver_search_proxy_request_duration_seconds",
				Help:    "Proxy request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"type"},
		),

		UpstreamRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "naver_search_upstream_requests_total",
				Help: "Total number of requests to the Naver API",
			},
			[]string{"status"},
		),
		UpstreamRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "naver_search_upstream_request_duration_seconds",
				Help:    "Naver API request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{},
		),

		PageFetchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "naver_search_page_fetches_total",
				Help: "Total number of result pages fetched by the client",
			},
			[]string{"status"},
		),
		SearchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "naver_search_searches_total",
				Help: "Total number of aggregated searches by outcome",
			},
			[]string{"outcome"},
		),
		SearchDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "naver_search_search_duration_seconds",
				Help:    "Duration of a full multi-page search",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),
		FanOutWidth: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "naver_search_fanout_width",
				Help:    "Number of concurrent page requests after the first page",
				Buckets: prometheus.LinearBuckets(0, 1, 10),
			},
		),
		StaleSearches: f.NewCounter(
			prometheus.CounterOpts{
				Name: "naver_search_stale_searches_total",
				Help: "Searches discarded because a newer search was started",
			},
		),

		SearchesInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "naver_search_searches_in_flight",
				Help: "Number of searches currently being fetched",
			},
		),
		ActiveSessions: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "naver_search_active_sessions",
				Help: "Number of live search sessions",
			},
		),

		BotUpdatesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "naver_search_bot_updates_total",
				Help: "Total number of telegram updates by kind and status",
			},
			[]string{"kind", "status"},
		),
		BotUpdateDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "naver_search_bot_update_duration_seconds",
				Help:    "Telegram update handling duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"kind"},
		),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordProxyRequest(searchType, status string, duration time.Duration) {
	m.ProxyRequestsTotal.WithLabelValues(searchType, status).Inc()
	m.ProxyRequestDuration.WithLabelValues(searchType).Observe(duration.Seconds())
}

func (m *Metrics) RecordUpstreamRequest(status string, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(status).Inc()
	m.UpstreamRequestDuration.WithLabelValues().Observe(duration.Seconds())
}

func (m *Metrics) RecordPageFetch(status string) {
	m.PageFetchesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordSearch(outcome string, duration time.Duration) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordFanOut(width int) {
	m.FanOutWidth.Observe(float64(width))
}

func (m *Metrics) RecordStaleSearch() {
	m.StaleSearches.Inc()
}

func (m *Metrics) IncSearchesInFlight() {
	m.SearchesInFlight.Inc()
}

func (m *Metrics) DecSearchesInFlight() {
	m.SearchesInFlight.Dec()
}

func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) RecordBotUpdate(kind, status string, duration time.Duration) {
	m.BotUpdatesTotal.WithLabelValues(kind, status).Inc()
	m.BotUpdateDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
