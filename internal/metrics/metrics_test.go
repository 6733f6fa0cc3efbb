package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Record(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.RecordProxyRequest("news", "200", 10*time.Millisecond)
	m.RecordProxyRequest("news", "200", 20*time.Millisecond)
	m.RecordProxyRequest("cafe", "500", time.Millisecond)
	m.RecordPageFetch("success")
	m.RecordSearch("no_results", time.Second)
	m.RecordStaleSearch()
	m.SetActiveSessions(3)

	if got := testutil.ToFloat64(m.ProxyRequestsTotal.WithLabelValues("news", "200")); got != 2 {
		t.Errorf("proxy news/200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ProxyRequestsTotal.WithLabelValues("cafe", "500")); got != 1 {
		t.Errorf("proxy cafe/500 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SearchesTotal.WithLabelValues("no_results")); got != 1 {
		t.Errorf("searches no_results = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.StaleSearches); got != 1 {
		t.Errorf("stale = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ActiveSessions); got != 3 {
		t.Errorf("active sessions = %v, want 3", got)
	}
}

func TestMetrics_InFlight(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncSearchesInFlight()
	m.IncSearchesInFlight()
	m.DecSearchesInFlight()

	if got := testutil.ToFloat64(m.SearchesInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
}

func TestDefault_Singleton(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same instance")
	}
}

func TestMetrics_BotUpdates(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.RecordBotUpdate("command", "processed", 50*time.Millisecond)
	m.RecordBotUpdate("query", "panic", time.Millisecond)

	if got := testutil.ToFloat64(m.BotUpdatesTotal.WithLabelValues("command", "processed")); got != 1 {
		t.Errorf("bot command/processed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.BotUpdatesTotal.WithLabelValues("query", "panic")); got != 1 {
		t.Errorf("bot query/panic = %v, want 1", got)
	}
}
