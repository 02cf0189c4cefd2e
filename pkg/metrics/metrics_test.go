package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/umlgraph/pkg/observability"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.ParsesTotal == nil || r.CacheRequests == nil || r.HTTPRequestsTotal == nil {
		t.Fatal("metrics not initialized")
	}
	if r.Prometheus() == nil {
		t.Fatal("Prometheus registry not initialized")
	}
}

func TestPipelineHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnParse(ctx, observability.ParseStats{Classes: 3, Edges: 2, Dropped: 1}, time.Millisecond)
	r.OnParse(ctx, observability.ParseStats{Classes: 1, Dropped: 2}, time.Millisecond)
	r.OnLayout(ctx, observability.LayoutStats{Reversed: 1, Crossings: 0}, time.Millisecond)
	r.OnRender(ctx, "svg", 2048, time.Millisecond, nil)
	r.OnRender(ctx, "svg", 0, time.Millisecond, errors.New("graphviz"))

	if got := testutil.ToFloat64(r.ParsesTotal); got != 2 {
		t.Errorf("parses_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.LinesDropped); got != 3 {
		t.Errorf("lines_dropped_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(r.EdgesReversed); got != 1 {
		t.Errorf("layout_edges_reversed_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.RendersTotal.WithLabelValues("svg", "ok")); got != 1 {
		t.Errorf("renders ok = %v", got)
	}
	if got := testutil.ToFloat64(r.RendersTotal.WithLabelValues("svg", "error")); got != 1 {
		t.Errorf("renders error = %v", got)
	}
}

func TestCacheHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnCacheHit(ctx, "file")
	r.OnCacheHit(ctx, "file")
	r.OnCacheMiss(ctx, "file")
	r.OnCacheError(ctx, "redis", errors.New("down"))

	if got := testutil.ToFloat64(r.CacheRequests.WithLabelValues("file", "hit")); got != 2 {
		t.Errorf("hits = %v", got)
	}
	if got := testutil.ToFloat64(r.CacheRequests.WithLabelValues("file", "miss")); got != 1 {
		t.Errorf("misses = %v", got)
	}
	if got := testutil.ToFloat64(r.CacheErrors.WithLabelValues("redis")); got != 1 {
		t.Errorf("errors = %v", got)
	}
}

func TestHTTPHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnRequest(ctx, "POST", "/v1/diagrams")
	if got := testutil.ToFloat64(r.HTTPRequestsInFlight); got != 1 {
		t.Errorf("in flight = %v", got)
	}
	r.OnResponse(ctx, "POST", "/v1/diagrams", 200, 10*time.Millisecond)
	if got := testutil.ToFloat64(r.HTTPRequestsInFlight); got != 0 {
		t.Errorf("in flight after response = %v", got)
	}
	if got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("POST", "/v1/diagrams", "200")); got != 1 {
		t.Errorf("requests = %v", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.OnParse(context.Background(), observability.ParseStats{}, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "umlgraph_parses_total 1") {
		t.Errorf("exposition missing parses_total:\n%s", body)
	}
}
