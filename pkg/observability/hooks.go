// Package observability provides hooks for metrics and logging.
//
// Library packages (pipeline, cache, server) report events through the hook
// interfaces defined here and never import a metrics backend. The binary
// registers a concrete implementation at startup, typically the Prometheus
// adapter in pkg/metrics.
//
// # Usage
//
//	func main() {
//	    m := metrics.New()
//	    observability.SetPipelineHooks(m)
//	    observability.SetCacheHooks(m)
//	    observability.SetHTTPHooks(m)
//	}
//
// Libraries emit events:
//
//	start := time.Now()
//	g, rep := parser.ParseWithReport(text)
//	observability.Pipeline().OnParse(ctx, ParseStats{...}, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// ParseStats summarizes one parse.
type ParseStats struct {
	Lines   int
	Classes int
	Edges   int
	Dropped int
}

// LayoutStats summarizes one layout run.
type LayoutStats struct {
	Ranks        int
	VirtualNodes int
	Reversed     int
	Crossings    int
}

// PipelineHooks receives events from the diagram pipeline.
type PipelineHooks interface {
	OnParse(ctx context.Context, stats ParseStats, duration time.Duration)
	OnLayout(ctx context.Context, stats LayoutStats, duration time.Duration)
	// OnRender is called once per produced artifact. size is in bytes.
	OnRender(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from artifact caches.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, backend string)
	OnCacheMiss(ctx context.Context, backend string)
	OnCacheSet(ctx context.Context, backend string, size int)
	OnCacheError(ctx context.Context, backend string, err error)
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest runs before routing, so it only sees the raw path.
	OnRequest(ctx context.Context, method, path string)
	// OnResponse receives the matched route pattern, not the raw path.
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParse(context.Context, ParseStats, time.Duration)         {}
func (NoopPipelineHooks) OnLayout(context.Context, LayoutStats, time.Duration)       {}
func (NoopPipelineHooks) OnRender(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (NoopCacheHooks) OnCacheError(context.Context, string, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
