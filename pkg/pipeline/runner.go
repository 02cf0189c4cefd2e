package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlgraph/pkg/buildinfo"
	"github.com/matzehuels/umlgraph/pkg/cache"
	"github.com/matzehuels/umlgraph/pkg/observability"
)

// Runner executes the pipeline with artifact caching.
//
// A Runner holds no per-run state; several goroutines may share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] with the build version and a nil logger uses
// log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer(buildinfo.Version)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute parses and lays out text, then formats it. Cache failures are
// logged and never fail the run.
func (r *Runner) Execute(ctx context.Context, text string, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	a := Analyze(ctx, text)
	res := &Result{
		Graph:      a.Graph,
		SourceHash: cache.Hash([]byte(text)),
		Format:     opts.Format,
		Report:     a.Report,
		Layout:     a.Layout,
		Stats:      a.Stats,
	}
	for _, d := range a.Report.Dropped {
		logger.Debug("dropped line", "line", d.Line.Number, "reason", d.Reason, "text", d.Line.Text)
	}
	logger.Info("parsed diagram",
		"classes", res.Stats.NodeCount,
		"relations", res.Stats.EdgeCount,
		"dropped", res.Stats.Dropped,
		"duration", res.Stats.ParseTime)
	logger.Debug("computed layout",
		"ranks", len(res.Layout.Orders),
		"crossings", res.Layout.Crossings,
		"reversed", res.Layout.Reversed,
		"duration", res.Stats.LayoutTime)

	key := r.Keyer.ArtifactKey(res.SourceHash, r.variant(opts))
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache lookup failed", "error", err)
		}
		if hit {
			res.Artifact = data
			res.CacheHit = true
			logger.Debug("artifact from cache", "format", opts.Format)
			return res, nil
		}
	}

	start := time.Now()
	artifact, err := Render(ctx, res.Graph, opts.Format, opts.Compact)
	res.Stats.RenderTime = time.Since(start)
	observability.Pipeline().OnRender(ctx, opts.Format, len(artifact), res.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifact = artifact

	if err := r.Cache.Set(ctx, key, artifact, opts.TTL); err != nil {
		logger.Warn("cache store failed", "error", err)
	}
	logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", res.Stats.RenderTime)
	return res, nil
}

// variant distinguishes artifacts of the same format.
func (r *Runner) variant(opts Options) string {
	if opts.Compact {
		return opts.Format + "+compact"
	}
	return opts.Format
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
