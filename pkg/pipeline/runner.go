package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcetower/pkg/cache"
	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/metrics"
)

// Runner encapsulates pipeline execution with caching and metrics.
//
// The Runner is stateless except for the cache, logger and metrics - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Metrics *metrics.Metrics
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// A nil metrics records nothing.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, m *metrics.Metrics) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Metrics: m,
	}
}

// GenerateLayoutWithCacheInfo computes a layout with caching and reports
// whether it came from the cache.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		r.Metrics.ObserveError()
		return graph.Layout{}, false, err
	}

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return graph.Layout{}, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := graph.UnmarshalLayout(data); err == nil {
			r.Metrics.ObserveCache(true)
			r.Logger.Debug("layout cache hit", "key", cacheKey)
			return cached, true, nil
		}
		// undecodable entries fall through to recompute
	} else if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	r.Metrics.ObserveCache(false)

	start := time.Now()
	layout, stats, err := GenerateLayout(ctx, g, opts)
	if err != nil {
		r.Metrics.ObserveError()
		return graph.Layout{}, false, err
	}
	stats.LayoutTime = time.Since(start)
	r.Metrics.ObserveRun(stats.NodeCount, stats.EdgeCount, stats.Ticks, layout.Alpha, stats.LayoutTime)
	r.Logger.Info("computed layout",
		"nodes", stats.NodeCount,
		"edges", stats.EdgeCount,
		"ticks", stats.Ticks,
		"alpha", layout.Alpha,
		"duration", stats.LayoutTime)

	if data, err := graph.MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		}
	}
	return layout, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, error) {
	layout, _, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := RenderFromLayout(layout, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.Metrics.ObserveRender(format)
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}
	r.Logger.Debug("rendered outputs", "formats", opts.Formats, "engine", opts.Engine)
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
