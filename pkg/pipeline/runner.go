package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackgrid/pkg/cache"
	"github.com/matzehuels/stackgrid/pkg/grid"
	"github.com/matzehuels/stackgrid/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NullCache{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → resolve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1+2: Build and resolve
	layoutStart := time.Now()
	l, err := BuildLayout(opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.Columns, result.Stats.Rows = l.Dimensions()

	resolved, gridHit, err := r.ResolveWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Grid = resolved
	result.Stats.Cells = len(resolved.Cells)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.GridHit = gridHit

	if h, err := cache.HashJSON(resolved); err == nil {
		result.GridHash = h
	}

	r.logger(opts).Info("resolved grid",
		"columns", result.Stats.Columns,
		"rows", result.Stats.Rows,
		"cells", result.Stats.Cells,
		"cached", gridHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, resolved, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.logger(opts).Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ResolveWithCacheInfo resolves l with caching and returns cache hit info.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, l grid.Layout, opts Options) (grid.Resolved, bool, error) {
	cols, rows := l.Dimensions()
	observability.Pipeline().OnLayoutStart(ctx, cols, rows)
	start := time.Now()

	resolved, hit, err := r.resolve(ctx, l, opts)

	observability.Pipeline().OnLayoutComplete(ctx, len(resolved.Cells), time.Since(start), err)
	return resolved, hit, err
}

func (r *Runner) resolve(ctx context.Context, l grid.Layout, opts Options) (grid.Resolved, bool, error) {
	docHash, err := cache.HashJSON(struct {
		Columns []grid.CellSize `json:"columns"`
		Rows    []grid.CellSize `json:"rows"`
	}{l.Columns(), l.Rows()})
	if err != nil {
		resolved, err := ResolveLayout(l, opts.Strict)
		return resolved, false, err
	}
	cacheKey := r.Keyer.GridKey(docHash, opts.GridKeyOpts(l))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached grid.Resolved
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "grid")
				return cached, true, nil
			}
		} else if err != nil {
			r.logger(opts).Warn("cache read failed", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "grid")
	}

	resolved, err := ResolveLayout(l, opts.Strict)
	if err != nil {
		return grid.Resolved{}, false, err
	}

	// Non-finite coordinates cannot be encoded; such grids are not cached.
	if data, err := json.Marshal(resolved); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLGrid); err != nil {
			r.logger(opts).Warn("cache write failed", "key", cacheKey, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "grid", len(data))
		}
	}

	return resolved, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g grid.Resolved, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, g, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

func (r *Runner) render(ctx context.Context, g grid.Resolved, opts Options) (map[string][]byte, bool, error) {
	gridHash, err := cache.HashJSON(g)
	if err != nil {
		artifacts, err := Render(ctx, g, opts)
		return artifacts, false, err
	}

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if !allCached {
			break
		}
		cacheKey := r.Keyer.ArtifactKey(gridHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(gridHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.logger(opts).Warn("cache write failed", "key", cacheKey, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// logger returns the per-run logger from opts, falling back to the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
