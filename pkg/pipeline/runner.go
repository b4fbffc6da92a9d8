package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gsplot/pkg/cache"
	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/observability"
	"github.com/matzehuels/gsplot/pkg/plot"
	"github.com/matzehuels/gsplot/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
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
		c = cache.NewNullCache()
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

// Execute runs the complete build → plot → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()

	result := &Result{
		RunID:     uuid.New(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, opts.Source())
	g, sig, sc, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	vertices := 0
	if g != nil {
		vertices = g.N()
	}
	hooks.OnBuildComplete(ctx, opts.Source(), vertices, time.Since(buildStart), err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Signal = sig
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.VertexCount = g.N()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.BuildHit = buildHit

	// Compute graph hash for cache keys and run summaries
	if graphData, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("built graph",
		"source", opts.Source(),
		"vertices", g.N(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.BuildTime)

	// Scene settings first, explicit overrides after so they win.
	drawOpts := append(sc.PlotOptions(), opts.Display.PlotOptions()...)

	// Stage 2: Plot
	plotStart := time.Now()
	hooks.OnPlotStart(ctx, opts.Backend, g.N())
	doc, set, plotHit, err := r.PlotWithCacheInfo(ctx, g, sig, drawOpts, opts)
	hooks.OnPlotComplete(ctx, opts.Backend, time.Since(plotStart), err)
	if err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}
	result.Settings = set
	result.Stats.PlotTime = time.Since(plotStart)
	result.CacheInfo.PlotHit = plotHit

	r.Logger.Info("plotted signal",
		"backend", opts.Backend,
		"dim", set.Dim,
		"duration", result.Stats.PlotTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnExportStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, g, sig, drawOpts, opts)
	hooks.OnExportComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds the graph and signal with caching and
// returns cache hit info. Only generator-built graphs are cached; a
// graph loaded from a file is reread every time, since that costs the
// same as a cache probe and never serves stale data.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph, plot.Signal, *scene.Scene, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, plot.Signal{}, nil, false, err
	}
	r.applyLogger(&opts)

	sc, src, err := buildScene(opts)
	if err != nil {
		return nil, plot.Signal{}, nil, false, err
	}

	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if src.Cacheable && !opts.Refresh {
		cacheKey := r.Keyer.GraphKey(src.Key, opts.GraphKeyOpts())
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.UnmarshalGraph(data); err == nil {
				if sig, err := sc.BuildSignal(g.N()); err == nil {
					cacheHooks.OnCacheHit(ctx, "graph")
					return g, sig, sc, true, nil
				}
			}
		}
		cacheHooks.OnCacheMiss(ctx, "graph")
	}

	// Build
	g, sig, err := sc.Build()
	if err != nil {
		return nil, plot.Signal{}, nil, false, err
	}

	// Cache the result
	if src.Cacheable {
		if data, err := graph.MarshalGraph(g); err == nil {
			cacheKey := r.Keyer.GraphKey(src.Key, opts.GraphKeyOpts())
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
			cacheHooks.OnCacheSet(ctx, "graph", len(data))
		}
	}

	return g, sig, sc, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*graph.Graph, plot.Signal, *scene.Scene, error) {
	g, sig, sc, _, err := r.BuildWithCacheInfo(ctx, opts)
	return g, sig, sc, err
}

// PlotWithCacheInfo plots the signal with caching and returns cache
// hit info. The resolved settings are returned either way, so callers
// can key further work on them.
func (r *Runner) PlotWithCacheInfo(ctx context.Context, g *graph.Graph, sig plot.Signal, drawOpts []plot.Option, opts Options) ([]byte, plot.Settings, bool, error) {
	if err := opts.ValidateForPlot(); err != nil {
		return nil, plot.Settings{}, false, err
	}
	r.applyLogger(&opts)

	// Resolving first surfaces validation errors before any drawing
	// and produces the settings the cache key needs.
	set, err := plot.Resolve(g, sig, drawOpts...)
	if err != nil {
		return nil, plot.Settings{}, false, err
	}

	cacheKey, err := r.plotKey(g, sig, opts, set)
	if err != nil {
		return nil, plot.Settings{}, false, err
	}
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "plot")
			return data, set, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "plot")
	}

	// Plot
	doc, err := Plot(g, sig, drawOpts, opts)
	if err != nil {
		return nil, plot.Settings{}, false, err
	}

	// Cache the result
	_ = r.Cache.Set(ctx, cacheKey, doc, cache.TTLPlot)
	cacheHooks.OnCacheSet(ctx, "plot", len(doc))

	return doc, set, false, nil
}

// Plot is a convenience wrapper that calls PlotWithCacheInfo and discards the cache hit info.
func (r *Runner) Plot(ctx context.Context, g *graph.Graph, sig plot.Signal, drawOpts []plot.Option, opts Options) ([]byte, plot.Settings, error) {
	doc, set, _, err := r.PlotWithCacheInfo(ctx, g, sig, drawOpts, opts)
	return doc, set, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc []byte, g *graph.Graph, sig plot.Signal, drawOpts []plot.Option, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	docHash := cache.Hash(doc)
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	} else {
		allCached = false
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		cacheHooks.OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	cacheHooks.OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(doc, g, sig, drawOpts, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc []byte, g *graph.Graph, sig plot.Signal, drawOpts []plot.Option, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, g, sig, drawOpts, opts)
	return artifacts, err
}

// plotKey derives the plot-level cache key from the graph and signal
// content plus the resolved settings.
func (r *Runner) plotKey(g *graph.Graph, sig plot.Signal, opts Options, set plot.Settings) (string, error) {
	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return "", fmt.Errorf("serialize graph for cache key: %w", err)
	}
	sigData, err := signalBytes(sig)
	if err != nil {
		return "", fmt.Errorf("serialize signal for cache key: %w", err)
	}
	return r.Keyer.PlotKey(cache.Hash(graphData), cache.Hash(sigData), opts.PlotKeyOpts(set)), nil
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
