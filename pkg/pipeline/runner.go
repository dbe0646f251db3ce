package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sbusard/graphlayout/pkg/cache"
	"github.com/sbusard/graphlayout/pkg/errors"
	"github.com/sbusard/graphlayout/pkg/graph"
	"github.com/sbusard/graphlayout/pkg/layout"
	"github.com/sbusard/graphlayout/pkg/observability"
	"github.com/sbusard/graphlayout/pkg/render"
	"github.com/sbusard/graphlayout/pkg/render/dot"
)

// =============================================================================
// Result Types
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the input graph with computed positions applied.
	Graph graph.Graph

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains run statistics.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	MeanForce  float64
	Iterations int
	Converged  bool
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether positions came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// layoutEnvelope is the cached form of a layout stage result.
type layoutEnvelope struct {
	Graph      graph.Graph `json:"graph"`
	MeanForce  float64     `json:"mean_force"`
	Iterations int         `json:"iterations"`
	Converged  bool        `json:"converged"`
}

// =============================================================================
// Runner
// =============================================================================

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)

	graphData, err := graph.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serializing graph")
	}
	result.GraphHash = cache.Hash(graphData)

	// Stage 1: Layout
	layoutStart := time.Now()
	laid, stats, layoutHit, err := r.layoutWithCache(ctx, g, graphData, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Graph = laid
	result.Stats.MeanForce = stats.MeanForce
	result.Stats.Iterations = stats.Iterations
	result.Stats.Converged = stats.Converged
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"engine", opts.Engine,
		"nodes", result.Stats.NodeCount,
		"iterations", result.Stats.Iterations,
		"mean_force", result.Stats.MeanForce,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCache(ctx, laid, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayout runs only the layout stage, with caching.
func (r *Runner) ComputeLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Graph, Stats, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Graph{}, Stats{}, err
	}

	if err := g.Validate(); err != nil {
		return graph.Graph{}, Stats{}, err
	}
	graphData, err := graph.Marshal(g)
	if err != nil {
		return graph.Graph{}, Stats{}, errors.Wrap(errors.ErrCodeInternal, err, "serializing graph")
	}

	laid, stats, _, err := r.layoutWithCache(ctx, g, graphData, opts)
	stats.NodeCount = len(g.Nodes)
	stats.EdgeCount = len(g.Edges)
	return laid, stats, err
}

// Render runs only the render stage, with caching. The graph is expected
// to already carry positions.
func (r *Runner) Render(ctx context.Context, g graph.Graph, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	artifacts, _, err := r.renderWithCache(ctx, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger installs the runner's logger on options before defaults run,
// so stage logging follows an explicit caller logger when one is set and
// the runner's otherwise.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Stages
// =============================================================================

func (r *Runner) layoutWithCache(ctx context.Context, g graph.Graph, graphData []byte, opts Options) (graph.Graph, Stats, bool, error) {
	configData, err := json.Marshal(opts.Config)
	if err != nil {
		return graph.Graph{}, Stats{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serializing configuration")
	}
	key := cache.Key("layout", graphData, configData, []byte(opts.Engine))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var env layoutEnvelope
			if err := json.Unmarshal(data, &env); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				stats := Stats{
					MeanForce:  env.MeanForce,
					Iterations: env.Iterations,
					Converged:  env.Converged,
				}
				return env.Graph, stats, true, nil
			}
			// Corrupt entry, recompute.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	observability.Pipeline().OnLayoutStart(ctx, opts.Engine, len(g.Nodes))
	start := time.Now()
	laid, stats, err := computeLayout(ctx, g, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Engine, stats.Iterations, time.Since(start), err)
	if err != nil {
		return graph.Graph{}, Stats{}, false, err
	}

	if data, err := json.Marshal(layoutEnvelope{
		Graph:      laid,
		MeanForce:  stats.MeanForce,
		Iterations: stats.Iterations,
		Converged:  stats.Converged,
	}); err == nil {
		if r.Cache.Set(ctx, key, data, cache.DefaultTTL) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return laid, stats, false, nil
}

// computeLayout dispatches to the configured engine.
func computeLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Graph, Stats, error) {
	switch opts.Engine {
	case EngineForce:
		in, err := g.LayoutInput()
		if err != nil {
			return graph.Graph{}, Stats{}, err
		}
		eng, err := layout.New(opts.Config)
		if err != nil {
			return graph.Graph{}, Stats{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid layout configuration")
		}
		res, err := eng.Run(in)
		if err != nil {
			return graph.Graph{}, Stats{}, err
		}
		stats := Stats{
			MeanForce:  res.MeanForce,
			Iterations: res.Iterations,
			Converged:  res.Converged,
		}
		return g.WithPositions(res.Positions), stats, nil

	case EngineFDP:
		positions, err := dot.Layout(ctx, g)
		if err != nil {
			return graph.Graph{}, Stats{}, err
		}
		// fdp runs to completion internally; there is no iteration count
		// or residual force to report.
		return g.WithPositions(positions), Stats{Converged: true}, nil

	default:
		return graph.Graph{}, Stats{}, errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q", opts.Engine)
	}
}

func (r *Runner) renderWithCache(ctx context.Context, g graph.Graph, opts Options) (map[string][]byte, bool, error) {
	laidData, err := graph.Marshal(g)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serializing graph")
	}
	renderOpts := fmt.Sprintf("margin=%v,labels=%v,arrows=%v", opts.Margin, !opts.NoLabel, !opts.NoArrow)

	// Try to get all formats from cache.
	artifacts := make(map[string][]byte)
	allCached := true
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := cache.Key("artifact", laidData, []byte(format), []byte(renderOpts))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render every requested format.
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		observability.Pipeline().OnRenderStart(ctx, format)
		start := time.Now()
		data, err := renderFormat(g, laidData, format, opts)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data
	}

	// Cache each format.
	for format, data := range rendered {
		key := cache.Key("artifact", laidData, []byte(format), []byte(renderOpts))
		if r.Cache.Set(ctx, key, data, cache.DefaultTTL) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// renderFormat produces a single artifact.
func renderFormat(g graph.Graph, laidData []byte, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return laidData, nil
	case FormatSVG:
		var svgOpts []render.SVGOption
		if opts.Margin > 0 {
			svgOpts = append(svgOpts, render.WithMargin(opts.Margin))
		}
		if opts.NoLabel {
			svgOpts = append(svgOpts, render.WithoutLabels())
		}
		if opts.NoArrow {
			svgOpts = append(svgOpts, render.WithoutArrows())
		}
		return render.SVG(g, svgOpts...), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}
