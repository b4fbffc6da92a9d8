package plot

import (
	"math"

	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/graph"
)

// showEdgesLimit is the edge count at which edge drawing switches off by
// default. Dense graphs turn into solid ink otherwise; callers can still
// force edges on explicitly.
const showEdgesLimit = 10_000

// vertexSizeFallback is the marker size used when neither the caller nor
// the graph defaults provide one.
const vertexSizeFallback = 500.0

// vertexSizeScale multiplies caller- or graph-supplied sizes so that the
// two configuration routes and the fallback share one visual scale.
const vertexSizeScale = 10.0

// epsilon is the double-precision machine epsilon, used to pad color
// limits so they strictly contain the signal range even for constant
// signals.
var epsilon = math.Nextafter(1, 2) - 1

// options collects caller overrides before defaulting. Nil fields mean
// "not set" and resolve against the graph and signal.
type options struct {
	showEdges   *bool
	bar         *bool
	barWidth    *float64
	vertexSize  *float64
	highlight   *int
	colorbar    *bool
	colorLimits *[2]float64
	camera      *graph.Camera
}

// Option overrides a single display setting for one Draw call.
type Option func(*options)

// WithShowEdges forces edge drawing on or off, overriding the edge-count
// heuristic.
func WithShowEdges(show bool) Option {
	return func(o *options) { o.showEdges = &show }
}

// WithBar renders the signal as vertical bars rising from each vertex
// instead of color-mapped markers. Only meaningful on 2D graphs.
func WithBar() Option {
	return func(o *options) { t := true; o.bar = &t }
}

// WithBarWidth sets the line width used for bars.
func WithBarWidth(w float64) Option {
	return func(o *options) { o.barWidth = &w }
}

// WithVertexSize sets the base marker size. The effective size is scaled
// by [vertexSizeScale], matching graph-supplied sizes.
func WithVertexSize(s float64) Option {
	return func(o *options) { o.vertexSize = &s }
}

// WithHighlight marks one vertex for emphasis. Vertices are numbered
// 1..N; zero means no highlight.
func WithHighlight(vertex int) Option {
	return func(o *options) { o.highlight = &vertex }
}

// WithColorbar toggles the colorbar legend for color-mapped plots.
func WithColorbar(show bool) Option {
	return func(o *options) { o.colorbar = &show }
}

// WithColorLimits pins the color scale to [lo, hi] instead of deriving it
// from the signal range.
func WithColorLimits(lo, hi float64) Option {
	return func(o *options) { o.colorLimits = &[2]float64{lo, hi} }
}

// WithCamera sets the camera position for 3D and bar plots.
func WithCamera(cam graph.Camera) Option {
	return func(o *options) { o.camera = &cam }
}

// Settings is the fully resolved display configuration for one Draw
// call: every optional input replaced by its effective value.
type Settings struct {
	ShowEdges   bool
	Bar         bool
	BarWidth    float64
	VertexSize  float64
	Highlight   int
	Colorbar    bool
	ColorLimits [2]float64
	Camera      graph.Camera
	Dim         int
	Defaults    graph.PlotDefaults
}

// Resolve validates the graph and signal and folds caller options over
// graph defaults and built-in fallbacks. It performs no drawing, so
// callers can inspect the effective settings without a surface.
//
// Validation order: coordinates, then signal realness, then lengths. A
// graph without coordinates is rejected before the signal is looked at.
func Resolve(g *graph.Graph, sig Signal, opts ...Option) (Settings, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if !g.HasCoords() {
		return Settings{}, errors.New(errors.ErrCodeMissingCoords, "graph has no coordinates; cannot plot")
	}
	if norm := sig.ImagNorm(); norm > ImagTolerance {
		return Settings{}, errors.New(errors.ErrCodeInvalidSignal,
			"signal is not real: imaginary magnitude %g exceeds %g", norm, ImagTolerance)
	}
	if sig.Len() != g.N() {
		return Settings{}, errors.Wrap(errors.ErrCodeDimensionMismatch,
			&errors.MismatchError{What: "signal length", Want: g.N(), Got: sig.Len()},
			"signal must have one value per vertex")
	}

	set := Settings{
		Dim:      g.Dim(),
		Defaults: g.Defaults.Resolved(g),
	}

	if o.showEdges != nil {
		set.ShowEdges = *o.showEdges
	} else {
		set.ShowEdges = g.EdgeCount() < showEdgesLimit
	}

	if o.bar != nil {
		set.Bar = *o.bar
	}

	set.BarWidth = 1
	if o.barWidth != nil {
		if err := errors.ValidatePositive("bar width", *o.barWidth); err != nil {
			return Settings{}, err
		}
		set.BarWidth = *o.barWidth
	}

	switch {
	case o.vertexSize != nil:
		if err := errors.ValidatePositive("vertex size", *o.vertexSize); err != nil {
			return Settings{}, err
		}
		set.VertexSize = vertexSizeScale * *o.vertexSize
	case set.Defaults.VertexSize != nil:
		set.VertexSize = vertexSizeScale * *set.Defaults.VertexSize
	default:
		set.VertexSize = vertexSizeFallback
	}

	if o.highlight != nil {
		if *o.highlight < 0 || *o.highlight > g.N() {
			return Settings{}, errors.New(errors.ErrCodeDimensionMismatch,
				"highlight vertex %d out of range [0, %d]", *o.highlight, g.N())
		}
		set.Highlight = *o.highlight
	}

	set.Colorbar = true
	if o.colorbar != nil {
		set.Colorbar = *o.colorbar
	}

	if o.colorLimits != nil {
		if err := errors.ValidateColorLimits(o.colorLimits[0], o.colorLimits[1]); err != nil {
			return Settings{}, err
		}
		set.ColorLimits = *o.colorLimits
	} else {
		min, max := sig.Range()
		set.ColorLimits = [2]float64{
			min - 0.01*math.Abs(min) - epsilon,
			max + 0.01*math.Abs(max) + epsilon,
		}
	}

	switch {
	case o.camera != nil:
		set.Camera = *o.camera
	case set.Defaults.Camera != nil:
		set.Camera = *set.Defaults.Camera
	default:
		set.Camera = graph.DefaultCamera
	}

	return set, nil
}
