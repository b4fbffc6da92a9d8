// Package pipeline provides the core rendering pipeline for gsplot.
//
// This package implements the complete build → plot → render pipeline that
// can be used by CLI and library consumers. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Load a scene or graph file, or run a generator, producing a
//     graph and a signal over its vertices
//  2. Plot: Draw the signal onto a backend surface, producing an SVG document
//  3. Render: Convert the document into the requested formats (SVG, PNG,
//     PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Generator: "ring",
//	    Vertices:  15,
//	    Signal:    "sin:1",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	g, sig, sc, err := runner.Build(ctx, opts)
//
//	// Plot with an existing graph and signal
//	doc, set, err := runner.Plot(ctx, g, sig, drawOpts, opts)
//
//	// Render with an existing document
//	artifacts, err := runner.Render(ctx, doc, g, sig, drawOpts, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gsplot/pkg/cache"
	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/plot"
	"github.com/matzehuels/gsplot/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Consumers
// =============================================================================

const (
	// DefaultVertices is the vertex count used when a generator that
	// needs one is selected without an explicit count.
	DefaultVertices = 15

	// DefaultRows and DefaultCols size grid graphs when unset.
	DefaultRows = 4
	DefaultCols = 4

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = int64(42)

	// DefaultWidth is the default document width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default document height in pixels.
	DefaultHeight = 600

	// DefaultPNGScale is the default raster scale factor for PNG output.
	DefaultPNGScale = 2.0
)

// Backend constants for plot surfaces.
const (
	// BackendSVG draws directly to SVG markup.
	BackendSVG = "svg"

	// BackendGplot draws through gonum/plot, which also encodes PNG and
	// PDF natively.
	BackendGplot = "gplot"
)

// DefaultBackend is the backend used when none is requested.
const DefaultBackend = BackendSVG

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidBackends is the set of supported plot backends.
var ValidBackends = map[string]bool{
	BackendSVG:   true,
	BackendGplot: true,
}

// ValidGenerators is the set of built-in graph generators.
var ValidGenerators = map[string]bool{
	scene.KindRing:   true,
	scene.KindPath:   true,
	scene.KindGrid:   true,
	scene.KindSphere: true,
	scene.KindSensor: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for batch job files.
type Options struct {
	// Build options. Exactly one input is used, in priority order:
	// Scene, then GraphFile, then Generator.
	Scene     string `json:"scene,omitempty"`      // scene TOML path
	GraphFile string `json:"graph_file,omitempty"` // graph JSON path
	Generator string `json:"generator,omitempty"`  // ring, path, grid, sphere, sensor
	Vertices  int    `json:"vertices,omitempty"`
	Rows      int    `json:"rows,omitempty"`
	Cols      int    `json:"cols,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
	Signal    string `json:"signal,omitempty"` // file path or spec like "sin:2"
	Refresh   bool   `json:"refresh,omitempty"`

	// Plot options
	Backend string  `json:"backend,omitempty"`
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	Display Display `json:"display,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Display carries optional display overrides applied on top of the
// scene's plot section. Zero values mean "unset"; ShowEdges and
// Colorbar use pointers so an explicit false survives.
type Display struct {
	ShowEdges   *bool     `json:"show_edges,omitempty"`
	Bar         bool      `json:"bar,omitempty"`
	BarWidth    float64   `json:"bar_width,omitempty"`
	VertexSize  float64   `json:"vertex_size,omitempty"`
	Highlight   int       `json:"highlight,omitempty"`
	Colorbar    *bool     `json:"colorbar,omitempty"`
	ColorLimits []float64 `json:"color_limits,omitempty"`
	Camera      []float64 `json:"camera,omitempty"`
}

// PlotOptions converts the overrides into draw options. Appending
// these after the scene's own options makes them win, since later
// options overwrite earlier ones during resolution.
func (d Display) PlotOptions() []plot.Option {
	var opts []plot.Option

	if d.ShowEdges != nil {
		opts = append(opts, plot.WithShowEdges(*d.ShowEdges))
	}
	if d.Bar {
		opts = append(opts, plot.WithBar())
	}
	if d.BarWidth != 0 {
		opts = append(opts, plot.WithBarWidth(d.BarWidth))
	}
	if d.VertexSize != 0 {
		opts = append(opts, plot.WithVertexSize(d.VertexSize))
	}
	if d.Highlight != 0 {
		opts = append(opts, plot.WithHighlight(d.Highlight))
	}
	if d.Colorbar != nil {
		opts = append(opts, plot.WithColorbar(*d.Colorbar))
	}
	if len(d.ColorLimits) == 2 {
		opts = append(opts, plot.WithColorLimits(d.ColorLimits[0], d.ColorLimits[1]))
	}
	if len(d.Camera) == 3 {
		opts = append(opts, plot.WithCamera(graph.Camera{X: d.Camera[0], Y: d.Camera[1], Z: d.Camera[2]}))
	}
	return opts
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this execution in logs and filenames.
	RunID uuid.UUID

	// Graph is the built graph.
	Graph *graph.Graph

	// Signal is the signal drawn over the graph.
	Signal plot.Signal

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Settings are the fully resolved display settings used for the plot.
	Settings plot.Settings

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	BuildTime   time.Duration
	PlotTime    time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built graph came from cache
	PlotHit   bool // Whether the plotted document came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBackend checks that a backend is valid.
func ValidateBackend(backend string) error {
	if !ValidBackends[backend] {
		return errors.New(errors.ErrCodeInvalidBackend,
			"invalid backend: %q (must be one of: svg, gplot)", backend)
	}
	return nil
}

// ValidateGenerator checks that a generator name is valid.
func ValidateGenerator(name string) error {
	if !ValidGenerators[name] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid generator: %q (must be one of: ring, path, grid, sphere, sensor)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForPlot(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for the build stage.
func (o *Options) ValidateForBuild() error {
	if o.Scene == "" && o.GraphFile == "" && o.Generator == "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"a scene, graph file, or generator is required")
	}
	if o.Scene == "" && o.GraphFile == "" {
		if err := ValidateGenerator(o.Generator); err != nil {
			return err
		}
	}
	if o.Signal != "" {
		if _, err := ParseSignalSpec(o.Signal); err != nil {
			return err
		}
	}

	// Build defaults
	if o.Generator != "" && o.Generator != scene.KindGrid && o.Vertices == 0 {
		o.Vertices = DefaultVertices
	}
	if o.Generator == scene.KindGrid {
		if o.Rows == 0 {
			o.Rows = DefaultRows
		}
		if o.Cols == 0 {
			o.Cols = DefaultCols
		}
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetPlotDefaults sets default values for the plot stage.
func (o *Options) SetPlotDefaults() {
	if o.Backend == "" {
		o.Backend = DefaultBackend
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPlot validates and sets defaults for the plot stage.
func (o *Options) ValidateForPlot() error {
	o.SetPlotDefaults()
	if err := ValidateBackend(o.Backend); err != nil {
		return err
	}
	if n := len(o.Display.ColorLimits); n != 0 && n != 2 {
		return errors.New(errors.ErrCodeInvalidInput,
			"color limits need [lo, hi], got %d values", n)
	}
	if n := len(o.Display.Camera); n != 0 && n != 3 {
		return errors.New(errors.ErrCodeInvalidInput,
			"camera needs [x, y, z], got %d values", n)
	}
	return nil
}

// SetRenderDefaults sets default values for the render stage.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for the render stage.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForPlot(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Source describes the build input for logs and hooks.
func (o *Options) Source() string {
	switch {
	case o.Scene != "":
		return o.Scene
	case o.GraphFile != "":
		return o.GraphFile
	default:
		return o.Generator
	}
}

// GraphKeyOpts returns cache key options for the build stage.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Vertices: o.Vertices,
		Rows:     o.Rows,
		Cols:     o.Cols,
		Seed:     o.Seed,
	}
}

// PlotKeyOpts returns cache key options for the plot stage. The
// resolved settings stand in for the raw display options so that two
// option sets resolving to the same plot share one cache entry.
func (o *Options) PlotKeyOpts(set plot.Settings) cache.PlotKeyOpts {
	return cache.PlotKeyOpts{
		Backend:    o.Backend,
		Width:      o.Width,
		Height:     o.Height,
		ShowEdges:  set.ShowEdges,
		Bar:        set.Bar,
		BarWidth:   set.BarWidth,
		VertexSize: set.VertexSize,
		Highlight:  set.Highlight,
		Colorbar:   set.Colorbar,
		ColorLo:    set.ColorLimits[0],
		ColorHi:    set.ColorLimits[1],
		CamX:       set.Camera.X,
		CamY:       set.Camera.Y,
		CamZ:       set.Camera.Z,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Scale:  o.PNGScale,
	}
}
