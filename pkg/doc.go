// Package pkg provides the core libraries for Gsplot graph signal plotting.
//
// # Overview
//
// Gsplot renders a scalar signal defined over the vertices of a graph as a
// 2D or 3D scatter or bar plot, with optional edge drawing, a colorbar, and
// vertex highlighting. The pkg directory is organized into four main areas:
//
//  1. [graph] - Graph model (weights, coordinates, plotting defaults, generators)
//  2. [plot] - Plotting core (signals, option resolution, Draw, surfaces)
//  3. [pipeline] - Orchestration (build → plot → render, with caching)
//  4. [scene] - Declarative TOML scene files
//
// # Architecture
//
// The typical data flow through Gsplot:
//
//	Scene file / generator
//	         ↓
//	    [graph] package (build graph + coordinates)
//	         ↓
//	    [plot] package (resolve options, draw onto a Surface)
//	         ↓
//	    [plot/svg] / [plot/gplot] / [plot/dot] backends
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
// Build a graph, put a signal on it, and render an SVG:
//
//	import (
//	    "github.com/matzehuels/gsplot/pkg/graph"
//	    "github.com/matzehuels/gsplot/pkg/plot"
//	    "github.com/matzehuels/gsplot/pkg/plot/svg"
//	)
//
//	// 1. Build a graph with coordinates
//	g, _ := graph.NewRing(15)
//
//	// 2. Define a signal over its vertices
//	sig := plot.SinSignal(g.N(), 2)
//
//	// 3. Draw onto a surface
//	dst := svg.New(800, 600)
//	_ = plot.Draw(dst, g, sig, plot.WithHighlight(5))
//
//	// 4. Collect the rendered bytes
//	out := dst.Bytes()
//
// # Main Packages
//
// ## Core Domain Logic
//
// [graph] - Graph model backed by gonum matrices: an N×N weight matrix, an
// optional N×2 or N×3 coordinate matrix, and per-graph plotting defaults.
// Generators (ring, path, grid, sphere, sensor) return ready-to-plot graphs,
// and a JSON wire format round-trips graphs through files.
//
// [plot] - The plotting core. Signal wraps a complex-valued vector that must
// be real up to numerical noise; Resolve turns functional options into
// concrete Settings; Draw validates, defaults, and emits drawing calls
// against the Surface interface. Projector maps 3D scenes through a camera.
//
// ## Rendering Backends
//
// [plot/record] - A Surface that records every call as an inspectable op
// stream. Drives the drawing tests and the inspect command.
//
// [plot/svg] - Direct SVG output via ajstarks/svgo, with its own colorbar
// strip and camera projection. PNG and PDF come from the SVG bytes through
// rsvg-convert.
//
// [plot/gplot] - gonum.org/v1/plot backend writing SVG or PNG natively.
//
// [plot/dot] - Graphviz DOT export with pinned positions and signal-mapped
// fill colors, rendered to SVG through goccy/go-graphviz.
//
// ## Infrastructure
//
// [pipeline] - Complete render pipeline (build → plot → render) used by the
// CLI. Stages are cached separately so a re-render with new formats reuses
// the built graph and plotted document.
//
// [cache] - Artifact cache with file and null backends and SHA-256 content
// keys.
//
// [scene] - TOML scene files bundling a graph, a signal, and display
// options into one declarative render description.
//
// [io] - File-level import/export for graphs and signals.
//
// [errors] - Coded errors shared across packages, with user-facing message
// mapping for the CLI.
//
// [observability] - Pipeline and cache hook interfaces with no-op defaults.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Load a scene file and build what it describes:
//
//	s, _ := scene.Load("examples/scenes/ring.toml")
//	g, sig, _ := s.Build()
//
// Inspect the draw ops a plot produces:
//
//	rec := record.New()
//	_ = plot.Draw(rec, g, sig, plot.WithBar())
//	fmt.Println(rec.Summary())
//
// Run the full pipeline with caching:
//
//	c, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(c, cache.NewDefaultKeyer(), logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Generator: "ring", Formats: []string{"svg"}})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/plot/...       # Specific package
//	go test -run Example         # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/graph
// [plot]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/plot
// [plot/record]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/plot/record
// [plot/svg]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/plot/svg
// [plot/gplot]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/plot/gplot
// [plot/dot]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/plot/dot
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/cache
// [scene]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/scene
// [io]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gsplot/pkg/buildinfo
package pkg
