// Package dot exports graphs as Graphviz diagrams.
//
// Unlike the coordinate-faithful surfaces in [plot/svg] and
// [plot/gplot], this backend hands layout to Graphviz. It is meant for
// topology inspection: vertex positions come from the layout engine,
// while signal values still drive the vertex fill colors.
//
// # Pipeline
//
// Rendering is a two-step conversion with DOT text as the intermediate
// representation:
//
//	Graph + Signal → ToDOT() → DOT → RenderSVG() → SVG
//
// The DOT string can be stored and re-rendered without access to the
// original weight matrix.
//
// # Layout Engines
//
// Rendering uses the default dot engine. Stored 2D coordinates are
// emitted as pin positions, so running the exported text through neato
// reproduces the spatial arrangement:
//
//	neato -n2 -Tsvg graph.dot
//
// # Usage
//
//	g, _ := graph.NewRing(15)
//	text, _ := dot.ToDOT(g, plot.SinSignal(15, 1), dot.Options{Values: true})
//	svg, _ := dot.RenderSVG(text)
package dot
