package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/plot"
	"github.com/matzehuels/gsplot/pkg/plot/dot"
	"github.com/matzehuels/gsplot/pkg/plot/gplot"
	"github.com/matzehuels/gsplot/pkg/plot/svg"
)

// Render converts a plotted document into the requested output formats.
//
// The document doubles as the SVG artifact. PNG and PDF conversion
// depends on the backend: the svg backend shells out to rsvg-convert,
// while the gplot backend redraws through its native encoders. DOT and
// JSON are derived from the graph and signal directly, so they look the
// same under every backend.
func Render(doc []byte, g *graph.Graph, sig plot.Signal, drawOpts []plot.Option, opts Options) (map[string][]byte, error) {
	set, err := plot.Resolve(g, sig, drawOpts...)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = doc
		case FormatPNG:
			if opts.Backend == BackendGplot {
				data, err = renderNative(g, sig, drawOpts, gplot.FormatPNG, opts)
			} else {
				data, err = svg.ToPNG(doc, opts.PNGScale)
			}
		case FormatPDF:
			if opts.Backend == BackendGplot {
				data, err = renderNative(g, sig, drawOpts, gplot.FormatPDF, opts)
			} else {
				data, err = svg.ToPDF(doc)
			}
		case FormatDOT:
			var s string
			s, err = dot.ToDOT(g, sig, dot.Options{Values: true, Highlight: set.Highlight})
			data = []byte(s)
		case FormatJSON:
			data, err = exportJSON(g, sig)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNative redraws the plot through the gplot backend with one of
// its native output encoders.
func renderNative(g *graph.Graph, sig plot.Signal, drawOpts []plot.Option, format string, opts Options) ([]byte, error) {
	s, err := gplot.New(float64(opts.Width), float64(opts.Height), format)
	if err != nil {
		return nil, err
	}
	if err := plot.Draw(s, g, sig, drawOpts...); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// jsonArtifact bundles the graph and signal wire formats in one
// document. Both halves match what ImportGraph and ImportSignal read
// back individually.
type jsonArtifact struct {
	Graph  json.RawMessage `json:"graph"`
	Signal json.RawMessage `json:"signal"`
}

// exportJSON serializes the graph and signal as a combined document.
func exportJSON(g *graph.Graph, sig plot.Signal) ([]byte, error) {
	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("serialize graph: %w", err)
	}
	sigData, err := signalBytes(sig)
	if err != nil {
		return nil, fmt.Errorf("serialize signal: %w", err)
	}
	return json.MarshalIndent(jsonArtifact{Graph: graphData, Signal: sigData}, "", "  ")
}
