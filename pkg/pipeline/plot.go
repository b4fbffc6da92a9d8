package pipeline

import (
	"bytes"

	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/io"
	"github.com/matzehuels/gsplot/pkg/plot"
	"github.com/matzehuels/gsplot/pkg/plot/gplot"
	"github.com/matzehuels/gsplot/pkg/plot/svg"
)

// Plot draws the signal over the graph onto the configured backend and
// returns the resulting SVG document. Both backends emit SVG here; the
// render stage converts to other formats, going back through the gplot
// backend's native encoders where it can.
func Plot(g *graph.Graph, sig plot.Signal, drawOpts []plot.Option, opts Options) ([]byte, error) {
	switch opts.Backend {
	case BackendGplot:
		s, err := gplot.New(float64(opts.Width), float64(opts.Height), gplot.FormatSVG)
		if err != nil {
			return nil, err
		}
		if err := plot.Draw(s, g, sig, drawOpts...); err != nil {
			return nil, err
		}
		return s.Bytes(), nil

	default:
		s := svg.New(opts.Width, opts.Height)
		if err := plot.Draw(s, g, sig, drawOpts...); err != nil {
			return nil, err
		}
		return s.Bytes(), nil
	}
}

// signalBytes serializes a signal for cache hashing and JSON export.
func signalBytes(sig plot.Signal) ([]byte, error) {
	var buf bytes.Buffer
	if err := io.WriteSignal(sig, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
