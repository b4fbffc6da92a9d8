package scene

import (
	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/io"
	"github.com/matzehuels/gsplot/pkg/plot"
)

// Build constructs the graph and signal the scene describes. File
// references are resolved relative to the scene file's directory.
func (s *Scene) Build() (*graph.Graph, plot.Signal, error) {
	g, err := s.buildGraph()
	if err != nil {
		return nil, plot.Signal{}, err
	}
	if err := s.applyDefaults(g); err != nil {
		return nil, plot.Signal{}, err
	}
	sig, err := s.BuildSignal(g.N())
	if err != nil {
		return nil, plot.Signal{}, err
	}
	return g, sig, nil
}

func (s *Scene) buildGraph() (*graph.Graph, error) {
	switch s.Graph.Kind {
	case KindRing:
		return graph.NewRing(s.Graph.Vertices)
	case KindPath:
		return graph.NewPath(s.Graph.Vertices)
	case KindGrid:
		return graph.NewGrid(s.Graph.Rows, s.Graph.Cols)
	case KindSphere:
		return graph.NewSphere(s.Graph.Vertices, s.Graph.Seed)
	case KindSensor:
		return graph.NewSensor(s.Graph.Vertices, s.Graph.Seed)
	case KindFile:
		return io.ImportGraph(s.resolve(s.Graph.File))
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "unknown graph kind %q", s.Graph.Kind)
}

// applyDefaults folds the scene's defaults section into the graph's
// plot defaults. Only fields the scene sets are touched.
func (s *Scene) applyDefaults(g *graph.Graph) error {
	d := s.Graph.Defaults

	if d.EdgeWidth != 0 {
		g.Defaults.EdgeWidth = d.EdgeWidth
	}
	if d.EdgeColor != "" {
		c, err := graph.ParseHexColor(d.EdgeColor)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "defaults edge_color")
		}
		g.Defaults.EdgeColor = c
	}
	if d.EdgeStyle != "" {
		style, err := graph.ParseLineStyle(d.EdgeStyle)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "defaults edge_style")
		}
		g.Defaults.EdgeStyle = style
	}
	if d.VertexSize != nil {
		size := *d.VertexSize
		g.Defaults.VertexSize = &size
	}
	if len(d.Camera) == 3 {
		g.Defaults.Camera = &graph.Camera{X: d.Camera[0], Y: d.Camera[1], Z: d.Camera[2]}
	}
	return nil
}

// BuildSignal constructs just the signal for a graph of n vertices.
// The pipeline uses it when the graph itself came from cache.
func (s *Scene) BuildSignal(n int) (plot.Signal, error) {
	switch s.Signal.Kind {
	case SignalSin:
		cycles := s.Signal.Cycles
		if cycles == 0 {
			cycles = 1
		}
		return plot.SinSignal(n, cycles), nil
	case SignalLinear, "":
		return plot.LinearSignal(n), nil
	case SignalConstant:
		values := make([]float64, n)
		for i := range values {
			values[i] = s.Signal.Value
		}
		return plot.FromFloats(values), nil
	case SignalValues:
		if len(s.Signal.Values) != n {
			return plot.Signal{}, errors.Wrap(errors.ErrCodeDimensionMismatch,
				&errors.MismatchError{What: "scene signal length", Want: n, Got: len(s.Signal.Values)},
				"signal values must cover every vertex")
		}
		return plot.FromFloats(s.Signal.Values), nil
	case SignalFile:
		sig, err := io.ImportSignal(s.resolve(s.Signal.File))
		if err != nil {
			return plot.Signal{}, err
		}
		if sig.Len() != n {
			return plot.Signal{}, errors.Wrap(errors.ErrCodeDimensionMismatch,
				&errors.MismatchError{What: "scene signal length", Want: n, Got: sig.Len()},
				"signal file must cover every vertex")
		}
		return sig, nil
	}
	return plot.Signal{}, errors.New(errors.ErrCodeInvalidScene, "unknown signal kind %q", s.Signal.Kind)
}

// PlotOptions converts the scene's plot section into draw options.
func (s *Scene) PlotOptions() []plot.Option {
	var opts []plot.Option
	p := s.Plot

	if p.ShowEdges != nil {
		opts = append(opts, plot.WithShowEdges(*p.ShowEdges))
	}
	if p.Bar {
		opts = append(opts, plot.WithBar())
	}
	if p.BarWidth != 0 {
		opts = append(opts, plot.WithBarWidth(p.BarWidth))
	}
	if p.VertexSize != 0 {
		opts = append(opts, plot.WithVertexSize(p.VertexSize))
	}
	if p.Highlight != 0 {
		opts = append(opts, plot.WithHighlight(p.Highlight))
	}
	if p.Colorbar != nil {
		opts = append(opts, plot.WithColorbar(*p.Colorbar))
	}
	if len(p.ColorLimits) == 2 {
		opts = append(opts, plot.WithColorLimits(p.ColorLimits[0], p.ColorLimits[1]))
	}
	if len(p.Camera) == 3 {
		opts = append(opts, plot.WithCamera(graph.Camera{X: p.Camera[0], Y: p.Camera[1], Z: p.Camera[2]}))
	}
	return opts
}
