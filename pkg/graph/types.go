package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/gonum/mat"
)

// =============================================================================
// Wire Format
// =============================================================================

// wireGraph is the canonical JSON serialization of a Graph. The format is
// node-link: one node entry per vertex (index implied by position), one edge
// entry per nonzero weight. Round-trip fidelity includes plotting defaults,
// so import → export → re-import is lossless.
type wireGraph struct {
	Directed bool          `json:"directed"`
	Nodes    []wireNode    `json:"nodes"`
	Edges    []wireEdge    `json:"edges"`
	Defaults *wireDefaults `json:"defaults,omitempty"`
}

type wireNode struct {
	ID     int       `json:"id"`
	Coords []float64 `json:"coords,omitempty"` // 2 or 3 components
}

type wireEdge struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight"`
}

type wireDefaults struct {
	EdgeWidth  float64    `json:"edge_width,omitempty"`
	EdgeColor  string     `json:"edge_color,omitempty"` // #rrggbb
	EdgeStyle  string     `json:"edge_style,omitempty"` // solid, dashed, dotted
	Limits     *wireRange `json:"limits,omitempty"`
	VertexSize *float64   `json:"vertex_size,omitempty"`
	Camera     []float64  `json:"camera,omitempty"` // 3 components
}

type wireRange struct {
	X []float64 `json:"x"` // lo, hi
	Y []float64 `json:"y"`
	Z []float64 `json:"z,omitempty"`
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	wire := toWire(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// ReadGraph reads a JSON-encoded Graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	var wire wireGraph
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return fromWire(wire)
}

// =============================================================================
// Internal Helpers
// =============================================================================

func toWire(g *Graph) wireGraph {
	n := g.N()
	dim := g.Dim()

	out := wireGraph{
		Directed: g.Directed(),
		Nodes:    make([]wireNode, n),
	}
	for i := 0; i < n; i++ {
		node := wireNode{ID: i}
		if dim > 0 {
			node.Coords = make([]float64, dim)
			for axis := 0; axis < dim; axis++ {
				node.Coords[axis] = g.coords.At(i, axis)
			}
		}
		out.Nodes[i] = node
	}

	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, wireEdge{From: e.From, To: e.To, Weight: e.Weight})
	}

	out.Defaults = defaultsToWire(g.Defaults)
	return out
}

func fromWire(wire wireGraph) (*Graph, error) {
	n := len(wire.Nodes)
	if n == 0 {
		return nil, fmt.Errorf("graph has no nodes")
	}

	weights := mat.NewDense(n, n, nil)
	for _, e := range wire.Edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, fmt.Errorf("edge %d→%d references unknown node", e.From, e.To)
		}
		weights.Set(e.From, e.To, e.Weight)
	}

	g, err := New(weights, wire.Directed)
	if err != nil {
		return nil, err
	}

	if dim := len(wire.Nodes[0].Coords); dim > 0 {
		coords := mat.NewDense(n, dim, nil)
		for i, node := range wire.Nodes {
			if len(node.Coords) != dim {
				return nil, fmt.Errorf("node %d has %d coordinates, want %d", node.ID, len(node.Coords), dim)
			}
			for axis := 0; axis < dim; axis++ {
				coords.Set(i, axis, node.Coords[axis])
			}
		}
		if err := g.SetCoords(coords); err != nil {
			return nil, err
		}
	}

	defaults, err := defaultsFromWire(wire.Defaults)
	if err != nil {
		return nil, err
	}
	g.Defaults = defaults
	return g, nil
}

func defaultsToWire(d PlotDefaults) *wireDefaults {
	out := &wireDefaults{
		EdgeWidth:  d.EdgeWidth,
		VertexSize: d.VertexSize,
	}
	if d.EdgeColor != nil {
		out.EdgeColor = HexColor(d.EdgeColor)
	}
	if d.EdgeStyle != LineSolid {
		out.EdgeStyle = d.EdgeStyle.String()
	}
	if d.Limits.Set {
		out.Limits = &wireRange{
			X: []float64{d.Limits.XMin, d.Limits.XMax},
			Y: []float64{d.Limits.YMin, d.Limits.YMax},
		}
		if d.Limits.ZMin != 0 || d.Limits.ZMax != 0 {
			out.Limits.Z = []float64{d.Limits.ZMin, d.Limits.ZMax}
		}
	}
	if d.Camera != nil {
		out.Camera = []float64{d.Camera.X, d.Camera.Y, d.Camera.Z}
	}
	if out.EdgeWidth == 0 && out.EdgeColor == "" && out.EdgeStyle == "" &&
		out.Limits == nil && out.VertexSize == nil && out.Camera == nil {
		return nil
	}
	return out
}

func defaultsFromWire(wire *wireDefaults) (PlotDefaults, error) {
	if wire == nil {
		return PlotDefaults{}, nil
	}
	d := PlotDefaults{
		EdgeWidth:  wire.EdgeWidth,
		VertexSize: wire.VertexSize,
	}
	if wire.EdgeColor != "" {
		c, err := ParseHexColor(wire.EdgeColor)
		if err != nil {
			return PlotDefaults{}, fmt.Errorf("edge color: %w", err)
		}
		d.EdgeColor = c
	}
	if wire.EdgeStyle != "" {
		style, err := ParseLineStyle(wire.EdgeStyle)
		if err != nil {
			return PlotDefaults{}, err
		}
		d.EdgeStyle = style
	}
	if wire.Limits != nil {
		if len(wire.Limits.X) != 2 || len(wire.Limits.Y) != 2 {
			return PlotDefaults{}, fmt.Errorf("limits must have [lo, hi] per axis")
		}
		d.Limits = Limits{
			Set:  true,
			XMin: wire.Limits.X[0], XMax: wire.Limits.X[1],
			YMin: wire.Limits.Y[0], YMax: wire.Limits.Y[1],
		}
		if len(wire.Limits.Z) == 2 {
			d.Limits.ZMin, d.Limits.ZMax = wire.Limits.Z[0], wire.Limits.Z[1]
		}
	}
	if len(wire.Camera) > 0 {
		if len(wire.Camera) != 3 {
			return PlotDefaults{}, fmt.Errorf("camera must have 3 components, got %d", len(wire.Camera))
		}
		d.Camera = &Camera{X: wire.Camera[0], Y: wire.Camera[1], Z: wire.Camera[2]}
	}
	return d, nil
}

// HexColor formats a color as #rrggbb. Alpha is dropped; the wire format
// has no translucent edges.
func HexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// ParseHexColor parses #rrggbb into an opaque RGBA color.
func ParseHexColor(s string) (color.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
