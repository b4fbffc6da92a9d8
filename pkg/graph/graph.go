package graph

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/gsplot/pkg/errors"
)

// Edge is a single nonzero entry of the weight matrix. From and To are
// zero-based vertex indices.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Graph is a weighted graph with optional vertex coordinates and graph-level
// plotting defaults. An edge exists between i and j exactly when the weight
// matrix entry (i, j) is nonzero; undirected graphs are stored symmetrically
// and keep both entries.
//
// The zero value is not usable - use New or one of the generators.
// Graph is not safe for concurrent modification.
type Graph struct {
	weights  *mat.Dense // n×n, edge iff nonzero
	coords   *mat.Dense // n×2 or n×3, nil when absent
	directed bool

	// Defaults holds graph-level display preferences consulted when a plot
	// call does not override them. Unset fields are resolved at plot time;
	// the graph itself is never mutated by rendering.
	Defaults PlotDefaults
}

// New creates a graph from an n×n weight matrix. The matrix is held by
// reference, not copied.
func New(weights *mat.Dense, directed bool) (*Graph, error) {
	if weights == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "weight matrix is nil")
	}
	r, c := weights.Dims()
	if r != c {
		return nil, errors.Wrap(errors.ErrCodeDimensionMismatch,
			&errors.MismatchError{What: "weight matrix columns", Want: r, Got: c},
			"weight matrix must be square")
	}
	if err := errors.ValidateVertexCount(r); err != nil {
		return nil, err
	}
	return &Graph{weights: weights, directed: directed}, nil
}

// SetCoords attaches an n×2 or n×3 coordinate matrix, one row per vertex.
// The matrix is held by reference, not copied.
func (g *Graph) SetCoords(coords *mat.Dense) error {
	if coords == nil {
		return errors.New(errors.ErrCodeInvalidInput, "coordinate matrix is nil")
	}
	r, c := coords.Dims()
	if r != g.N() {
		return errors.Wrap(errors.ErrCodeDimensionMismatch,
			&errors.MismatchError{What: "coordinate rows", Want: g.N(), Got: r},
			"coordinates must have one row per vertex")
	}
	if c != 2 && c != 3 {
		return errors.New(errors.ErrCodeDimensionMismatch,
			"coordinates must have 2 or 3 columns, got %d", c)
	}
	g.coords = coords
	return nil
}

// N returns the vertex count.
func (g *Graph) N() int {
	r, _ := g.weights.Dims()
	return r
}

// Directed reports whether edges carry direction.
func (g *Graph) Directed() bool { return g.directed }

// HasCoords reports whether a coordinate matrix is attached.
func (g *Graph) HasCoords() bool { return g.coords != nil }

// Dim returns the coordinate dimensionality: 2, 3, or 0 when no
// coordinates are attached.
func (g *Graph) Dim() int {
	if g.coords == nil {
		return 0
	}
	_, c := g.coords.Dims()
	return c
}

// Coord returns the position of vertex i. For 2D graphs the Z component
// is zero.
func (g *Graph) Coord(i int) r3.Vec {
	v := r3.Vec{X: g.coords.At(i, 0), Y: g.coords.At(i, 1)}
	if g.Dim() == 3 {
		v.Z = g.coords.At(i, 2)
	}
	return v
}

// Coords returns the raw coordinate matrix, or nil when absent.
func (g *Graph) Coords() *mat.Dense { return g.coords }

// Weights returns the raw weight matrix.
func (g *Graph) Weights() *mat.Dense { return g.weights }

// Weight returns the weight matrix entry (i, j).
func (g *Graph) Weight(i, j int) float64 { return g.weights.At(i, j) }

// Edges enumerates every nonzero weight entry in row-major order. For a
// symmetric undirected graph each edge therefore appears twice; callers
// that render edges rely on this (overdrawing a segment is harmless and
// keeps draw counts equal to stored entries).
func (g *Graph) Edges() []Edge {
	n := g.N()
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if w := g.weights.At(i, j); w != 0 {
				edges = append(edges, Edge{From: i, To: j, Weight: w})
			}
		}
	}
	return edges
}

// EdgeCount returns the number of nonzero weight entries, with the same
// double-count rule for symmetric undirected storage as Edges.
func (g *Graph) EdgeCount() int {
	n := g.N()
	count := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if g.weights.At(i, j) != 0 {
				count++
			}
		}
	}
	return count
}

// CoordBounds returns axis limits spanning the coordinate matrix, one
// lo/hi pair per axis. Degenerate axes (all coordinates equal) are padded
// by one unit in each direction so the limits always describe a nonempty
// box. Returns ok=false when no coordinates are attached.
func (g *Graph) CoordBounds() (lim Limits, ok bool) {
	if g.coords == nil {
		return Limits{}, false
	}
	n := g.N()
	dim := g.Dim()

	lim.Set = true
	for axis := 0; axis < dim; axis++ {
		lo, hi := g.coords.At(0, axis), g.coords.At(0, axis)
		for i := 1; i < n; i++ {
			v := g.coords.At(i, axis)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if lo == hi {
			lo, hi = lo-1, hi+1
		}
		switch axis {
		case 0:
			lim.XMin, lim.XMax = lo, hi
		case 1:
			lim.YMin, lim.YMax = lo, hi
		case 2:
			lim.ZMin, lim.ZMax = lo, hi
		}
	}
	return lim, true
}
