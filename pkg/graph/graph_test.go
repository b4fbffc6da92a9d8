package graph

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/gsplot/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		weights  *mat.Dense
		wantErr  bool
		wantCode errors.Code
	}{
		{
			name:    "square matrix",
			weights: mat.NewDense(3, 3, nil),
		},
		{
			name:     "nil matrix",
			weights:  nil,
			wantErr:  true,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "non-square matrix",
			weights:  mat.NewDense(3, 4, nil),
			wantErr:  true,
			wantCode: errors.ErrCodeDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.weights, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got := errors.GetCode(err); got != tt.wantCode {
					t.Errorf("GetCode() = %v, want %v", got, tt.wantCode)
				}
				return
			}
			if g.N() != 3 {
				t.Errorf("N() = %d, want 3", g.N())
			}
		})
	}
}

func TestSetCoords(t *testing.T) {
	tests := []struct {
		name    string
		coords  *mat.Dense
		wantErr bool
		wantDim int
	}{
		{
			name:    "2D coordinates",
			coords:  mat.NewDense(4, 2, nil),
			wantDim: 2,
		},
		{
			name:    "3D coordinates",
			coords:  mat.NewDense(4, 3, nil),
			wantDim: 3,
		},
		{
			name:    "nil coordinates",
			coords:  nil,
			wantErr: true,
		},
		{
			name:    "wrong row count",
			coords:  mat.NewDense(5, 2, nil),
			wantErr: true,
		},
		{
			name:    "wrong column count",
			coords:  mat.NewDense(4, 4, nil),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(mat.NewDense(4, 4, nil), false)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			err = g.SetCoords(tt.coords)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetCoords() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if g.HasCoords() {
					t.Error("HasCoords() = true after failed SetCoords, want false")
				}
				return
			}
			if got := g.Dim(); got != tt.wantDim {
				t.Errorf("Dim() = %d, want %d", got, tt.wantDim)
			}
		})
	}
}

func TestEdges(t *testing.T) {
	tests := []struct {
		name      string
		build     func(t *testing.T) *Graph
		wantEdges int
		check     func(t *testing.T, edges []Edge)
	}{
		{
			name: "empty",
			build: func(t *testing.T) *Graph {
				g, err := New(mat.NewDense(3, 3, nil), false)
				if err != nil {
					t.Fatal(err)
				}
				return g
			},
			wantEdges: 0,
		},
		{
			name: "symmetric pair counts twice",
			build: func(t *testing.T) *Graph {
				w := mat.NewDense(2, 2, nil)
				w.Set(0, 1, 1)
				w.Set(1, 0, 1)
				g, err := New(w, false)
				if err != nil {
					t.Fatal(err)
				}
				return g
			},
			wantEdges: 2,
			check: func(t *testing.T, edges []Edge) {
				if edges[0] != (Edge{From: 0, To: 1, Weight: 1}) {
					t.Errorf("edges[0] = %+v, want {0 1 1}", edges[0])
				}
				if edges[1] != (Edge{From: 1, To: 0, Weight: 1}) {
					t.Errorf("edges[1] = %+v, want {1 0 1}", edges[1])
				}
			},
		},
		{
			name: "directed single entry",
			build: func(t *testing.T) *Graph {
				w := mat.NewDense(3, 3, nil)
				w.Set(0, 2, 0.5)
				g, err := New(w, true)
				if err != nil {
					t.Fatal(err)
				}
				return g
			},
			wantEdges: 1,
			check: func(t *testing.T, edges []Edge) {
				if edges[0].Weight != 0.5 {
					t.Errorf("weight = %g, want 0.5", edges[0].Weight)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build(t)

			edges := g.Edges()
			if got := len(edges); got != tt.wantEdges {
				t.Fatalf("len(Edges()) = %d, want %d", got, tt.wantEdges)
			}
			if got := g.EdgeCount(); got != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, edges)
			}
		})
	}
}

func TestCoord(t *testing.T) {
	g, err := New(mat.NewDense(2, 2, nil), false)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.SetCoords(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatal(err)
	}

	v := g.Coord(1)
	if v.X != 3 || v.Y != 4 || v.Z != 0 {
		t.Errorf("Coord(1) = %+v, want {3 4 0}", v)
	}
}

func TestCoordBounds(t *testing.T) {
	tests := []struct {
		name   string
		coords *mat.Dense
		wantOK bool
		want   Limits
	}{
		{
			name:   "no coordinates",
			coords: nil,
			wantOK: false,
		},
		{
			name:   "2D spread",
			coords: mat.NewDense(3, 2, []float64{-1, 0, 1, 2, 0, -3}),
			wantOK: true,
			want:   Limits{Set: true, XMin: -1, XMax: 1, YMin: -3, YMax: 2},
		},
		{
			name:   "degenerate axis padded",
			coords: mat.NewDense(3, 2, []float64{0, 5, 1, 5, 2, 5}),
			wantOK: true,
			want:   Limits{Set: true, XMin: 0, XMax: 2, YMin: 4, YMax: 6},
		},
		{
			name:   "3D",
			coords: mat.NewDense(2, 3, []float64{0, 0, -2, 1, 1, 2}),
			wantOK: true,
			want:   Limits{Set: true, XMin: 0, XMax: 1, YMin: 0, YMax: 1, ZMin: -2, ZMax: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := 3
			if tt.coords != nil {
				n, _ = tt.coords.Dims()
			}
			g, err := New(mat.NewDense(n, n, nil), false)
			if err != nil {
				t.Fatal(err)
			}
			if tt.coords != nil {
				if err := g.SetCoords(tt.coords); err != nil {
					t.Fatal(err)
				}
			}

			lim, ok := g.CoordBounds()
			if ok != tt.wantOK {
				t.Fatalf("CoordBounds() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && lim != tt.want {
				t.Errorf("CoordBounds() = %+v, want %+v", lim, tt.want)
			}
		})
	}
}

func TestResolvedDefaults(t *testing.T) {
	g, err := NewRing(5)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("fills unset fields", func(t *testing.T) {
		d := g.Defaults.Resolved(g)

		if d.EdgeWidth != 1 {
			t.Errorf("EdgeWidth = %g, want 1", d.EdgeWidth)
		}
		if d.EdgeColor == nil {
			t.Error("EdgeColor = nil, want black")
		}
		if !d.Limits.Set {
			t.Error("Limits.Set = false, want true")
		}
		// Ring coordinates span the unit circle.
		if d.Limits.XMin != -1 || d.Limits.XMax != 1 {
			t.Errorf("X limits = [%g, %g], want [-1, 1]", d.Limits.XMin, d.Limits.XMax)
		}
	})

	t.Run("keeps set fields", func(t *testing.T) {
		in := PlotDefaults{
			EdgeWidth: 2.5,
			Limits:    Limits{Set: true, XMin: -9, XMax: 9, YMin: -9, YMax: 9},
		}
		d := in.Resolved(g)

		if d.EdgeWidth != 2.5 {
			t.Errorf("EdgeWidth = %g, want 2.5", d.EdgeWidth)
		}
		if d.Limits.XMax != 9 {
			t.Errorf("XMax = %g, want 9", d.Limits.XMax)
		}
	})

	t.Run("receiver untouched", func(t *testing.T) {
		var in PlotDefaults
		in.Resolved(g)
		if in.EdgeWidth != 0 || in.Limits.Set {
			t.Errorf("receiver mutated: %+v", in)
		}
	})
}

func TestRingCoordinates(t *testing.T) {
	g, err := NewRing(4)
	if err != nil {
		t.Fatal(err)
	}

	// Vertex 0 at angle 0, vertex 1 at π/2.
	v0, v1 := g.Coord(0), g.Coord(1)
	if math.Abs(v0.X-1) > 1e-12 || math.Abs(v0.Y) > 1e-12 {
		t.Errorf("Coord(0) = %+v, want {1 0 0}", v0)
	}
	if math.Abs(v1.X) > 1e-12 || math.Abs(v1.Y-1) > 1e-12 {
		t.Errorf("Coord(1) = %+v, want {0 1 0}", v1)
	}
}
