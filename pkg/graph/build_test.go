package graph

import (
	"math"
	"testing"
)

func TestNewRing(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		wantErr   bool
		wantEdges int
	}{
		{"minimum size", 3, false, 6},
		{"fifteen vertices", 15, false, 30},
		{"too small", 2, true, 0},
		{"zero", 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewRing(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewRing(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if g.N() != tt.n {
				t.Errorf("N() = %d, want %d", g.N(), tt.n)
			}
			if got := g.EdgeCount(); got != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.wantEdges)
			}
			if g.Dim() != 2 {
				t.Errorf("Dim() = %d, want 2", g.Dim())
			}
			if g.Directed() {
				t.Error("Directed() = true, want false")
			}

			// Every vertex has exactly two neighbors.
			for i := 0; i < tt.n; i++ {
				deg := 0
				for j := 0; j < tt.n; j++ {
					if g.Weight(i, j) != 0 {
						deg++
					}
				}
				if deg != 2 {
					t.Errorf("vertex %d degree = %d, want 2", i, deg)
				}
			}
		})
	}
}

func TestNewPath(t *testing.T) {
	g, err := NewPath(5)
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}

	// Path with 5 vertices has 4 edges, stored symmetrically.
	if got := g.EdgeCount(); got != 8 {
		t.Errorf("EdgeCount() = %d, want 8", got)
	}

	// Endpoints have degree 1, interior vertices degree 2.
	for i := 0; i < 5; i++ {
		deg := 0
		for j := 0; j < 5; j++ {
			if g.Weight(i, j) != 0 {
				deg++
			}
		}
		want := 2
		if i == 0 || i == 4 {
			want = 1
		}
		if deg != want {
			t.Errorf("vertex %d degree = %d, want %d", i, deg, want)
		}
	}

	if _, err := NewPath(1); err == nil {
		t.Error("NewPath(1) error = nil, want error")
	}
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(3, 4)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	if g.N() != 12 {
		t.Errorf("N() = %d, want 12", g.N())
	}
	// 3×4 lattice: 3·3 horizontal + 2·4 vertical = 17 edges, doubled.
	if got := g.EdgeCount(); got != 34 {
		t.Errorf("EdgeCount() = %d, want 34", got)
	}

	// Corner (0,0) is stored at index 0 and placed top-left.
	v := g.Coord(0)
	if v.X != 0 || v.Y != 2 {
		t.Errorf("Coord(0) = %+v, want {0 2 0}", v)
	}

	if _, err := NewGrid(0, 5); err == nil {
		t.Error("NewGrid(0, 5) error = nil, want error")
	}
}

func TestNewSphere(t *testing.T) {
	g, err := NewSphere(30, 7)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}

	if g.Dim() != 3 {
		t.Errorf("Dim() = %d, want 3", g.Dim())
	}

	// All points sit on the unit sphere.
	for i := 0; i < g.N(); i++ {
		v := g.Coord(i)
		r := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		if math.Abs(r-1) > 1e-9 {
			t.Errorf("vertex %d radius = %g, want 1", i, r)
		}
	}

	// Symmetric wiring with at least sphereNeighbors per vertex.
	for i := 0; i < g.N(); i++ {
		deg := 0
		for j := 0; j < g.N(); j++ {
			if g.Weight(i, j) != 0 {
				if g.Weight(j, i) == 0 {
					t.Errorf("edge %d→%d not symmetric", i, j)
				}
				deg++
			}
		}
		if deg < sphereNeighbors {
			t.Errorf("vertex %d degree = %d, want >= %d", i, deg, sphereNeighbors)
		}
	}

	// Same seed reproduces placement.
	g2, err := NewSphere(30, 7)
	if err != nil {
		t.Fatal(err)
	}
	if g.Coord(3) != g2.Coord(3) {
		t.Errorf("seeded placement not reproducible: %+v vs %+v", g.Coord(3), g2.Coord(3))
	}

	if _, err := NewSphere(3, 1); err == nil {
		t.Error("NewSphere(3, 1) error = nil, want error")
	}
}

func TestNewSensor(t *testing.T) {
	g, err := NewSensor(40, 3)
	if err != nil {
		t.Fatalf("NewSensor: %v", err)
	}

	if g.Dim() != 2 {
		t.Errorf("Dim() = %d, want 2", g.Dim())
	}

	// Points in the unit square, weights in (0, 1].
	for i := 0; i < g.N(); i++ {
		v := g.Coord(i)
		if v.X < 0 || v.X > 1 || v.Y < 0 || v.Y > 1 {
			t.Errorf("vertex %d at %+v outside unit square", i, v)
		}
		for j := 0; j < g.N(); j++ {
			if w := g.Weight(i, j); w != 0 && (w <= 0 || w > 1) {
				t.Errorf("weight(%d, %d) = %g, want in (0, 1]", i, j, w)
			}
		}
	}

	if g.EdgeCount() == 0 {
		t.Error("EdgeCount() = 0, want connected placement")
	}
}
