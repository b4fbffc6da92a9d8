package graph

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/gsplot/pkg/errors"
)

// NewRing creates an undirected cycle of n vertices placed on the unit
// circle. n must be at least 3.
func NewRing(n int) (*Graph, error) {
	if n < 3 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "ring requires at least 3 vertices, got %d", n)
	}

	w := mat.NewDense(n, n, nil)
	coords := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		w.Set(i, j, 1)
		w.Set(j, i, 1)

		theta := 2 * math.Pi * float64(i) / float64(n)
		coords.Set(i, 0, math.Cos(theta))
		coords.Set(i, 1, math.Sin(theta))
	}

	g, err := New(w, false)
	if err != nil {
		return nil, err
	}
	if err := g.SetCoords(coords); err != nil {
		return nil, err
	}
	return g, nil
}

// NewPath creates an undirected path of n vertices on the x axis. n must
// be at least 2.
func NewPath(n int) (*Graph, error) {
	if n < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "path requires at least 2 vertices, got %d", n)
	}

	w := mat.NewDense(n, n, nil)
	coords := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		if i+1 < n {
			w.Set(i, i+1, 1)
			w.Set(i+1, i, 1)
		}
		coords.Set(i, 0, float64(i))
		coords.Set(i, 1, 0)
	}

	g, err := New(w, false)
	if err != nil {
		return nil, err
	}
	if err := g.SetCoords(coords); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGrid creates an undirected rows×cols lattice with 4-neighbor
// connectivity. Vertex (r, c) sits at coordinates (c, rows-1-r) so row 0
// renders on top.
func NewGrid(rows, cols int) (*Graph, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid requires positive dimensions, got %d×%d", rows, cols)
	}
	n := rows * cols
	if err := errors.ValidateVertexCount(n); err != nil {
		return nil, err
	}

	w := mat.NewDense(n, n, nil)
	coords := mat.NewDense(n, 2, nil)
	idx := func(r, c int) int { return r*cols + c }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := idx(r, c)
			coords.Set(i, 0, float64(c))
			coords.Set(i, 1, float64(rows-1-r))
			if c+1 < cols {
				j := idx(r, c+1)
				w.Set(i, j, 1)
				w.Set(j, i, 1)
			}
			if r+1 < rows {
				j := idx(r+1, c)
				w.Set(i, j, 1)
				w.Set(j, i, 1)
			}
		}
	}

	g, err := New(w, false)
	if err != nil {
		return nil, err
	}
	if err := g.SetCoords(coords); err != nil {
		return nil, err
	}
	return g, nil
}

// sphereNeighbors is the per-vertex neighbor count for NewSphere.
const sphereNeighbors = 4

// NewSphere creates an undirected graph of n random points on the unit
// sphere, each wired to its nearest neighbors. The seed makes point
// placement reproducible. n must be at least sphereNeighbors+1.
func NewSphere(n int, seed int64) (*Graph, error) {
	if n < sphereNeighbors+1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sphere requires at least %d vertices, got %d", sphereNeighbors+1, n)
	}

	rng := rand.New(rand.NewSource(seed))
	coords := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		// Normalized gaussian triples are uniform on the sphere.
		x, y, z := rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
		norm := math.Sqrt(x*x + y*y + z*z)
		if norm == 0 {
			norm = 1
		}
		coords.Set(i, 0, x/norm)
		coords.Set(i, 1, y/norm)
		coords.Set(i, 2, z/norm)
	}

	w := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for _, j := range nearest(coords, i, sphereNeighbors) {
			w.Set(i, j, 1)
			w.Set(j, i, 1)
		}
	}

	g, err := New(w, false)
	if err != nil {
		return nil, err
	}
	if err := g.SetCoords(coords); err != nil {
		return nil, err
	}
	return g, nil
}

// NewSensor creates an undirected random geometric graph: n points uniform
// in the unit square, connected when closer than the standard connectivity
// radius, with gaussian edge weights decaying in distance.
func NewSensor(n int, seed int64) (*Graph, error) {
	if n < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sensor requires at least 2 vertices, got %d", n)
	}

	rng := rand.New(rand.NewSource(seed))
	coords := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		coords.Set(i, 0, rng.Float64())
		coords.Set(i, 1, rng.Float64())
	}

	// Radius c·sqrt(log n / n) keeps the graph connected with high
	// probability for uniform placements.
	radius := 1.7 * math.Sqrt(math.Log(float64(n))/float64(n))
	sigma := radius / 2

	w := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := coords.At(i, 0) - coords.At(j, 0)
			dy := coords.At(i, 1) - coords.At(j, 1)
			d := math.Sqrt(dx*dx + dy*dy)
			if d < radius {
				weight := math.Exp(-d * d / (2 * sigma * sigma))
				w.Set(i, j, weight)
				w.Set(j, i, weight)
			}
		}
	}

	g, err := New(w, false)
	if err != nil {
		return nil, err
	}
	if err := g.SetCoords(coords); err != nil {
		return nil, err
	}
	return g, nil
}

// nearest returns the indices of the k points closest to point i,
// excluding i itself.
func nearest(coords *mat.Dense, i, k int) []int {
	n, dim := coords.Dims()
	type cand struct {
		idx  int
		dist float64
	}
	cands := make([]cand, 0, n-1)
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		var d float64
		for axis := 0; axis < dim; axis++ {
			diff := coords.At(i, axis) - coords.At(j, axis)
			d += diff * diff
		}
		cands = append(cands, cand{idx: j, dist: d})
	}

	// Partial selection sort over the k smallest distances.
	out := make([]int, 0, k)
	for len(out) < k && len(cands) > 0 {
		best := 0
		for c := 1; c < len(cands); c++ {
			if cands[c].dist < cands[best].dist {
				best = c
			}
		}
		out = append(out, cands[best].idx)
		cands[best] = cands[len(cands)-1]
		cands = cands[:len(cands)-1]
	}
	return out
}
