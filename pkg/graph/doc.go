// Package graph provides the weighted graph model that gsplot renders
// signals over.
//
// # Overview
//
// A [Graph] couples an N×N weight matrix (an edge exists wherever the weight
// is nonzero) with an N×2 or N×3 coordinate matrix and a [PlotDefaults]
// record holding graph-level display preferences. Both matrices are
// gonum [mat.Dense] values, so graphs interoperate directly with gonum-based
// tooling.
//
// # Basic Usage
//
// Create a graph with [New], attach coordinates with [Graph.SetCoords], and
// enumerate edges with [Graph.Edges]:
//
//	w := mat.NewDense(3, 3, nil)
//	w.Set(0, 1, 1)
//	w.Set(1, 0, 1)
//	g, _ := graph.New(w, false)
//	g.SetCoords(mat.NewDense(3, 2, []float64{0, 0, 1, 0, 0, 1}))
//
// Or use a generator: [NewRing], [NewPath], [NewGrid], [NewSphere], and
// [NewSensor] return ready-to-plot graphs with coordinates attached.
//
// # Edge Semantics
//
// [Graph.Edges] reports every nonzero entry of the weight matrix in
// row-major order. For undirected graphs stored symmetrically this yields
// each edge twice, once per direction. That duplication is intentional:
// rendering draws exactly what the matrix stores, and edge counts reflect
// stored entries.
//
// # Serialization
//
// [MarshalGraph] and [UnmarshalGraph] implement a node-link JSON format that
// round-trips graphs including their plotting defaults. See pkg/io for
// file-level helpers.
//
// # Concurrency
//
// Graph values are safe for concurrent reads but not concurrent writes.
//
// [mat.Dense]: gonum.org/v1/gonum/mat
package graph
