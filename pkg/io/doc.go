// Package io provides JSON import and export for graphs and signals.
//
// # Overview
//
// This package enables serialization of weighted graphs and vertex
// signals to and from simple JSON formats. The formats are designed
// for:
//
//   - Exchanging graphs with external tools that produce or consume
//     node-link data
//   - Caching built graphs for faster re-rendering
//   - Round-trip preservation: import, plot, export, and re-import
//     identically
//
// # Graph Format
//
// Graphs use the node-link format defined by [graph.WriteGraph]:
//
//	{
//	  "directed": false,
//	  "nodes": [
//	    {"id": 0, "coords": [1.0, 0.0]},
//	    {"id": 1, "coords": [0.0, 1.0]}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1, "weight": 1.0}
//	  ],
//	  "defaults": {"edge_width": 1.5}
//	}
//
// Vertex ids are implied by position; coordinates and plotting defaults
// are optional and survive round trips.
//
// # Signal Format
//
// Signals are a values array, with an imag array present only when the
// signal carries imaginary components:
//
//	{
//	  "values": [0.0, 0.5, 1.0],
//	  "imag": [0.0, 0.0, 0.1]
//	}
//
// # Import
//
// Use [ImportGraph] and [ImportSignal] to read from file paths, or
// [graph.ReadGraph] and [ReadSignal] for arbitrary readers:
//
//	g, err := io.ImportGraph("ring.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Import validates the structure: edges must reference existing nodes
// and coordinate rows must have a consistent dimension. Errors are
// wrapped with the file path for context.
//
// # Export
//
// Use [ExportGraph] and [ExportSignal] to write files:
//
//	err := io.ExportGraph(g, "out.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
package io
