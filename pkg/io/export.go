package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/plot"
)

// wireSignal is the JSON form of a signal. The imag array is omitted
// for purely real signals.
type wireSignal struct {
	Values []float64 `json:"values"`
	Imag   []float64 `json:"imag,omitempty"`
}

// WriteSignal encodes a signal as JSON and writes it to w.
// The output can be re-imported with [ReadSignal] for round-trip
// processing.
func WriteSignal(sig plot.Signal, w io.Writer) error {
	out := wireSignal{Values: sig.Real()}
	if sig.ImagNorm() > 0 {
		out.Imag = sig.Imag()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSignal writes a signal to a JSON file at path.
// This is a convenience wrapper around [WriteSignal] for file-based output.
func ExportSignal(sig plot.Signal, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSignal(sig, f)
}

// ExportGraph writes a graph to a JSON file at path using the node-link
// format of [graph.WriteGraph].
func ExportGraph(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return graph.WriteGraph(g, f)
}
