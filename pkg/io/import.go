package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/plot"
)

// ReadSignal decodes a JSON signal from r.
//
// The input must be a JSON object with a "values" array. An optional
// "imag" array of the same length supplies imaginary components:
//
//	{"values": [0.0, 0.5, 1.0]}
//
// ReadSignal returns an error if the JSON is malformed or the imag
// array length does not match values. The returned signal is
// independent of r; ReadSignal does not close r.
func ReadSignal(r io.Reader) (plot.Signal, error) {
	var data wireSignal
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return plot.Signal{}, fmt.Errorf("decode: %w", err)
	}

	if data.Imag == nil {
		return plot.FromFloats(data.Values), nil
	}
	if len(data.Imag) != len(data.Values) {
		return plot.Signal{}, fmt.Errorf("imag has %d entries, values has %d", len(data.Imag), len(data.Values))
	}
	values := make([]complex128, len(data.Values))
	for i, re := range data.Values {
		values[i] = complex(re, data.Imag[i])
	}
	return plot.FromComplex(values), nil
}

// ImportSignal reads a JSON file at path and returns the decoded signal.
//
// ImportSignal opens the file, decodes it using [ReadSignal], and closes
// the file. Errors wrap the underlying cause with the file path for
// context.
func ImportSignal(path string) (plot.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return plot.Signal{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSignal(f)
}

// ImportGraph reads a JSON file at path and returns the decoded graph.
//
// ImportGraph opens the file, decodes it using [graph.ReadGraph], and
// closes the file. It returns the same validation errors as ReadGraph
// for malformed graphs, wrapped with the file path for context.
func ImportGraph(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := graph.ReadGraph(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return g, nil
}
