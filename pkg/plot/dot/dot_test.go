package dot

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/plot"
)

func TestToDOT_Undirected(t *testing.T) {
	g, err := graph.NewRing(4)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	dot, err := ToDOT(g, plot.SinSignal(4, 1), Options{})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	if !strings.Contains(dot, "graph G") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if strings.Contains(dot, "digraph") {
		t.Error("ToDOT() undirected graph declared as digraph")
	}
	if !strings.Contains(dot, `"1" -- "2"`) {
		t.Error("ToDOT() output missing ring edge")
	}
	if strings.Contains(dot, `"2" -- "1"`) {
		t.Error("ToDOT() emitted the symmetric duplicate of an edge")
	}
	if !strings.Contains(dot, "fillcolor=\"#") {
		t.Error("ToDOT() vertices not colored by the signal")
	}
}

func TestToDOT_Directed(t *testing.T) {
	w := mat.NewDense(3, 3, nil)
	w.Set(0, 1, 1)
	w.Set(1, 2, 1)
	g, err := graph.New(w, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	dot, err := ToDOT(g, plot.Signal{}, Options{})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"1" -> "2"`) || !strings.Contains(dot, `"2" -> "3"`) {
		t.Error("ToDOT() output missing directed edges")
	}
	if strings.Contains(dot, "fillcolor=\"#") {
		t.Error("ToDOT() colored vertices without a signal")
	}
}

func TestToDOT_Values(t *testing.T) {
	g, err := graph.NewRing(3)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	dot, err := ToDOT(g, plot.FromFloats([]float64{0.25, 0.5, 0.75}), Options{Values: true})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	if !strings.Contains(dot, "0.25") {
		t.Error("ToDOT() values output missing signal value")
	}
}

func TestToDOT_Highlight(t *testing.T) {
	g, err := graph.NewRing(5)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	dot, err := ToDOT(g, plot.LinearSignal(5), Options{Highlight: 3})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	if !strings.Contains(dot, "penwidth=3") {
		t.Error("ToDOT() highlight missing thick outline")
	}
}

func TestToDOT_EdgeStyle(t *testing.T) {
	g, err := graph.NewRing(4)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	g.Defaults.EdgeStyle = graph.LineDashed

	dot, err := ToDOT(g, plot.Signal{}, Options{})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	if !strings.Contains(dot, "style=dashed") {
		t.Error("ToDOT() missing dashed edge style")
	}
}

func TestToDOT_PinsCoordinates(t *testing.T) {
	g, err := graph.NewRing(4)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	dot, err := ToDOT(g, plot.Signal{}, Options{})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	if !strings.Contains(dot, `pos="`) {
		t.Error("ToDOT() missing pinned positions for 2D coordinates")
	}
}

func TestToDOT_LengthMismatch(t *testing.T) {
	g, err := graph.NewRing(4)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	_, err = ToDOT(g, plot.LinearSignal(3), Options{})
	if err == nil {
		t.Fatal("ToDOT() accepted a mismatched signal")
	}
	if !errors.Is(err, errors.ErrCodeDimensionMismatch) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeDimensionMismatch)
	}
}

func TestToDOT_InvalidSignal(t *testing.T) {
	g, err := graph.NewRing(3)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	_, err = ToDOT(g, plot.FromComplex([]complex128{1, 2i, 3}), Options{})
	if err == nil {
		t.Fatal("ToDOT() accepted a complex signal")
	}
	if !errors.Is(err, errors.ErrCodeInvalidSignal) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSignal)
	}
}

func TestToDOT_HighlightOutOfRange(t *testing.T) {
	g, err := graph.NewRing(3)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	_, err = ToDOT(g, plot.Signal{}, Options{Highlight: 4})
	if err == nil {
		t.Fatal("ToDOT() accepted an out-of-range highlight")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestFmtLabel(t *testing.T) {
	values := []float64{0.1, 0.2}

	if got := fmtLabel(2, values, false); got != "2" {
		t.Errorf("fmtLabel() plain = %q, want %q", got, "2")
	}
	if got := fmtLabel(2, values, true); got != "2\n0.2" {
		t.Errorf("fmtLabel() with value = %q, want %q", got, "2\n0.2")
	}
	if got := fmtLabel(3, values, true); got != "3" {
		t.Errorf("fmtLabel() past signal end = %q, want %q", got, "3")
	}
}

func TestFmtAttrs(t *testing.T) {
	attrs := fmtAttrs("1", "", false)
	if len(attrs) != 1 || !strings.Contains(attrs[0], "label=") {
		t.Errorf("fmtAttrs() plain = %v, want single label", attrs)
	}

	attrs = fmtAttrs("1", "#ff0000", true)
	joined := strings.Join(attrs, " ")
	if !strings.Contains(joined, "fillcolor=\"#ff0000\"") {
		t.Errorf("fmtAttrs() missing fill: %v", attrs)
	}
	if !strings.Contains(joined, "penwidth=3") {
		t.Errorf("fmtAttrs() missing highlight outline: %v", attrs)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := `digraph G { a -> b; }`
	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	dot := `not valid DOT {{{`
	_, err := RenderSVG(dot)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestRenderSVG_RoundTrip(t *testing.T) {
	g, err := graph.NewRing(6)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	text, err := ToDOT(g, plot.SinSignal(6, 1), Options{})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	svg, err := RenderSVG(text)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("rendered ring missing <svg> tag")
	}
}
