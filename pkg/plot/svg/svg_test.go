package svg

import (
	"image/color"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/plot"
)

func renderRing(t *testing.T, n int, opts ...plot.Option) string {
	t.Helper()
	g, err := graph.NewRing(n)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	s := New(640, 480)
	if err := plot.Draw(s, g, plot.SinSignal(n, 1), opts...); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	return string(s.Bytes())
}

func TestRenderRing(t *testing.T) {
	doc := renderRing(t, 15)

	if !strings.Contains(doc, "<svg") || !strings.Contains(doc, "</svg>") {
		t.Fatal("output is not a closed SVG document")
	}
	if got := strings.Count(doc, "<circle"); got != 15 {
		t.Errorf("circle count = %d, want 15 vertices", got)
	}
	// 15 undirected edges, each stored and drawn twice.
	if got := strings.Count(doc, "<path"); got != 30 {
		t.Errorf("path count = %d, want 30 edge segments", got)
	}
	if !strings.Contains(doc, "url(#colorbar)") {
		t.Error("colorbar missing from default render")
	}
	if !strings.Contains(doc, "<linearGradient") {
		t.Error("colorbar gradient definition missing")
	}
}

func TestRenderHighlight(t *testing.T) {
	doc := renderRing(t, 15, plot.WithHighlight(3))

	if got := strings.Count(doc, "<circle"); got != 16 {
		t.Errorf("circle count = %d, want 15 vertices plus 1 highlight ring", got)
	}
	if !strings.Contains(doc, "fill:none;stroke:#000000") {
		t.Error("open highlight ring missing")
	}
}

func TestRenderBar(t *testing.T) {
	doc := renderRing(t, 15, plot.WithBar())

	// 30 edge segments plus 15 bars, no markers, no colorbar.
	if got := strings.Count(doc, "<path"); got != 45 {
		t.Errorf("path count = %d, want 45", got)
	}
	if got := strings.Count(doc, "<circle"); got != 0 {
		t.Errorf("circle count = %d, want 0 in bar mode", got)
	}
	if strings.Contains(doc, "<linearGradient") {
		t.Error("colorbar present in bar mode")
	}
}

func TestRenderDirectedArrows(t *testing.T) {
	w := mat.NewDense(3, 3, nil)
	w.Set(0, 1, 1)
	w.Set(1, 2, 1)
	g, err := graph.New(w, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	coords := mat.NewDense(3, 2, []float64{0, 0, 2, 0, 1, 2})
	if err := g.SetCoords(coords); err != nil {
		t.Fatalf("SetCoords: %v", err)
	}

	s := New(640, 480)
	if err := plot.Draw(s, g, plot.FromFloats([]float64{1, 2, 3})); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	doc := string(s.Bytes())

	if got := strings.Count(doc, "<polygon"); got != 2 {
		t.Errorf("arrowhead polygon count = %d, want 2", got)
	}
}

func TestRenderSphere(t *testing.T) {
	g, err := graph.NewSphere(30, 7)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}

	s := New(640, 480)
	if err := plot.Draw(s, g, plot.LinearSignal(30)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	doc := string(s.Bytes())

	if got := strings.Count(doc, "<circle"); got != 30 {
		t.Errorf("circle count = %d, want 30 projected vertices", got)
	}
}

func TestClearDiscardsBufferedDrawing(t *testing.T) {
	doc := renderRing(t, 8)
	if !strings.Contains(doc, "<circle") {
		t.Fatal("first render empty")
	}

	s := New(640, 480)
	g, _ := graph.NewRing(8)
	if err := plot.Draw(s, g, plot.LinearSignal(8)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	s.Clear()
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := strings.Count(string(s.Bytes()), "<circle"); got != 0 {
		t.Errorf("circle count after Clear = %d, want 0", got)
	}
}

func TestFrameFollowsDecorations(t *testing.T) {
	s := New(200, 200)
	s.Clear()
	s.Line(r3.Vec{}, r3.Vec{X: 1, Y: 1}, graph.Style{Width: 1, Color: color.Black})
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !strings.Contains(string(s.Bytes()), "stroke:#888888") {
		t.Error("frame missing while decorations are visible")
	}

	s.HideDecorations()
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if strings.Contains(string(s.Bytes()), "stroke:#888888") {
		t.Error("frame present after HideDecorations")
	}
}

func TestMarkerColorFollowsValue(t *testing.T) {
	cm := New(100, 100).colorMap()
	lo := markerColor(cm, cm.Min())
	hi := markerColor(cm, cm.Max())
	if cssColor(lo) == cssColor(hi) {
		t.Error("extreme values map to the same color")
	}
	// Out-of-range values clamp instead of failing.
	if cssColor(markerColor(cm, cm.Max()+100)) != cssColor(hi) {
		t.Error("value above range does not clamp to the max color")
	}
}

func TestMarkerRadius(t *testing.T) {
	tests := []struct {
		size float64
		want int
	}{
		{500, 13},
		{50, 4},
		{0.1, 1},
	}
	for _, tt := range tests {
		if got := markerRadius(tt.size); got != tt.want {
			t.Errorf("markerRadius(%g) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestStrokeStyle(t *testing.T) {
	st := graph.Style{Width: 2, Color: color.RGBA{R: 0xff, A: 0xff}, Line: graph.LineDashed}
	got := strokeStyle(st)
	if !strings.Contains(got, "stroke:#ff0000") {
		t.Errorf("style %q missing red stroke", got)
	}
	if !strings.Contains(got, "stroke-dasharray") {
		t.Errorf("style %q missing dash pattern", got)
	}

	if got := strokeStyle(graph.Style{Width: 1}); !strings.Contains(got, "stroke:#000000") {
		t.Errorf("nil color style %q does not fall back to black", got)
	}
}
