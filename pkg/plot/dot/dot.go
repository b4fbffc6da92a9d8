package dot

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/plot"
	"github.com/matzehuels/gsplot/pkg/plot/svg"
)

// Options configures DOT export.
type Options struct {
	// Values includes the signal value in each vertex label.
	// When false, only the vertex number is shown.
	Values bool

	// Highlight marks one vertex (1-based) with a thick outline.
	// Zero highlights nothing.
	Highlight int
}

// ToDOT converts a graph and a signal to Graphviz DOT format. Vertices
// are filled with the signal colormap; an empty signal leaves them
// white, which is useful for topology-only diagrams. The resulting DOT
// string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Undirected edges are emitted once even though the weight matrix
// stores them symmetrically, since Graphviz would otherwise draw
// parallel strokes.
func ToDOT(g *graph.Graph, sig plot.Signal, opts Options) (string, error) {
	if norm := sig.ImagNorm(); norm > plot.ImagTolerance {
		return "", errors.New(errors.ErrCodeInvalidSignal,
			"signal has imaginary magnitude %g (tolerance %g)", norm, plot.ImagTolerance)
	}
	if sig.Len() != 0 && sig.Len() != g.N() {
		return "", errors.Wrap(errors.ErrCodeDimensionMismatch,
			&errors.MismatchError{What: "signal length", Want: g.N(), Got: sig.Len()},
			"signal does not cover the graph")
	}
	if opts.Highlight < 0 || opts.Highlight > g.N() {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"highlight vertex %d out of range [1, %d]", opts.Highlight, g.N())
	}

	def := g.Defaults.Resolved(g)

	var buf bytes.Buffer
	keyword, arrow := "graph", "--"
	if g.Directed() {
		keyword, arrow = "digraph", "->"
	}
	fmt.Fprintf(&buf, "%s G {\n", keyword)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	fmt.Fprintf(&buf, "  edge [penwidth=%.3g, color=%q%s];\n",
		def.EdgeWidth, hexColor(def.EdgeColor), edgeStyleAttr(def.EdgeStyle))
	buf.WriteString("\n")

	fills := fillColors(sig)
	values := sig.Real()
	for i := 0; i < g.N(); i++ {
		label := fmtLabel(i+1, values, opts.Values)
		fill := ""
		if i < len(fills) {
			fill = fills[i]
		}
		attrs := fmtAttrs(label, fill, opts.Highlight == i+1)
		if pos := posAttr(g, i); pos != "" {
			attrs = append(attrs, pos)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", strconv.Itoa(i+1), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if !g.Directed() && e.To < e.From {
			continue
		}
		fmt.Fprintf(&buf, "  %q %s %q;\n", strconv.Itoa(e.From+1), arrow, strconv.Itoa(e.To+1))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtLabel(vertex int, values []float64, showValues bool) string {
	if !showValues || vertex > len(values) {
		return strconv.Itoa(vertex)
	}
	return fmt.Sprintf("%d\n%.3g", vertex, values[vertex-1])
}

func fmtAttrs(label, fill string, highlighted bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	if highlighted {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// posAttr pins a vertex to its stored 2D coordinate. Layout engines
// that compute their own positions ignore it; neato honors it.
func posAttr(g *graph.Graph, i int) string {
	if !g.HasCoords() || g.Dim() != 2 {
		return ""
	}
	c := g.Coord(i)
	return fmt.Sprintf("pos=\"%.4g,%.4g!\"", c.X, c.Y)
}

func edgeStyleAttr(ls graph.LineStyle) string {
	switch ls {
	case graph.LineDashed:
		return ", style=dashed"
	case graph.LineDotted:
		return ", style=dotted"
	}
	return ""
}

// fillColors maps the signal through the colormap, one hex color per
// vertex. An empty signal yields nil.
func fillColors(sig plot.Signal) []string {
	if sig.Len() == 0 {
		return nil
	}
	lo, hi := sig.Range()
	if !(hi > lo) {
		hi = lo + 1
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(lo)
	cm.SetMax(hi)

	out := make([]string, sig.Len())
	for i, v := range sig.Real() {
		c, err := cm.At(v)
		if err != nil {
			c = color.Gray{Y: 0x80}
		}
		out[i] = hexColor(c)
	}
	return out
}

func hexColor(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [RenderPDF] or [RenderPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz viewBox so the document origin
// is (0, 0) and explicit pixel dimensions are present. Some SVG viewers
// clip or mis-scale the raw Graphviz output otherwise.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [svg.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	out, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return svg.ToPDF(out)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [svg.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	out, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return svg.ToPNG(out, scale)
}
