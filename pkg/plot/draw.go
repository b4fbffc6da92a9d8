package plot

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/graph"
)

// Highlight ring scaling. 2D highlights shrink to a third of the marker
// size; 3D highlights keep the full marker size so the ring stays
// visible under perspective scaling.
const (
	highlightScale2D = 1.0 / 3.0
	highlightScale3D = 1.0
)

// barHighlightWidthFactor widens the highlighted bar relative to the
// configured bar width.
const barHighlightWidthFactor = 2.0

// Colors for primitives that do not follow the signal colormap. Arrows
// on directed graphs ignore the configured edge color; bars encode sign
// instead of magnitude.
var (
	arrowColor        = color.Color(color.Black)
	barNegativeColor  = color.Color(color.Black)
	barPositiveColor  = color.Color(color.RGBA{B: 0xff, A: 0xff})
	barHighlightColor = color.Color(color.RGBA{R: 0xff, A: 0xff})
)

// Draw renders the signal over the graph onto dst. The surface is
// cleared exactly once, then edges, vertices, and view configuration are
// emitted in a fixed order, and finally the surface is flushed. On a
// validation error nothing is drawn and dst is untouched.
//
// The sequence is:
//
//  1. Resolve options (fails before any surface call).
//  2. Clear.
//  3. Edges, if shown: arrows when directed, styled lines otherwise.
//  4. Vertices: bars, 2D markers, or 3D markers, plus the highlight.
//  5. Axis limits.
//  6. Camera, for 3D or bar plots.
//  7. Color range and colorbar, for color-mapped plots.
//  8. Hide axis decorations, then flush.
func Draw(dst Surface, g *graph.Graph, sig Signal, opts ...Option) error {
	set, err := Resolve(g, sig, opts...)
	if err != nil {
		return err
	}

	dst.Clear()

	if set.ShowEdges {
		drawEdges(dst, g, set)
	}

	values := sig.Real()
	switch {
	case set.Dim == 2 && set.Bar:
		drawBars(dst, g, values, set)
	case set.Dim == 2:
		drawMarkers(dst, g, values, set, highlightScale2D)
	default:
		drawMarkers(dst, g, values, set, highlightScale3D)
	}

	dst.SetAxisLimits(set.Defaults.Limits)
	if set.Dim == 3 || set.Bar {
		dst.SetCamera(set.Camera)
	}
	if !set.Bar {
		dst.SetColorRange(set.ColorLimits[0], set.ColorLimits[1])
		dst.Colorbar(set.Colorbar)
	}
	dst.HideDecorations()

	if err := dst.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "surface flush failed")
	}
	return nil
}

func drawEdges(dst Surface, g *graph.Graph, set Settings) {
	style := set.Defaults.EdgeStyleValue()
	arrow := graph.Style{Width: style.Width, Color: arrowColor, Line: graph.LineSolid}
	for _, e := range g.Edges() {
		from, to := g.Coord(e.From), g.Coord(e.To)
		if g.Directed() {
			dst.Arrow(from, to, arrow)
		} else {
			dst.Line(from, to, style)
		}
	}
}

func drawMarkers(dst Surface, g *graph.Graph, values []float64, set Settings, highlightScale float64) {
	points := make([]r3.Vec, g.N())
	for i := range points {
		points[i] = g.Coord(i)
	}
	dst.Markers(points, set.VertexSize, values)

	if set.Highlight > 0 {
		at := g.Coord(set.Highlight - 1)
		dst.OpenMarkers([]r3.Vec{at}, set.VertexSize*highlightScale)
	}
}

// drawBars renders the signal as vertical segments rising from each
// vertex, black for negative values and blue otherwise. Bars reuse the
// graph's edge line style at the configured bar width; the highlighted
// vertex gets a third color at double width.
func drawBars(dst Surface, g *graph.Graph, values []float64, set Settings) {
	line := set.Defaults.EdgeStyle
	for i, v := range values {
		base := g.Coord(i)
		c := barPositiveColor
		if v < 0 {
			c = barNegativeColor
		}
		dst.Line(base, r3.Vec{X: base.X, Y: base.Y, Z: v}, graph.Style{
			Width: set.BarWidth,
			Color: c,
			Line:  line,
		})
	}

	if set.Highlight > 0 {
		i := set.Highlight - 1
		base := g.Coord(i)
		dst.Line(base, r3.Vec{X: base.X, Y: base.Y, Z: values[i]}, graph.Style{
			Width: set.BarWidth * barHighlightWidthFactor,
			Color: barHighlightColor,
			Line:  line,
		})
	}
}
