// Package gplot renders plots through gonum/plot, producing SVG, PNG,
// or PDF documents.
//
// Like the other backends it buffers drawing calls and materializes
// output on Flush. Flat 2D plots use gonum's own axis mapping; plots
// with a camera are projected to viewport coordinates first and drawn
// back-to-front.
package gplot

import (
	"bytes"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/graph"
	gsplot "github.com/matzehuels/gsplot/pkg/plot"
)

// Output formats supported by this backend.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// colorbarWidth is the horizontal space reserved for the legend, in
// pixels.
const colorbarWidth = 70.0

// renderDPI converts pixel dimensions to vg lengths.
const renderDPI = 96

type opKind int

const (
	opLine opKind = iota
	opArrow
	opMarkers
	opOpenMarkers
)

type op struct {
	kind   opKind
	from   r3.Vec
	to     r3.Vec
	points []r3.Vec
	values []float64
	size   float64
	style  graph.Style
}

// Surface implements [gsplot.Surface] on gonum/plot.
type Surface struct {
	width  float64
	height float64
	format string

	ops          []op
	limits       graph.Limits
	camera       graph.Camera
	cameraSet    bool
	colorLo      float64
	colorHi      float64
	colorSet     bool
	showColorbar bool
	decorations  bool

	buf bytes.Buffer
}

var _ gsplot.Surface = (*Surface)(nil)

// New returns a surface rendering a width by height pixel canvas in the
// given format.
func New(width, height float64, format string) (*Surface, error) {
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported gonum output format %q (want svg, png, or pdf)", format)
	}
	if width < 100 {
		width = 100
	}
	if height < 100 {
		height = 100
	}
	return &Surface{width: width, height: height, format: format, decorations: true}, nil
}

func (s *Surface) Clear() {
	s.ops = nil
	s.limits = graph.Limits{}
	s.cameraSet = false
	s.colorSet = false
	s.showColorbar = false
	s.decorations = true
	s.buf.Reset()
}

func (s *Surface) Line(from, to r3.Vec, style graph.Style) {
	s.ops = append(s.ops, op{kind: opLine, from: from, to: to, style: style})
}

func (s *Surface) Arrow(from, to r3.Vec, style graph.Style) {
	s.ops = append(s.ops, op{kind: opArrow, from: from, to: to, style: style})
}

func (s *Surface) Markers(points []r3.Vec, size float64, values []float64) {
	pts := make([]r3.Vec, len(points))
	copy(pts, points)
	vals := make([]float64, len(values))
	copy(vals, values)
	s.ops = append(s.ops, op{kind: opMarkers, points: pts, size: size, values: vals})
}

func (s *Surface) OpenMarkers(points []r3.Vec, size float64) {
	pts := make([]r3.Vec, len(points))
	copy(pts, points)
	s.ops = append(s.ops, op{kind: opOpenMarkers, points: pts, size: size})
}

func (s *Surface) SetAxisLimits(lim graph.Limits) {
	s.limits = lim
}

func (s *Surface) SetCamera(cam graph.Camera) {
	s.camera = cam
	s.cameraSet = true
}

func (s *Surface) SetColorRange(lo, hi float64) {
	s.colorLo, s.colorHi = lo, hi
	s.colorSet = true
}

func (s *Surface) Colorbar(show bool) {
	s.showColorbar = show
}

func (s *Surface) HideDecorations() {
	s.decorations = false
}

// Bytes returns the document produced by the last Flush.
func (s *Surface) Bytes() []byte {
	return s.buf.Bytes()
}

// Flush builds the gonum plot from the buffered calls and encodes it in
// the surface format.
func (s *Surface) Flush() error {
	cm := s.colorMap()

	p := plot.New()
	if err := s.populate(p, cm); err != nil {
		return err
	}
	if !s.decorations {
		p.HideAxes()
	}

	var bar *plot.Plot
	if s.showColorbar {
		bar = plot.New()
		bar.HideX()
		bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	}

	return s.encode(p, bar)
}

// populate adds the buffered geometry to the plot, projecting it first
// when a camera is set.
func (s *Surface) populate(p *plot.Plot, cm palette.ColorMap) error {
	if s.cameraSet {
		return s.populateProjected(p, cm)
	}

	headLen := 0.03 * s.dataSpan()
	for _, d := range s.ops {
		if err := s.addOp(p, d, cm, flatPoint, headLen); err != nil {
			return err
		}
	}

	if s.limits.Set {
		p.X.Min, p.X.Max = s.limits.XMin, s.limits.XMax
		p.Y.Min, p.Y.Max = s.limits.YMin, s.limits.YMax
	}
	return nil
}

func (s *Surface) populateProjected(p *plot.Plot, cm palette.ColorMap) error {
	proj := gsplot.NewProjector(s.camera, s.contentBounds(), s.width, s.height)
	height := s.height
	point := func(v r3.Vec) (plotter.XY, bool) {
		px, py, _, ok := proj.Project(v)
		// gonum's y axis grows upward.
		return plotter.XY{X: px, Y: height - py}, ok
	}

	ordered := make([]op, len(s.ops))
	copy(ordered, s.ops)
	sort.SliceStable(ordered, func(i, j int) bool {
		return opDepth(ordered[i], proj) > opDepth(ordered[j], proj)
	})

	for _, d := range ordered {
		if err := s.addOp(p, d, cm, point, 12); err != nil {
			return err
		}
	}

	p.X.Min, p.X.Max = 0, s.width
	p.Y.Min, p.Y.Max = 0, s.height
	return nil
}

// flatPoint passes data coordinates through unchanged.
func flatPoint(v r3.Vec) (plotter.XY, bool) {
	return plotter.XY{X: v.X, Y: v.Y}, true
}

func (s *Surface) addOp(p *plot.Plot, d op, cm palette.ColorMap, point func(r3.Vec) (plotter.XY, bool), headLen float64) error {
	switch d.kind {
	case opLine, opArrow:
		from, ok1 := point(d.from)
		to, ok2 := point(d.to)
		if !ok1 || !ok2 {
			return nil
		}
		if err := addSegment(p, from, to, d.style); err != nil {
			return err
		}
		if d.kind == opArrow {
			if err := addArrowHead(p, from, to, d.style, headLen); err != nil {
				return err
			}
		}

	case opMarkers:
		xys := make(plotter.XYs, 0, len(d.points))
		colors := make([]color.Color, 0, len(d.points))
		for i, pt := range d.points {
			xy, ok := point(pt)
			if !ok {
				continue
			}
			xys = append(xys, xy)
			var v float64
			if i < len(d.values) {
				v = d.values[i]
			}
			colors = append(colors, markerColor(cm, v))
		}
		if len(xys) == 0 {
			return nil
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "build scatter")
		}
		radius := markerRadius(d.size)
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: colors[i], Radius: radius, Shape: draw.CircleGlyph{}}
		}
		p.Add(sc)

	case opOpenMarkers:
		xys := make(plotter.XYs, 0, len(d.points))
		for _, pt := range d.points {
			if xy, ok := point(pt); ok {
				xys = append(xys, xy)
			}
		}
		if len(xys) == 0 {
			return nil
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "build highlight scatter")
		}
		sc.GlyphStyle = draw.GlyphStyle{
			Color:  color.Black,
			Radius: markerRadius(d.size),
			Shape:  draw.RingGlyph{},
		}
		p.Add(sc)
	}
	return nil
}

func addSegment(p *plot.Plot, from, to plotter.XY, style graph.Style) error {
	ln, err := plotter.NewLine(plotter.XYs{from, to})
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "build line")
	}
	ln.LineStyle = lineStyle(style)
	p.Add(ln)
	return nil
}

// addArrowHead draws the two head strokes of a directed edge, angled
// back from the destination point.
func addArrowHead(p *plot.Plot, from, to plotter.XY, style graph.Style, headLen float64) error {
	dx, dy := to.X-from.X, to.Y-from.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 || headLen <= 0 {
		return nil
	}
	dx /= dist
	dy /= dist
	px, py := -dy, dx

	half := headLen / 2
	left := plotter.XY{X: to.X - dx*headLen + px*half, Y: to.Y - dy*headLen + py*half}
	right := plotter.XY{X: to.X - dx*headLen - px*half, Y: to.Y - dy*headLen - py*half}

	if err := addSegment(p, left, to, style); err != nil {
		return err
	}
	return addSegment(p, right, to, style)
}

func (s *Surface) encode(main, bar *plot.Plot) error {
	w, h := pxLen(s.width), pxLen(s.height)
	s.buf.Reset()

	switch s.format {
	case FormatSVG:
		c := vgsvg.New(w, h)
		s.compose(draw.New(c), main, bar, w)
		if _, err := c.WriteTo(&s.buf); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "encode svg")
		}
	case FormatPNG:
		c := vgimg.New(w, h)
		s.compose(draw.New(c), main, bar, w)
		png := vgimg.PngCanvas{Canvas: c}
		if _, err := png.WriteTo(&s.buf); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
		}
	case FormatPDF:
		c := vgpdf.New(w, h)
		s.compose(draw.New(c), main, bar, w)
		if _, err := c.WriteTo(&s.buf); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "encode pdf")
		}
	}
	return nil
}

// compose lays the main plot and the optional colorbar side by side.
func (s *Surface) compose(dc draw.Canvas, main, bar *plot.Plot, w vg.Length) {
	if bar == nil {
		main.Draw(dc)
		return
	}
	cbw := pxLen(colorbarWidth)
	main.Draw(draw.Crop(dc, 0, -cbw, 0, 0))
	bar.Draw(draw.Crop(dc, w-cbw, 0, 0, 0))
}

// contentBounds widens the configured axis limits to cover all buffered
// geometry.
func (s *Surface) contentBounds() graph.Limits {
	lim := s.limits
	have := lim.Set
	expand := func(v r3.Vec) {
		if !have {
			lim = graph.Limits{Set: true, XMin: v.X, XMax: v.X, YMin: v.Y, YMax: v.Y, ZMin: v.Z, ZMax: v.Z}
			have = true
			return
		}
		lim.XMin = math.Min(lim.XMin, v.X)
		lim.XMax = math.Max(lim.XMax, v.X)
		lim.YMin = math.Min(lim.YMin, v.Y)
		lim.YMax = math.Max(lim.YMax, v.Y)
		lim.ZMin = math.Min(lim.ZMin, v.Z)
		lim.ZMax = math.Max(lim.ZMax, v.Z)
	}

	for _, d := range s.ops {
		switch d.kind {
		case opLine, opArrow:
			expand(d.from)
			expand(d.to)
		case opMarkers, opOpenMarkers:
			for _, p := range d.points {
				expand(p)
			}
		}
	}

	if !have {
		lim = graph.Limits{Set: true, XMin: -1, XMax: 1, YMin: -1, YMax: 1, ZMin: -1, ZMax: 1}
	}
	return lim
}

// dataSpan is the larger axis extent of the drawing, used to scale
// arrowheads in data coordinates.
func (s *Surface) dataSpan() float64 {
	lim := s.contentBounds()
	return math.Max(lim.XMax-lim.XMin, lim.YMax-lim.YMin)
}

func opDepth(d op, proj *gsplot.Projector) float64 {
	var sum float64
	var n int
	add := func(v r3.Vec) {
		if _, _, depth, ok := proj.Project(v); ok {
			sum += depth
			n++
		}
	}
	switch d.kind {
	case opLine, opArrow:
		add(d.from)
		add(d.to)
	case opMarkers, opOpenMarkers:
		for _, p := range d.points {
			add(p)
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// colorMap returns the signal colormap scaled to the configured range,
// falling back to the range of buffered marker values.
func (s *Surface) colorMap() palette.ColorMap {
	cm := moreland.SmoothBlueRed()
	lo, hi := s.colorLo, s.colorHi
	if !s.colorSet {
		lo, hi = s.valueRange()
	}
	if !(hi > lo) {
		hi = lo + 1
	}
	cm.SetMin(lo)
	cm.SetMax(hi)
	return cm
}

func (s *Surface) valueRange() (lo, hi float64) {
	first := true
	for _, d := range s.ops {
		if d.kind != opMarkers {
			continue
		}
		for _, v := range d.values {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if first {
		return 0, 1
	}
	return lo, hi
}

func markerColor(cm palette.ColorMap, v float64) color.Color {
	v = math.Max(cm.Min(), math.Min(cm.Max(), v))
	c, err := cm.At(v)
	if err != nil {
		return color.Gray{Y: 0x80}
	}
	return c
}

// markerRadius converts a marker area to a glyph radius.
func markerRadius(size float64) vg.Length {
	return vg.Length(math.Sqrt(size / math.Pi))
}

func lineStyle(st graph.Style) draw.LineStyle {
	c := st.Color
	if c == nil {
		c = color.Black
	}
	ls := draw.LineStyle{Color: c, Width: vg.Points(st.Width)}
	switch st.Line {
	case graph.LineDashed:
		ls.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	case graph.LineDotted:
		ls.Dashes = []vg.Length{vg.Points(1), vg.Points(3)}
	}
	return ls
}

// pxLen converts pixels to vg lengths at the render DPI.
func pxLen(px float64) vg.Length {
	return vg.Inch * vg.Length(px) / renderDPI
}
