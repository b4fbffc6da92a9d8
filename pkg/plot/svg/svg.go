// Package svg renders plots to standalone SVG documents.
//
// The surface buffers drawing calls and serializes them on Flush, so
// view configuration arriving after the geometry still applies. Flat 2D
// plots map data coordinates straight onto the canvas; plots with a
// camera run through the perspective projector and draw back-to-front.
package svg

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sort"

	svgo "github.com/ajstarks/svgo"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/plot"
)

const (
	// margin keeps geometry clear of the canvas border in flat views.
	margin = 40.0

	// colorbarWidth is the horizontal space reserved for the legend.
	colorbarWidth = 70

	// colorbarStops is the gradient resolution of the legend.
	colorbarStops = 8

	// Arrowhead geometry in pixels, applied at the destination end.
	arrowLen       = 12.0
	arrowHalfWidth = 6.0

	// openMarkerStroke is the ring width of highlight markers.
	openMarkerStroke = 1.5
)

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

// Surface implements [plot.Surface] on an SVG canvas.
type Surface struct {
	width  int
	height int

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

var _ plot.Surface = (*Surface)(nil)

// New returns a surface rendering to a width by height pixel canvas.
// Dimensions below 100 pixels are clamped.
func New(width, height int) *Surface {
	if width < 100 {
		width = 100
	}
	if height < 100 {
		height = 100
	}
	return &Surface{width: width, height: height, decorations: true}
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

// Flush serializes the buffered drawing into an SVG document, available
// from Bytes afterwards.
func (s *Surface) Flush() error {
	s.buf.Reset()
	canvas := svgo.New(&s.buf)
	canvas.Start(s.width, s.height)
	canvas.Rect(0, 0, s.width, s.height, "fill:white")

	plotW := s.width
	if s.showColorbar {
		plotW -= colorbarWidth
	}

	project := s.projection(plotW)
	cm := s.colorMap()

	for _, d := range s.drawOrder(project) {
		s.emit(canvas, d, project, cm)
	}

	if s.decorations {
		m := int(margin) / 2
		canvas.Rect(m, m, plotW-2*m, s.height-2*m, "fill:none;stroke:#888888;stroke-width:1")
	}
	if s.showColorbar {
		s.emitColorbar(canvas, cm)
	}

	canvas.End()
	return nil
}

// Bytes returns the document produced by the last Flush.
func (s *Surface) Bytes() []byte {
	return s.buf.Bytes()
}

// projection picks the data-to-pixel mapping: perspective when a camera
// was set, flat axis mapping otherwise.
func (s *Surface) projection(plotW int) func(r3.Vec) (float64, float64, float64, bool) {
	bounds := s.contentBounds()
	if s.cameraSet {
		proj := plot.NewProjector(s.camera, bounds, float64(plotW), float64(s.height))
		return proj.Project
	}
	pm := newPlaneMapper(bounds, float64(plotW), float64(s.height))
	return pm.project
}

// contentBounds widens the configured axis limits to cover all buffered
// geometry, so bar heights and out-of-limit points stay projectable.
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

// drawOrder returns the buffered ops in painting order: insertion order
// for flat views, back-to-front for perspective views.
func (s *Surface) drawOrder(project func(r3.Vec) (float64, float64, float64, bool)) []op {
	if !s.cameraSet {
		return s.ops
	}

	type depthOp struct {
		op    op
		depth float64
	}
	byDepth := make([]depthOp, 0, len(s.ops))
	for _, d := range s.ops {
		byDepth = append(byDepth, depthOp{op: d, depth: opDepth(d, project)})
	}
	sort.SliceStable(byDepth, func(i, j int) bool {
		return byDepth[i].depth > byDepth[j].depth
	})

	ordered := make([]op, len(byDepth))
	for i, d := range byDepth {
		ordered[i] = d.op
	}
	return ordered
}

// opDepth is the mean depth of an op's projectable points.
func opDepth(d op, project func(r3.Vec) (float64, float64, float64, bool)) float64 {
	var sum float64
	var n int
	add := func(v r3.Vec) {
		if _, _, depth, ok := project(v); ok {
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

func (s *Surface) emit(canvas *svgo.SVG, d op, project func(r3.Vec) (float64, float64, float64, bool), cm palette.ColorMap) {
	switch d.kind {
	case opLine:
		x1, y1, _, ok1 := project(d.from)
		x2, y2, _, ok2 := project(d.to)
		if !ok1 || !ok2 {
			return
		}
		canvas.Path(fmt.Sprintf("M %.1f %.1f L %.1f %.1f", x1, y1, x2, y2), strokeStyle(d.style))

	case opArrow:
		x1, y1, _, ok1 := project(d.from)
		x2, y2, _, ok2 := project(d.to)
		if !ok1 || !ok2 {
			return
		}
		canvas.Path(fmt.Sprintf("M %.1f %.1f L %.1f %.1f", x1, y1, x2, y2), strokeStyle(d.style))
		emitArrowHead(canvas, x1, y1, x2, y2, d.style.Color)

	case opMarkers:
		r := markerRadius(d.size)
		for i, p := range d.points {
			px, py, _, ok := project(p)
			if !ok {
				continue
			}
			var v float64
			if i < len(d.values) {
				v = d.values[i]
			}
			canvas.Circle(int(math.Round(px)), int(math.Round(py)), r,
				fmt.Sprintf("fill:%s;stroke:none", cssColor(markerColor(cm, v))))
		}

	case opOpenMarkers:
		r := markerRadius(d.size)
		for _, p := range d.points {
			px, py, _, ok := project(p)
			if !ok {
				continue
			}
			canvas.Circle(int(math.Round(px)), int(math.Round(py)), r,
				fmt.Sprintf("fill:none;stroke:#000000;stroke-width:%.3g", openMarkerStroke))
		}
	}
}

// emitArrowHead draws a filled triangular head at the destination end,
// oriented along the projected segment.
func emitArrowHead(canvas *svgo.SVG, x1, y1, x2, y2 float64, c color.Color) {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	dx /= dist
	dy /= dist
	px, py := -dy, dx

	p1x := x2 - dx*arrowLen + px*arrowHalfWidth
	p1y := y2 - dy*arrowLen + py*arrowHalfWidth
	p2x := x2 - dx*arrowLen - px*arrowHalfWidth
	p2y := y2 - dy*arrowLen - py*arrowHalfWidth

	canvas.Polygon(
		[]int{int(x2), int(p1x), int(p2x)},
		[]int{int(y2), int(p1y), int(p2y)},
		fmt.Sprintf("fill:%s", cssColor(c)),
	)
}

func (s *Surface) emitColorbar(canvas *svgo.SVG, cm palette.ColorMap) {
	x := s.width - colorbarWidth + 12
	y := int(margin)
	w := 14
	h := s.height - 2*int(margin)

	canvas.Def()
	stops := make([]svgo.Offcolor, colorbarStops)
	for i := range stops {
		t := float64(i) / float64(colorbarStops-1)
		v := cm.Max() - t*(cm.Max()-cm.Min())
		stops[i] = svgo.Offcolor{
			Offset:  uint8(math.Round(t * 100)),
			Color:   cssColor(markerColor(cm, v)),
			Opacity: 1,
		}
	}
	canvas.LinearGradient("colorbar", 0, 0, 0, 100, stops)
	canvas.DefEnd()

	canvas.Rect(x, y, w, h, "fill:url(#colorbar);stroke:#888888;stroke-width:1")

	const tickStyle = "fill:#333333;font-size:10px;font-family:monospace"
	canvas.Text(x+w+4, y+10, fmt.Sprintf("%.3g", cm.Max()), tickStyle)
	canvas.Text(x+w+4, y+h, fmt.Sprintf("%.3g", cm.Min()), tickStyle)
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

// markerColor maps a value through the colormap, clamping to its range.
func markerColor(cm palette.ColorMap, v float64) color.Color {
	v = math.Max(cm.Min(), math.Min(cm.Max(), v))
	c, err := cm.At(v)
	if err != nil {
		return color.Gray{Y: 0x80}
	}
	return c
}

// markerRadius converts a marker area to a pixel radius.
func markerRadius(size float64) int {
	r := int(math.Round(math.Sqrt(size / math.Pi)))
	if r < 1 {
		r = 1
	}
	return r
}

func strokeStyle(st graph.Style) string {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.3g", cssColor(st.Color), st.Width)
	switch st.Line {
	case graph.LineDashed:
		style += ";stroke-dasharray:6,4"
	case graph.LineDotted:
		style += ";stroke-dasharray:2,3"
	}
	return style
}

func cssColor(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// planeMapper maps 2D data coordinates onto the canvas with a uniform
// scale, preserving the data aspect ratio.
type planeMapper struct {
	scale  float64
	midX   float64
	midY   float64
	width  float64
	height float64
}

func newPlaneMapper(lim graph.Limits, width, height float64) *planeMapper {
	spanX := lim.XMax - lim.XMin
	if spanX <= 0 {
		spanX = 2
	}
	spanY := lim.YMax - lim.YMin
	if spanY <= 0 {
		spanY = 2
	}
	return &planeMapper{
		scale: math.Min((width-2*margin)/spanX, (height-2*margin)/spanY),
		midX:  (lim.XMin + lim.XMax) / 2,
		midY:  (lim.YMin + lim.YMax) / 2,
		width: width, height: height,
	}
}

func (m *planeMapper) project(v r3.Vec) (px, py, depth float64, ok bool) {
	px = m.width/2 + m.scale*(v.X-m.midX)
	py = m.height/2 - m.scale*(v.Y-m.midY)
	return px, py, 0, true
}
