package graph

import (
	"fmt"
	"image/color"
)

// LineStyle selects the stroke pattern for edge and bar drawing.
type LineStyle int

const (
	// LineSolid is a continuous stroke.
	LineSolid LineStyle = iota
	// LineDashed is a dashed stroke.
	LineDashed
	// LineDotted is a dotted stroke.
	LineDotted
)

// String returns the scene-file name of the style.
func (s LineStyle) String() string {
	switch s {
	case LineDashed:
		return "dashed"
	case LineDotted:
		return "dotted"
	default:
		return "solid"
	}
}

// ParseLineStyle converts a scene-file name to a LineStyle.
func ParseLineStyle(name string) (LineStyle, error) {
	switch name {
	case "", "solid":
		return LineSolid, nil
	case "dashed":
		return LineDashed, nil
	case "dotted":
		return LineDotted, nil
	}
	return LineSolid, fmt.Errorf("unknown line style %q", name)
}

// Style is a fully resolved stroke style for a single draw call.
type Style struct {
	Width float64
	Color color.Color
	Line  LineStyle
}

// Limits is an axis-aligned bounding box for plot axes. Set distinguishes
// explicit limits from the unset zero value; ZMin/ZMax are ignored for 2D.
type Limits struct {
	Set                    bool
	XMin, XMax, YMin, YMax float64
	ZMin, ZMax             float64
}

// Camera is a camera position in data coordinates, looking toward the
// scene center.
type Camera struct {
	X, Y, Z float64
}

// DefaultCamera is the camera used when neither the graph nor the caller
// supplies one.
var DefaultCamera = Camera{X: -6, Y: -3, Z: 160}

// PlotDefaults holds graph-level display preferences. Zero-valued fields
// mean "unset" and are filled in by the resolution pass at plot time:
// edge width 1, black solid edges, axis limits from CoordBounds.
type PlotDefaults struct {
	EdgeWidth  float64     // 0 = unset
	EdgeColor  color.Color // nil = unset
	EdgeStyle  LineStyle
	Limits     Limits   // Set=false = unset
	VertexSize *float64 // nil = unset; plot scales this ×10
	Camera     *Camera  // nil = unset
}

// Resolved returns a copy of the defaults with every unset field filled in
// for the given graph. The receiver is left untouched; rendering always
// works on the copy.
func (d PlotDefaults) Resolved(g *Graph) PlotDefaults {
	out := d
	if out.EdgeWidth == 0 {
		out.EdgeWidth = 1
	}
	if out.EdgeColor == nil {
		out.EdgeColor = color.Black
	}
	if !out.Limits.Set {
		if lim, ok := g.CoordBounds(); ok {
			out.Limits = lim
		}
	}
	return out
}

// EdgeStyleValue returns the defaults as a single Style for edge drawing.
// Call on a Resolved copy; unresolved defaults yield zero width.
func (d PlotDefaults) EdgeStyleValue() Style {
	return Style{Width: d.EdgeWidth, Color: d.EdgeColor, Line: d.EdgeStyle}
}
