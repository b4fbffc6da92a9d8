package plot

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/gsplot/pkg/graph"
)

// Surface is the drawing target for [Draw]. Implementations buffer the
// calls they receive and materialize output in Flush: configuration such
// as the color range legitimately arrives after the markers it applies
// to, so nothing may be committed eagerly.
//
// Coordinates are graph data coordinates. 2D graphs use X and Y with a
// zero Z; bar plots reuse Z for the signal height. Perspective
// projection, if any, is a backend concern.
type Surface interface {
	// Clear resets the surface to an empty state, discarding any
	// buffered content from a previous drawing.
	Clear()

	// Line draws a straight segment between two points.
	Line(from, to r3.Vec, style graph.Style)

	// Arrow draws a directed segment from one point to another, with
	// the head at the destination.
	Arrow(from, to r3.Vec, style graph.Style)

	// Markers draws one filled marker per point, colored by mapping
	// values through the surface's color range. Size is the marker
	// area; points and values align by index.
	Markers(points []r3.Vec, size float64, values []float64)

	// OpenMarkers draws unfilled ring markers, used for highlighting.
	OpenMarkers(points []r3.Vec, size float64)

	// SetAxisLimits fixes the visible data region.
	SetAxisLimits(lim graph.Limits)

	// SetCamera positions the viewpoint for perspective rendering.
	SetCamera(cam graph.Camera)

	// SetColorRange sets [lo, hi] as the value range for marker
	// coloring. Applies to markers already buffered.
	SetColorRange(lo, hi float64)

	// Colorbar toggles the color legend.
	Colorbar(show bool)

	// HideDecorations removes axes, ticks, and frame from the output.
	HideDecorations()

	// Flush materializes the buffered drawing. No further calls may
	// follow until the next Clear.
	Flush() error
}
