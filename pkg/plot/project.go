package plot

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/gsplot/pkg/graph"
)

// Perspective constants. Geometry is normalized into [-1,1]^3 before
// projection, so the viewing distance is in box units.
const (
	projectionDistance = 3.0
	minViewDepth       = 0.2
	viewportFill       = 0.45
)

// Projector flattens 3D data coordinates onto a 2D viewport. The data
// bounding box is normalized to [-1,1]^3 and viewed from the camera
// direction at a fixed distance, with world +Z kept upright on screen.
// Returned depths grow away from the camera, for back-to-front
// ordering.
type Projector struct {
	center   r3.Vec
	halfSpan r3.Vec

	// Orthonormal view basis in normalized box coordinates: right,
	// up, and the axis pointing from the box center toward the
	// camera.
	right  r3.Vec
	up     r3.Vec
	toward r3.Vec

	width  float64
	height float64
}

// NewProjector builds a projector for geometry inside bounds, viewed
// from the camera position toward the bounds center, rendered onto a
// width by height viewport.
func NewProjector(cam graph.Camera, bounds graph.Limits, width, height float64) *Projector {
	p := &Projector{
		center: r3.Vec{
			X: (bounds.XMin + bounds.XMax) / 2,
			Y: (bounds.YMin + bounds.YMax) / 2,
			Z: (bounds.ZMin + bounds.ZMax) / 2,
		},
		halfSpan: r3.Vec{
			X: span((bounds.XMax - bounds.XMin) / 2),
			Y: span((bounds.YMax - bounds.YMin) / 2),
			Z: span((bounds.ZMax - bounds.ZMin) / 2),
		},
		width:  width,
		height: height,
	}

	// Normalize the camera position with the same box transform. The
	// camera sets the view direction only; the viewing distance is
	// fixed so the box always fills the viewport.
	toward := r3.Vec{
		X: (cam.X - p.center.X) / p.halfSpan.X,
		Y: (cam.Y - p.center.Y) / p.halfSpan.Y,
		Z: (cam.Z - p.center.Z) / p.halfSpan.Z,
	}
	if norm := r3.Norm(toward); norm > 0 {
		toward = r3.Scale(1/norm, toward)
	} else {
		toward = r3.Vec{Z: 1}
	}

	// Screen-up follows world +Z; for (near-)top-down views it falls
	// back to +Y so 2D layouts keep their natural orientation.
	upRef := r3.Vec{Z: 1}
	right := r3.Cross(upRef, toward)
	if r3.Norm(right) < 1e-6 {
		upRef = r3.Vec{Y: 1}
		right = r3.Cross(upRef, toward)
	}
	right = r3.Scale(1/r3.Norm(right), right)

	p.right = right
	p.up = r3.Cross(toward, right)
	p.toward = toward
	return p
}

func span(half float64) float64 {
	if half <= 0 || math.IsNaN(half) || math.IsInf(half, 0) {
		return 1
	}
	return half
}

// Project maps a data point to viewport pixels. ok is false when the
// point falls behind the viewing plane.
func (p *Projector) Project(v r3.Vec) (px, py, depth float64, ok bool) {
	vn := r3.Vec{
		X: (v.X - p.center.X) / p.halfSpan.X,
		Y: (v.Y - p.center.Y) / p.halfSpan.Y,
		Z: (v.Z - p.center.Z) / p.halfSpan.Z,
	}

	x := r3.Dot(vn, p.right)
	y := r3.Dot(vn, p.up)
	z := r3.Dot(vn, p.toward)

	denom := projectionDistance - z
	if denom <= minViewDepth {
		return 0, 0, 0, false
	}

	persp := 1 / denom
	size := viewportFill * math.Min(p.width-1, p.height-1)

	px = (p.width-1)/2 + x*persp*size
	py = (p.height-1)/2 - y*persp*size
	return px, py, denom, true
}
