// Package record implements an in-memory drawing surface that captures
// every call it receives. It backs tests that assert on draw order and
// content, and the inspect tooling that reports what a plot contains
// without rendering pixels.
package record

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/gsplot/pkg/graph"
)

// Kind identifies one recorded surface call.
type Kind int

const (
	KindClear Kind = iota
	KindLine
	KindArrow
	KindMarkers
	KindOpenMarkers
	KindAxisLimits
	KindCamera
	KindColorRange
	KindColorbar
	KindHideDecorations
	KindFlush
)

// String returns the kind name as it appears in dumps.
func (k Kind) String() string {
	switch k {
	case KindClear:
		return "clear"
	case KindLine:
		return "line"
	case KindArrow:
		return "arrow"
	case KindMarkers:
		return "markers"
	case KindOpenMarkers:
		return "open-markers"
	case KindAxisLimits:
		return "axis-limits"
	case KindCamera:
		return "camera"
	case KindColorRange:
		return "color-range"
	case KindColorbar:
		return "colorbar"
	case KindHideDecorations:
		return "hide-decorations"
	case KindFlush:
		return "flush"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Op is one captured surface call. Only the fields relevant to its kind
// are populated.
type Op struct {
	Kind   Kind
	From   r3.Vec
	To     r3.Vec
	Points []r3.Vec
	Values []float64
	Size   float64
	Style  graph.Style
	Limits graph.Limits
	Camera graph.Camera
	Lo, Hi float64
	Show   bool
}

// Surface records surface calls in order. Unlike a real backend it does
// not discard history on Clear; the clear itself becomes an op, so
// callers can assert on its position in the stream. Use Reset to reuse
// a recorder across drawings.
type Surface struct {
	ops []Op

	// FlushErr, when set, is returned by Flush. Tests use it to
	// exercise render failure paths.
	FlushErr error
}

// New returns an empty recording surface.
func New() *Surface {
	return &Surface{}
}

func (s *Surface) Clear() {
	s.ops = append(s.ops, Op{Kind: KindClear})
}

func (s *Surface) Line(from, to r3.Vec, style graph.Style) {
	s.ops = append(s.ops, Op{Kind: KindLine, From: from, To: to, Style: style})
}

func (s *Surface) Arrow(from, to r3.Vec, style graph.Style) {
	s.ops = append(s.ops, Op{Kind: KindArrow, From: from, To: to, Style: style})
}

func (s *Surface) Markers(points []r3.Vec, size float64, values []float64) {
	pts := make([]r3.Vec, len(points))
	copy(pts, points)
	vals := make([]float64, len(values))
	copy(vals, values)
	s.ops = append(s.ops, Op{Kind: KindMarkers, Points: pts, Size: size, Values: vals})
}

func (s *Surface) OpenMarkers(points []r3.Vec, size float64) {
	pts := make([]r3.Vec, len(points))
	copy(pts, points)
	s.ops = append(s.ops, Op{Kind: KindOpenMarkers, Points: pts, Size: size})
}

func (s *Surface) SetAxisLimits(lim graph.Limits) {
	s.ops = append(s.ops, Op{Kind: KindAxisLimits, Limits: lim})
}

func (s *Surface) SetCamera(cam graph.Camera) {
	s.ops = append(s.ops, Op{Kind: KindCamera, Camera: cam})
}

func (s *Surface) SetColorRange(lo, hi float64) {
	s.ops = append(s.ops, Op{Kind: KindColorRange, Lo: lo, Hi: hi})
}

func (s *Surface) Colorbar(show bool) {
	s.ops = append(s.ops, Op{Kind: KindColorbar, Show: show})
}

func (s *Surface) HideDecorations() {
	s.ops = append(s.ops, Op{Kind: KindHideDecorations})
}

func (s *Surface) Flush() error {
	s.ops = append(s.ops, Op{Kind: KindFlush})
	return s.FlushErr
}

// Reset discards all recorded ops.
func (s *Surface) Reset() {
	s.ops = s.ops[:0]
}

// Ops returns the recorded calls in order.
func (s *Surface) Ops() []Op {
	return s.ops
}

// Count returns how many ops of the given kind were recorded.
func (s *Surface) Count(kind Kind) int {
	n := 0
	for _, op := range s.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// First returns the first op of the given kind.
func (s *Surface) First(kind Kind) (Op, bool) {
	for _, op := range s.ops {
		if op.Kind == kind {
			return op, true
		}
	}
	return Op{}, false
}

// Index returns the position of the first op of the given kind, or -1.
func (s *Surface) Index(kind Kind) int {
	for i, op := range s.ops {
		if op.Kind == kind {
			return i
		}
	}
	return -1
}

// Summary returns one line per op, for debugging and inspection output.
func (s *Surface) Summary() string {
	var b strings.Builder
	for _, op := range s.ops {
		switch op.Kind {
		case KindLine, KindArrow:
			fmt.Fprintf(&b, "%s (%.3g,%.3g,%.3g)->(%.3g,%.3g,%.3g) width=%g\n",
				op.Kind, op.From.X, op.From.Y, op.From.Z, op.To.X, op.To.Y, op.To.Z, op.Style.Width)
		case KindMarkers:
			fmt.Fprintf(&b, "%s n=%d size=%g\n", op.Kind, len(op.Points), op.Size)
		case KindOpenMarkers:
			fmt.Fprintf(&b, "%s n=%d size=%g\n", op.Kind, len(op.Points), op.Size)
		case KindColorRange:
			fmt.Fprintf(&b, "%s [%g, %g]\n", op.Kind, op.Lo, op.Hi)
		case KindCamera:
			fmt.Fprintf(&b, "%s (%g, %g, %g)\n", op.Kind, op.Camera.X, op.Camera.Y, op.Camera.Z)
		case KindColorbar:
			fmt.Fprintf(&b, "%s show=%t\n", op.Kind, op.Show)
		default:
			fmt.Fprintf(&b, "%s\n", op.Kind)
		}
	}
	return b.String()
}
