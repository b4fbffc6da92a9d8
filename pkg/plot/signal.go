package plot

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// ImagTolerance is the maximum summed imaginary magnitude a signal may
// carry and still count as real. Signals exceeding it are rejected rather
// than silently truncated.
const ImagTolerance = 1e-10

// Signal is a scalar value per vertex, aligned by index to the graph's
// coordinate rows. Signals may be constructed from complex data; rendering
// uses the real part once the imaginary part is verified negligible.
type Signal struct {
	values []complex128
}

// FromFloats builds a signal from real values. The slice is copied.
func FromFloats(values []float64) Signal {
	out := make([]complex128, len(values))
	for i, v := range values {
		out[i] = complex(v, 0)
	}
	return Signal{values: out}
}

// FromComplex builds a signal from complex values. The slice is copied.
func FromComplex(values []complex128) Signal {
	out := make([]complex128, len(values))
	copy(out, values)
	return Signal{values: out}
}

// Len returns the number of values.
func (s Signal) Len() int { return len(s.values) }

// Real returns the real parts as a fresh slice.
func (s Signal) Real() []float64 {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = real(v)
	}
	return out
}

// Imag returns the imaginary parts as a fresh slice.
func (s Signal) Imag() []float64 {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = imag(v)
	}
	return out
}

// ImagNorm returns the summed magnitude of the imaginary parts. A signal
// is renderable when this does not exceed ImagTolerance.
func (s Signal) ImagNorm() float64 {
	var sum float64
	for _, v := range s.values {
		sum += math.Abs(imag(v))
	}
	return sum
}

// IsFinite reports whether every value is finite (no NaN or Inf in either
// component).
func (s Signal) IsFinite() bool {
	for _, v := range s.values {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// Range returns the minimum and maximum of the real parts. The signal
// must be non-empty.
func (s Signal) Range() (min, max float64) {
	re := s.Real()
	return floats.Min(re), floats.Max(re)
}

// SinSignal returns a signal of n samples of sin(2π·cycles·i/n), the
// standard smooth test signal for ring graphs.
func SinSignal(n int, cycles float64) Signal {
	values := make([]complex128, n)
	for i := 0; i < n; i++ {
		values[i] = complex(math.Sin(2*math.Pi*cycles*float64(i)/float64(n)), 0)
	}
	return Signal{values: values}
}

// LinearSignal returns a signal ramping uniformly from 0 to 1 over n
// samples.
func LinearSignal(n int) Signal {
	values := make([]complex128, n)
	if n == 1 {
		return Signal{values: values}
	}
	for i := 0; i < n; i++ {
		values[i] = complex(float64(i)/float64(n-1), 0)
	}
	return Signal{values: values}
}
