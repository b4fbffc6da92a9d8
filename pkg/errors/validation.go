package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateVertexCount validates a vertex count for graph construction.
// The upper bound is intentionally generous; it exists to catch corrupt
// input (negative or absurd counts) rather than to limit real graphs.
func ValidateVertexCount(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "vertex count must be at least 1, got %d", n)
	}
	const maxVertices = 10_000_000
	if n > maxVertices {
		return New(ErrCodeInvalidInput, "vertex count %d exceeds maximum %d", n, maxVertices)
	}
	return nil
}

// ValidateColorLimits validates a color-scale interval.
func ValidateColorLimits(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return New(ErrCodeInvalidInput, "color limits must be finite, got [%g, %g]", lo, hi)
	}
	if lo >= hi {
		return New(ErrCodeInvalidInput, "color limits must satisfy lo < hi, got [%g, %g]", lo, hi)
	}
	return nil
}

// ValidatePositive validates that a sizing parameter (vertex size, bar
// width, edge width) is a finite positive number.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %g", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateOutputPath validates a file path used for writing artifacts.
// It rejects paths that are empty, excessively long, or contain control
// characters. Relative and absolute paths are both accepted.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "output path cannot be a directory: %q", path)
	}

	return nil
}
