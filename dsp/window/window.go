// Package window provides the grain envelope and analysis windows.
//
// All windows here are periodic: a window of length L is one period of the
// underlying cosine sum, so HannAt(0, L) is 0 and HannAt(L/2, L) is 1.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// HannAt returns the periodic Hann window value at position n of a window
// of the given length: (cos(2*pi*n/length - pi) + 1) / 2.
//
// It is zero at n = 0, unity at n = length/2 and symmetric about length/2.
// length must be > 0.
func HannAt(n, length int) float64 {
	return (math.Cos(2*math.Pi*float64(n)/float64(length)-math.Pi) + 1) / 2
}

// Hann returns periodic Hann window coefficients.
func Hann(size int) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	FillHann(out)

	return out, nil
}

// FillHann writes periodic Hann coefficients of length len(dst) into dst.
func FillHann(dst []float64) {
	for i := range dst {
		dst[i] = HannAt(i, len(dst))
	}
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// ApplyCoefficients multiplies samples with coefficients into dst.
func ApplyCoefficients(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(samples) {
		return errMismatchedLength
	}

	vecmath.MulBlock(dst, samples, coeffs)

	return nil
}
