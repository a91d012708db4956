package biquad

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidOrder is returned for non-positive filter orders.
	ErrInvalidOrder = errors.New("biquad: order must be positive")
	// ErrInvalidCutoff is returned when the cutoff is not inside (0, Nyquist).
	ErrInvalidCutoff = errors.New("biquad: cutoff must be in (0, sampleRate/2)")
)

// LowpassRBJ returns the RBJ cookbook low-pass section for the given
// cutoff, quality factor and sample rate.
func LowpassRBJ(freq, q, sampleRate float64) Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	b1 := (1 - cw) / a0

	return Coefficients{
		B0: b1 / 2,
		B1: b1,
		B2: b1 / 2,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

// ButterworthLP designs a Butterworth low-pass of the given order as a
// cascade of second-order sections plus one first-order section for odd
// orders.
func ButterworthLP(freq float64, order int, sampleRate float64) ([]Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return nil, fmt.Errorf("%w: %g Hz at %g Hz", ErrInvalidCutoff, freq, sampleRate)
	}

	pairs := order / 2
	sections := make([]Coefficients, 0, pairs+order%2)

	for i := range pairs {
		sections = append(sections, LowpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 == 1 {
		sections = append(sections, firstOrderLP(freq, sampleRate))
	}

	return sections, nil
}

// butterworthQ returns the Q of the index-th conjugate pole pair.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / float64(2*order)
	return 1 / (2 * math.Sin(theta))
}

func firstOrderLP(freq, sampleRate float64) Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}
