package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-grainverb/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidSize is returned for analyzer sizes that are not a power of two >= 2.
	ErrInvalidSize = errors.New("spectrum: size must be a power of two >= 2")
	// ErrFrameLength is returned when a frame or destination has the wrong length.
	ErrFrameLength = errors.New("spectrum: frame length mismatch")
)

// Analyzer computes Hann-windowed magnitude spectra of fixed-size frames.
// It reuses its buffers and is not safe for concurrent use.
type Analyzer struct {
	size int
	plan *algofft.Plan[complex128]

	win      []float64
	windowed []float64
	in, out  []complex128
	re, im   []float64
	mag      []float64
}

// NewAnalyzer creates an analyzer for frames of the given size.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	win, err := window.Hann(size)
	if err != nil {
		return nil, err
	}

	bins := size/2 + 1

	return &Analyzer{
		size:     size,
		plan:     plan,
		win:      win,
		windowed: make([]float64, size),
		in:       make([]complex128, size),
		out:      make([]complex128, size),
		re:       make([]float64, bins),
		im:       make([]float64, bins),
		mag:      make([]float64, bins),
	}, nil
}

// Size returns the frame size.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of non-negative frequency bins, size/2 + 1.
func (a *Analyzer) Bins() int { return a.size/2 + 1 }

// BinFrequency returns the center frequency of bin k.
func (a *Analyzer) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(a.size)
}

// Magnitude writes |X[k]| for bins 0..size/2 of the windowed frame into dst.
// len(frame) must equal Size and len(dst) must equal Bins.
func (a *Analyzer) Magnitude(dst, frame []float64) error {
	if len(frame) != a.size || len(dst) != a.Bins() {
		return fmt.Errorf("%w: frame=%d dst=%d, want %d and %d",
			ErrFrameLength, len(frame), len(dst), a.size, a.Bins())
	}

	if err := window.ApplyCoefficients(a.windowed, frame, a.win); err != nil {
		return err
	}

	for i, x := range a.windowed {
		a.in[i] = complex(x, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("spectrum: fft: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	vecmath.Magnitude(dst, a.re, a.im)

	return nil
}

// PeakFrequency returns the frequency of the strongest non-DC bin, refined
// by parabolic interpolation over its neighbours.
func (a *Analyzer) PeakFrequency(frame []float64, sampleRate float64) (float64, error) {
	if err := a.Magnitude(a.mag, frame); err != nil {
		return 0, err
	}

	peak := 1
	for k := 2; k < len(a.mag); k++ {
		if a.mag[k] > a.mag[peak] {
			peak = k
		}
	}

	delta := 0.0
	if peak+1 < len(a.mag) {
		l, c, r := a.mag[peak-1], a.mag[peak], a.mag[peak+1]
		if den := l - 2*c + r; den != 0 {
			delta = 0.5 * (l - r) / den
		}
	}

	if math.IsNaN(delta) {
		delta = 0
	}

	return (float64(peak) + delta) * sampleRate / float64(a.size), nil
}
