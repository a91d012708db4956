package dither

import (
	"fmt"
	"math"
)

const (
	defaultBitDepth = 16
	minBitDepth     = 2
	maxBitDepth     = 32
)

type config struct {
	bitDepth  int
	typ       DitherType
	amplitude float64
	shaping   bool
	seed      uint64
	seeded    bool
}

func defaultConfig() config {
	return config{
		bitDepth:  defaultBitDepth,
		typ:       DitherTriangular,
		amplitude: 1,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target bit depth (2-32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}

		cfg.bitDepth = bits

		return nil
	}
}

// WithDitherType sets the noise distribution (default [DitherTriangular]).
func WithDitherType(dt DitherType) Option {
	return func(cfg *config) error {
		if !dt.Valid() {
			return fmt.Errorf("dither: invalid dither type: %d", dt)
		}

		cfg.typ = dt

		return nil
	}
}

// WithDitherAmplitude sets the noise peak in LSB (default 1).
func WithDitherAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %g", amp)
		}

		cfg.amplitude = amp

		return nil
	}
}

// WithNoiseShaping feeds each quantization error back into the next
// sample, moving the error spectrum towards high frequencies.
func WithNoiseShaping(enabled bool) Option {
	return func(cfg *config) error {
		cfg.shaping = enabled
		return nil
	}
}

// WithSeed makes the dither noise reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed, cfg.seeded = seed, true
		return nil
	}
}
