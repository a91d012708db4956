package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] to integer codes in
// [-(2^(bits-1)-1), 2^(bits-1)-1]. Full scale is 2^(bits-1).
type Quantizer struct {
	bitDepth  int
	typ       DitherType
	amplitude float64
	shaping   bool
	rng       *rand.Rand

	full    float64
	maxCode int
	err     float64
}

// NewQuantizer returns a quantizer configured by opts. The default is
// 16-bit TPDF dither of 1 LSB without noise shaping.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	seed := cfg.seed
	if !cfg.seeded {
		seed = rand.Uint64()
	}

	full := math.Ldexp(1, cfg.bitDepth-1)

	return &Quantizer{
		bitDepth:  cfg.bitDepth,
		typ:       cfg.typ,
		amplitude: cfg.amplitude,
		shaping:   cfg.shaping,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		full:      full,
		maxCode:   int(full) - 1,
	}, nil
}

// ProcessInteger quantizes one sample.
func (q *Quantizer) ProcessInteger(x float64) int {
	shaped := x * q.full
	if q.shaping {
		shaped -= q.err
	}

	v := math.Round(shaped + q.noise())
	if math.IsNaN(v) {
		q.err = 0
		return 0
	}

	if v > float64(q.maxCode) || v < -float64(q.maxCode) {
		q.err = 0

		if v > 0 {
			return q.maxCode
		}

		return -q.maxCode
	}

	q.err = v - shaped

	return int(v)
}

// ProcessSample quantizes one sample and returns it rescaled to [-1, 1].
func (q *Quantizer) ProcessSample(x float64) float64 {
	return float64(q.ProcessInteger(x)) / q.full
}

// ProcessInPlace quantizes buf in place.
func (q *Quantizer) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = q.ProcessSample(x)
	}
}

// Reset clears the error feedback state. The noise sequence continues.
func (q *Quantizer) Reset() {
	q.err = 0
}

func (q *Quantizer) noise() float64 {
	switch q.typ {
	case DitherRectangular:
		return q.amplitude * (2*q.rng.Float64() - 1)
	case DitherTriangular:
		return q.amplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the noise distribution.
func (q *Quantizer) DitherType() DitherType { return q.typ }

// MaxCode returns the largest code magnitude.
func (q *Quantizer) MaxCode() int { return q.maxCode }
