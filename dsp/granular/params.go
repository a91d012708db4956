package granular

import (
	"math"

	"github.com/cwbudde/algo-grainverb/dsp/core"
)

// Params is a control-rate parameter snapshot. It is held constant between
// SetParams calls.
type Params struct {
	// GrainSize is the capture length in samples, latched at each grain start.
	GrainSize int
	// Feedback scales existing canvas content before each scatter add.
	Feedback float64
	// GainReps is the number of scattered copies per grain sample.
	GainReps int
	// Pitch shifts completed grains by 2^(Pitch/2).
	Pitch float64
	// Amplitude is the output gain applied to wet plus dry.
	Amplitude float64
	// FreezeDial requests freeze above FreezeThreshold on a 0..100 scale.
	FreezeDial float64
}

// DefaultParams returns the power-on parameters.
func DefaultParams() Params {
	return Params{
		GrainSize: DefaultGrainSize,
		GainReps:  DefaultGainReps,
	}
}

// sanitize clamps p to the engine capacities and zeroes non-finite values.
func (p Params) sanitize(maxGrainSize, maxReps int) Params {
	p.GrainSize = core.ClampInt(p.GrainSize, 1, maxGrainSize)
	p.GainReps = core.ClampInt(p.GainReps, 0, maxReps)
	p.Feedback = finite(p.Feedback)
	p.Pitch = finite(p.Pitch)
	p.Amplitude = finite(p.Amplitude)
	p.FreezeDial = finite(p.FreezeDial)

	return p
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
