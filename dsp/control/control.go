// Package control turns raw control readings in [0, 1] into granular
// engine parameters and schedules how often they are read.
package control

import (
	"math"

	"github.com/cwbudde/algo-grainverb/dsp/core"
	"github.com/cwbudde/algo-grainverb/dsp/granular"
)

// Readings holds the six raw controls in [0, 1].
type Readings struct {
	Volume    float64
	GrainSize float64
	Feedback  float64
	GainReps  float64
	Freeze    float64
	Pitch     float64
}

// Map linearly maps x from [inMin, inMax] to [outMin, outMax]. The result
// is clamped to the output range, so out-of-range readings cannot produce
// out-of-range parameters. An input range that collapses to a point, within
// rounding, yields outMin.
func Map(x, inMin, inMax, outMin, outMax float64) float64 {
	if core.NearlyEqual(inMin, inMax, 0) || math.IsNaN(x) {
		return outMin
	}

	y := outMin + (x-inMin)*(outMax-outMin)/(inMax-inMin)

	return core.Clamp(y, outMin, outMax)
}

// Mapper converts Readings into engine parameters.
type Mapper struct {
	MinGrainSize int
	MaxGrainSize int
	MinFeedback  float64
	MaxFeedback  float64
	MinGainReps  int
	MaxGainReps  int
	MaxFreeze    float64
	MinPitch     float64
	MaxPitch     float64
}

// DefaultMapper returns the standard engineering ranges.
func DefaultMapper() Mapper {
	return Mapper{
		MinGrainSize: 500,
		MaxGrainSize: granular.DefaultMaxGrainSize,
		MinFeedback:  0.5,
		MaxFeedback:  1.5,
		MinGainReps:  2,
		MaxGainReps:  granular.DefaultMaxReps,
		MaxFreeze:    100,
		MinPitch:     -4,
		MaxPitch:     4,
	}
}

// Params maps r to a parameter snapshot. Integer parameters are truncated.
func (m Mapper) Params(r Readings) granular.Params {
	return granular.Params{
		Amplitude:  Map(r.Volume, 0, 1, 0, 1),
		GrainSize:  int(Map(r.GrainSize, 0, 1, float64(m.MinGrainSize), float64(m.MaxGrainSize))),
		Feedback:   Map(r.Feedback, 0, 1, m.MinFeedback, m.MaxFeedback),
		GainReps:   int(Map(r.GainReps, 0, 1, float64(m.MinGainReps), float64(m.MaxGainReps))),
		FreezeDial: Map(r.Freeze, 0, 1, 0, m.MaxFreeze),
		Pitch:      Map(r.Pitch, 0, 1, m.MinPitch, m.MaxPitch),
	}
}

// Scheduler decides on which frames a new control snapshot is read.
type Scheduler struct {
	// Stride is the number of audio frames per control frame. Values
	// below 1 disable control updates.
	Stride int
}

// NewScheduler derives the stride from audio and control frame counts per
// block, as audioFrames / controlFrames. A zero controlFrames disables
// updates.
func NewScheduler(audioFrames, controlFrames int) Scheduler {
	if controlFrames <= 0 {
		return Scheduler{}
	}

	return Scheduler{Stride: audioFrames / controlFrames}
}

// Due reports whether frame starts a new control period.
func (s Scheduler) Due(frame int) bool {
	return s.Stride > 0 && frame%s.Stride == 0
}
