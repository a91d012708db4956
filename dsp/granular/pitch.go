package granular

import (
	"math"

	"github.com/cwbudde/algo-grainverb/dsp/core"
	"github.com/cwbudde/algo-grainverb/dsp/resample"
)

// PitchedLength returns the resampled length of a grain of length n for
// the given pitch: floor(n * 2^(-pitch/2)) clamped to [1, maxLen].
// Positive pitch shortens the grain, negative pitch lengthens it.
func PitchedLength(n int, pitch float64, maxLen int) int {
	target := math.Floor(float64(n) * math.Exp2(-pitch/2))
	if math.IsNaN(target) {
		return core.ClampInt(n, 1, maxLen)
	}

	return int(core.Clamp(target, 1, float64(maxLen)))
}

// pitchShifter resamples completed grains through a scratch buffer sized
// for the largest grain.
type pitchShifter struct {
	lanczos *resample.Lanczos
	scratch []float64
}

func newPitchShifter(maxGrainSize int) (*pitchShifter, error) {
	l, err := resample.NewLanczos()
	if err != nil {
		return nil, err
	}

	return &pitchShifter{lanczos: l, scratch: make([]float64, maxGrainSize)}, nil
}

// shift resamples the first length samples of the slot to the pitched
// length and writes the result back, updating the playable length.
func (s *pitchShifter) shift(p *grainPool, slot, length int, pitch float64) error {
	n := PitchedLength(length, pitch, p.capacity)
	if n == length {
		return nil
	}

	buf := p.slot(slot)
	dst := s.scratch[:n]

	if err := s.lanczos.Process(dst, buf[:length]); err != nil {
		return err
	}

	core.CopyInto(buf, dst)
	p.lengths[slot] = n

	return nil
}
