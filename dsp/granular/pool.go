package granular

import "github.com/cwbudde/algo-grainverb/dsp/core"

// grainPool is a ring of fixed-capacity grain slots backed by one
// allocation. lengths holds each slot's playable length.
type grainPool struct {
	data     []float64
	lengths  []int
	capacity int
}

func newGrainPool(numGrains, capacity int) *grainPool {
	return &grainPool{
		data:     make([]float64, numGrains*capacity),
		lengths:  make([]int, numGrains),
		capacity: capacity,
	}
}

func (p *grainPool) size() int { return len(p.lengths) }

// slot returns the full-capacity buffer of slot i.
func (p *grainPool) slot(i int) []float64 {
	lo := i * p.capacity
	return p.data[lo : lo+p.capacity : lo+p.capacity]
}

// next returns the slot after i.
func (p *grainPool) next(i int) int {
	return core.Wrap(i+1, len(p.lengths))
}

func (p *grainPool) reset() {
	core.Zero(p.data)

	for i := range p.lengths {
		p.lengths[i] = 0
	}
}
