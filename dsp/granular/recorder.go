package granular

import "github.com/cwbudde/algo-grainverb/dsp/window"

// recorder tracks the grain slot being captured or replayed.
type recorder struct {
	slot   int
	offset int
	length int
	live   bool
}

// begin starts a pass over slot. A live pass latches grainSize as the new
// playable length. A frozen pass replays whatever the slot holds.
func (r *recorder) begin(p *grainPool, slot, grainSize int, live bool) {
	r.slot = slot
	r.offset = 0
	r.live = live

	if live {
		r.length = grainSize
		p.lengths[slot] = grainSize

		return
	}

	r.length = p.lengths[slot]
	if r.length == 0 {
		r.length = grainSize
	}
}

// tick captures one windowed input sample when live and returns the grain
// sample to scatter at the current offset.
func (r *recorder) tick(p *grainPool, in float64) float64 {
	buf := p.slot(r.slot)

	if r.live {
		buf[r.offset] = window.HannAt(r.offset, r.length) * in
	}

	if r.offset >= p.lengths[r.slot] {
		return 0
	}

	return buf[r.offset]
}

// advance steps the offset and reports whether the grain is complete.
func (r *recorder) advance() bool {
	r.offset++
	if r.offset < r.length {
		return false
	}

	r.offset = 0

	return true
}
