package granular

import "github.com/cwbudde/algo-grainverb/dsp/core"

// scatter adds reps weighted copies of sample to both canvas channels at
// the slot's table delays. Each destination is decayed by feedback before
// the weighted sample is added, so repetitions landing on the same cell
// within one call compound. Decayed values that fall into the denormal
// range are flushed to zero.
func scatter(c *Canvas, t *RandomTables, slot, reps int, feedback, sample float64) {
	delaysL, delaysR := t.Delays(slot)
	ampsL, ampsR := t.Amps(slot)

	for i := range reps {
		dl := c.Index(delaysL[i])
		c.left[dl] = core.FlushDenormals(c.left[dl]*feedback) + ampsL[i]*sample

		dr := c.Index(delaysR[i])
		c.right[dr] = core.FlushDenormals(c.right[dr]*feedback) + ampsR[i]*sample
	}
}
