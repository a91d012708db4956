package granular

import "github.com/cwbudde/algo-grainverb/dsp/core"

// Canvas is the stereo circular accumulation buffer read back as the wet
// signal. Its cursor advances exactly one position per processed sample.
type Canvas struct {
	left, right []float64
	cursor      int
}

func newCanvas(size int) *Canvas {
	return &Canvas{
		left:  make([]float64, size),
		right: make([]float64, size),
	}
}

// Len returns the canvas length in samples.
func (c *Canvas) Len() int { return len(c.left) }

// Cursor returns the current read/write position.
func (c *Canvas) Cursor() int { return c.cursor }

// Index returns the canvas position delay samples ahead of the cursor.
func (c *Canvas) Index(delay int) int {
	return core.Wrap(c.cursor+delay, len(c.left))
}

// Left returns the left channel. The slice aliases the canvas.
func (c *Canvas) Left() []float64 { return c.left }

// Right returns the right channel. The slice aliases the canvas.
func (c *Canvas) Right() []float64 { return c.right }

// read returns both channels at the cursor.
func (c *Canvas) read() (float64, float64) {
	return c.left[c.cursor], c.right[c.cursor]
}

// advance moves the cursor by one and reports whether it wrapped.
func (c *Canvas) advance() bool {
	c.cursor++
	if c.cursor >= len(c.left) {
		c.cursor = 0
		return true
	}

	return false
}

func (c *Canvas) reset() {
	core.Zero(c.left)
	core.Zero(c.right)
	c.cursor = 0
}
