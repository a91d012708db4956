package biquad

// Chain is a cascade of biquad sections followed by an output gain.
type Chain struct {
	sections []Section
	gain     float64
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithGain sets the overall output gain of the chain.
func WithGain(g float64) ChainOption {
	return func(c *Chain) {
		c.gain = g
	}
}

// NewChain builds a cascade from the given coefficients. The chain owns
// copies of the coefficients.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	c := &Chain{
		sections: make([]Section, len(coeffs)),
		gain:     1,
	}
	for i, co := range coeffs {
		c.sections[i].Coefficients = co
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ProcessSample runs one sample through every section in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x * c.gain
}

// ProcessBlock filters buf in-place.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}

	if c.gain == 1 {
		return
	}

	for i := range buf {
		buf[i] *= c.gain
	}
}

// Reset clears the state of every section.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// NumSections returns the number of cascaded sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Section returns a pointer to the i-th section.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// Order returns the filter order. First-order sections (B2 == A2 == 0)
// count as one.
func (c *Chain) Order() int {
	order := 0
	for i := range c.sections {
		if c.sections[i].B2 == 0 && c.sections[i].A2 == 0 {
			order++
		} else {
			order += 2
		}
	}

	return order
}
