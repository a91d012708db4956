package loudness

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-grainverb/dsp/filter/biquad"
)

// ErrChannelCount is returned when a frame or block set does not match the
// configured channel count.
var ErrChannelCount = errors.New("loudness: channel count mismatch")

const (
	shelfFreq   = 1500.0
	shelfGainDB = 4.0
	hpfFreq     = 38.0

	momentarySeconds = 0.4
	shortTermSeconds = 3.0
	// Gating blocks overlap by 75%.
	blockStepSeconds = momentarySeconds / 4

	absoluteGate = -70.0
	relativeGate = -10.0

	floorLUFS = -120.0
)

// window is a running mean of squares over a fixed number of frames.
type window struct {
	buf []float64
	pos int
	sum float64
}

func newWindow(n int) window {
	return window{buf: make([]float64, max(n, 1))}
}

func (w *window) push(sq float64) {
	w.sum += sq - w.buf[w.pos]
	if w.sum < 0 {
		w.sum = 0
	}

	w.buf[w.pos] = sq
	w.pos++

	if w.pos == len(w.buf) {
		w.pos = 0
	}
}

func (w *window) mean() float64 { return w.sum / float64(len(w.buf)) }

func (w *window) reset() {
	clear(w.buf)
	w.pos, w.sum = 0, 0
}

// channel is the K-weighting filter and integration state of one input.
type channel struct {
	shelf  *biquad.Section
	hpf    *biquad.Section
	mom    window
	short  window
	weight float64
}

func (c *channel) push(x float64) {
	y := c.hpf.ProcessSample(c.shelf.ProcessSample(x))
	sq := y * y

	c.mom.push(sq)
	c.short.push(sq)
}

// Meter is an EBU R128 loudness meter.
type Meter struct {
	chans []channel

	momFrames   int
	shortFrames int
	step        int
	sinceStep   int
	frames      int

	// Gating blocks as weighted mean squares.
	blocks []float64

	maxMomentary float64
	maxShortTerm float64
}

// NewMeter returns a meter configured by opts.
func NewMeter(opts ...MeterOption) *Meter {
	cfg := ApplyMeterOptions(opts...)
	sr := cfg.SampleRate
	q := 1 / math.Sqrt2

	shelf := biquad.HighShelfRBJ(shelfFreq, shelfGainDB, q, sr)
	hpf := biquad.HighpassRBJ(hpfFreq, q, sr)

	m := &Meter{
		chans:       make([]channel, cfg.Channels),
		momFrames:   int(math.Round(momentarySeconds * sr)),
		shortFrames: int(math.Round(shortTermSeconds * sr)),
		step:        max(int(math.Round(blockStepSeconds*sr)), 1),
	}

	for i := range m.chans {
		m.chans[i] = channel{
			shelf:  biquad.NewSection(shelf),
			hpf:    biquad.NewSection(hpf),
			mom:    newWindow(m.momFrames),
			short:  newWindow(m.shortFrames),
			weight: cfg.weight(i),
		}
	}

	m.Reset()

	return m
}

// Channels returns the configured channel count.
func (m *Meter) Channels() int { return len(m.chans) }

// Reset clears filter state, windows, gating blocks and maxima.
func (m *Meter) Reset() {
	for i := range m.chans {
		c := &m.chans[i]
		c.shelf.Reset()
		c.hpf.Reset()
		c.mom.reset()
		c.short.reset()
	}

	m.sinceStep = 0
	m.frames = 0
	m.blocks = m.blocks[:0]
	m.maxMomentary = math.Inf(-1)
	m.maxShortTerm = math.Inf(-1)
}

// ProcessFrame adds one frame holding a sample per channel.
func (m *Meter) ProcessFrame(frame []float64) error {
	if len(frame) != len(m.chans) {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelCount, len(frame), len(m.chans))
	}

	for i, x := range frame {
		m.chans[i].push(x)
	}

	m.frames++
	m.update()

	return nil
}

// ProcessPlanar adds equally long blocks, one per channel.
func (m *Meter) ProcessPlanar(blocks ...[]float64) error {
	if len(blocks) != len(m.chans) {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelCount, len(blocks), len(m.chans))
	}

	n := len(blocks[0])
	for _, b := range blocks[1:] {
		if len(b) != n {
			return fmt.Errorf("%w: block lengths differ", ErrChannelCount)
		}
	}

	for j := range n {
		for i, b := range blocks {
			m.chans[i].push(b[j])
		}

		m.frames++
		m.update()
	}

	return nil
}

func (m *Meter) update() {
	if m.frames >= m.momFrames {
		m.maxMomentary = math.Max(m.maxMomentary, m.Momentary())

		m.sinceStep++
		if m.frames == m.momFrames || m.sinceStep >= m.step {
			m.sinceStep = 0
			m.blocks = append(m.blocks, m.momentaryPower())
		}
	}

	if m.frames >= m.shortFrames {
		m.maxShortTerm = math.Max(m.maxShortTerm, m.ShortTerm())
	}
}

func (m *Meter) momentaryPower() float64 {
	var p float64
	for i := range m.chans {
		p += m.chans[i].weight * m.chans[i].mom.mean()
	}

	return p
}

// Momentary returns the loudness of the last 400 ms.
func (m *Meter) Momentary() float64 {
	return toLUFS(m.momentaryPower())
}

// ShortTerm returns the loudness of the last 3 s.
func (m *Meter) ShortTerm() float64 {
	var p float64
	for i := range m.chans {
		p += m.chans[i].weight * m.chans[i].short.mean()
	}

	return toLUFS(p)
}

// MaxMomentary returns the largest momentary loudness seen since Reset,
// or -Inf before the first full 400 ms window.
func (m *Meter) MaxMomentary() float64 { return m.maxMomentary }

// MaxShortTerm returns the largest short-term loudness seen since Reset,
// or -Inf before the first full 3 s window.
func (m *Meter) MaxShortTerm() float64 { return m.maxShortTerm }

// Integrated returns the gated loudness of everything since Reset, or -Inf
// if no block passes the gates.
func (m *Meter) Integrated() float64 {
	var (
		sum float64
		n   int
	)

	for _, b := range m.blocks {
		if toLUFS(b) > absoluteGate {
			sum += b
			n++
		}
	}

	if n == 0 {
		return math.Inf(-1)
	}

	gate := toLUFS(sum/float64(n)) + relativeGate
	sum, n = 0, 0

	for _, b := range m.blocks {
		if l := toLUFS(b); l > absoluteGate && l > gate {
			sum += b
			n++
		}
	}

	if n == 0 {
		return math.Inf(-1)
	}

	return toLUFS(sum / float64(n))
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return floorLUFS
	}

	return -0.691 + 10*math.Log10(meanSquare)
}
