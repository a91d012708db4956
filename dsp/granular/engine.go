package granular

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-grainverb/dsp/filter/biquad"
)

var (
	// ErrClipOverrun is returned when |left output| exceeds ClipCeiling.
	// The engine halts until Reset.
	ErrClipOverrun = errors.New("granular: output exceeded clip ceiling")
	// ErrHalted is returned by every processing call after the engine halts.
	ErrHalted = errors.New("granular: engine halted")
	// ErrBlockLength is returned when ProcessBlock buffers differ in length.
	ErrBlockLength = errors.New("granular: mismatched block lengths")
)

// Stats reports engine counters since construction or the last Reset.
type Stats struct {
	// Frames is the number of samples produced.
	Frames int64
	// Grains is the number of completed grain passes, live or frozen.
	Grains int64
	// CanvasWraps counts full canvas cycles.
	CanvasWraps int64
	// LastCyclePeak is the largest |left output| of the previous canvas cycle.
	LastCyclePeak float64
}

// Engine is a granular reverb and pitch shifter with one input and two
// output channels.
type Engine struct {
	cfg config

	params Params
	freeze FreezeController

	tables *RandomTables
	canvas *Canvas
	pool   *grainPool
	rec    recorder
	pitch  *pitchShifter

	toneL, toneR *biquad.Chain

	stats     Stats
	cyclePeak float64
	err       error
}

// New creates an engine. All buffers are allocated here.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	tables := cfg.tables
	if tables == nil {
		var err error

		tables, err = NewRandomTables(cfg.numGrains, cfg.maxReps, cfg.canvasSize, cfg.seed)
		if err != nil {
			return nil, err
		}
	}

	pitch, err := newPitchShifter(cfg.maxGrainSize)
	if err != nil {
		return nil, fmt.Errorf("granular: pitch shifter: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		tables: tables,
		canvas: newCanvas(cfg.canvasSize),
		pool:   newGrainPool(cfg.numGrains, cfg.maxGrainSize),
		pitch:  pitch,
	}

	if cfg.toneCutoff > 0 {
		coeffs, err := biquad.ButterworthLP(cfg.toneCutoff, 2, cfg.sampleRate)
		if err != nil {
			return nil, fmt.Errorf("granular: tone filter: %w", err)
		}

		e.toneL = biquad.NewChain(coeffs)
		e.toneR = biquad.NewChain(coeffs)
	}

	e.rec.live = true
	e.SetParams(DefaultParams())

	return e, nil
}

func (cfg *config) validate() error {
	if cfg.sampleRate <= 0 || math.IsNaN(cfg.sampleRate) || math.IsInf(cfg.sampleRate, 0) {
		return fmt.Errorf("granular: sample rate must be > 0: %f", cfg.sampleRate)
	}

	if cfg.maxGrainSize <= 0 {
		return fmt.Errorf("granular: max grain size must be > 0: %d", cfg.maxGrainSize)
	}

	if cfg.numGrains <= 0 {
		return fmt.Errorf("granular: grain count must be > 0: %d", cfg.numGrains)
	}

	if cfg.maxReps <= 0 {
		return fmt.Errorf("granular: max reps must be > 0: %d", cfg.maxReps)
	}

	if cfg.canvasSize <= 0 {
		return fmt.Errorf("granular: canvas size must be > 0: %d", cfg.canvasSize)
	}

	if cfg.toneCutoff < 0 || math.IsNaN(cfg.toneCutoff) {
		return fmt.Errorf("granular: tone cutoff must be >= 0: %f", cfg.toneCutoff)
	}

	if t := cfg.tables; t != nil {
		if t.numGrains != cfg.numGrains || t.maxReps != cfg.maxReps || t.canvasSize != cfg.canvasSize {
			return fmt.Errorf("granular: tables are %dx%d for canvas %d, engine needs %dx%d for canvas %d",
				t.numGrains, t.maxReps, t.canvasSize, cfg.numGrains, cfg.maxReps, cfg.canvasSize)
		}
	}

	return nil
}

// SetParams installs a new parameter snapshot.
//
// GrainSize is clamped to [1, max grain size] and GainReps to [0, max reps];
// non-finite values become 0. While freeze is requested the effective
// feedback is FreezeFeedback, and while frozen GrainSize keeps its
// previous value. A capture that has not started yet latches the new
// GrainSize immediately; otherwise it applies from the next grain.
func (e *Engine) SetParams(p Params) {
	p = p.sanitize(e.cfg.maxGrainSize, e.cfg.maxReps)

	e.freeze.SetDial(p.FreezeDial)

	if e.freeze.Requested() {
		p.Feedback = FreezeFeedback
	}

	if e.freeze.Frozen() {
		p.GrainSize = e.params.GrainSize
	}

	e.params = p

	// A live capture that has not taken its first sample yet picks up
	// the new grain size.
	if e.rec.live && e.rec.offset == 0 {
		e.rec.begin(e.pool, e.rec.slot, p.GrainSize, true)
	}
}

// Params returns the effective parameters.
func (e *Engine) Params() Params { return e.params }

// Frozen reports whether grain capture is currently suspended.
func (e *Engine) Frozen() bool { return e.freeze.Frozen() }

// FreezeRequested reports whether the last freeze dial was above threshold.
func (e *Engine) FreezeRequested() bool { return e.freeze.Requested() }

// Halted reports whether a clip overrun or a failed pitch shift stopped the
// engine.
func (e *Engine) Halted() bool { return e.err != nil }

// Err returns the error that halted the engine, or nil.
func (e *Engine) Err() error { return e.err }

// Stats returns the engine counters.
func (e *Engine) Stats() Stats { return e.stats }

// Canvas exposes the canvas for inspection. Callers must not modify it.
func (e *Engine) Canvas() *Canvas { return e.canvas }

// Slot returns the index of the grain slot currently being captured or
// replayed.
func (e *Engine) Slot() int { return e.rec.slot }

// GrainLength returns the playable length of a grain slot.
func (e *Engine) GrainLength(slot int) int { return e.pool.lengths[slot] }

// ProcessSample processes one input sample and returns the stereo output.
//
// If |left| would exceed ClipCeiling, no output is produced, the engine
// halts and the returned error wraps ErrClipOverrun. Later calls return
// ErrHalted until Reset.
func (e *Engine) ProcessSample(in float64) (left, right float64, err error) {
	if e.err != nil {
		return 0, 0, ErrHalted
	}

	sample := e.rec.tick(e.pool, in)
	scatter(e.canvas, e.tables, e.rec.slot, e.params.GainReps, e.params.Feedback, sample)

	wetL, wetR := e.canvas.read()
	if e.toneL != nil {
		wetL = e.toneL.ProcessSample(wetL)
		wetR = e.toneR.ProcessSample(wetR)
	}

	left = e.params.Amplitude * (wetL + in)
	right = e.params.Amplitude * (wetR + in)

	peak := math.Abs(left)
	if !(peak <= ClipCeiling) {
		e.err = fmt.Errorf("%w: frame %d: |%g| > %g", ErrClipOverrun, e.stats.Frames, left, ClipCeiling)
		return 0, 0, e.err
	}

	if peak > e.cyclePeak {
		e.cyclePeak = peak
	}

	if e.rec.advance() {
		e.completeGrain()
	}

	if e.canvas.advance() {
		e.stats.CanvasWraps++
		e.stats.LastCyclePeak = e.cyclePeak
		e.cyclePeak = 0
	}

	e.stats.Frames++

	return left, right, nil
}

// completeGrain latches freeze, pitch-shifts a freshly captured grain and
// starts the next slot. A failed shift halts the engine from the next
// sample on.
func (e *Engine) completeGrain() {
	wasLive := e.rec.live

	e.freeze.Boundary()

	if wasLive && e.params.Pitch != 0 {
		if err := e.pitch.shift(e.pool, e.rec.slot, e.rec.length, e.params.Pitch); err != nil {
			e.err = fmt.Errorf("granular: pitch shift of slot %d: %w", e.rec.slot, err)
		}
	}

	e.stats.Grains++
	e.rec.begin(e.pool, e.pool.next(e.rec.slot), e.params.GrainSize, !e.freeze.Frozen())
}

// ProcessBlock processes in into outL and outR, which must all have the
// same length. It returns the number of frames produced; on a clip overrun
// that is the index of the faulting frame.
func (e *Engine) ProcessBlock(outL, outR, in []float64) (int, error) {
	if len(outL) != len(in) || len(outR) != len(in) {
		return 0, fmt.Errorf("%w: in=%d left=%d right=%d", ErrBlockLength, len(in), len(outL), len(outR))
	}

	for i, x := range in {
		l, r, err := e.ProcessSample(x)
		if err != nil {
			return i, err
		}

		outL[i], outR[i] = l, r
	}

	return len(in), nil
}

// Reset clears the canvas, grain pool, recorder, tone filter, fault and
// counters. Scatter tables and parameters are kept; the freeze latch
// returns to live.
func (e *Engine) Reset() {
	e.canvas.reset()
	e.pool.reset()
	e.freeze.Reset()

	if e.toneL != nil {
		e.toneL.Reset()
		e.toneR.Reset()
	}

	e.stats = Stats{}
	e.cyclePeak = 0
	e.err = nil

	e.rec.begin(e.pool, 0, e.params.GrainSize, true)
}
