package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-grainverb/dsp/control"
	"github.com/cwbudde/algo-grainverb/dsp/core"
	"github.com/cwbudde/algo-grainverb/dsp/granular"
	"github.com/cwbudde/algo-grainverb/internal/chart"
)

// Envelope points per second in the HTML chart.
const chartRate = 50

// controlSource yields raw control readings at time t in seconds.
type controlSource interface {
	Readings(t float64) (control.Readings, error)
}

// fixedControls is a controlSource that never changes.
type fixedControls control.Readings

func (f fixedControls) Readings(float64) (control.Readings, error) {
	return control.Readings(f), nil
}

type renderSettings struct {
	SampleRate float64
	// BlockSize is the number of frames handed to the engine per call.
	// Blocks are split at control boundaries.
	BlockSize  int
	Scheduler  control.Scheduler
	Mapper     control.Mapper
	Source     controlSource
	// Progress, if set, receives the number of input frames consumed.
	Progress   func(done int)
}

type renderResult struct {
	Left  []float64
	Right []float64
	Stats granular.Stats
	// Fault is the clip overrun that stopped the render, if any. Left and
	// Right hold the frames produced before it.
	Fault error
}

// newScheduler returns a scheduler taking perBlock control readings per
// processing block, or one using the configured stride when perBlock is 0.
func newScheduler(cfg core.ProcessorConfig, perBlock int) control.Scheduler {
	if perBlock > 0 {
		return control.NewScheduler(cfg.BlockSize, perBlock)
	}

	return control.Scheduler{Stride: cfg.ControlStride}
}

// render runs in through e, reading a new parameter snapshot at the start
// of every control period. A clip overrun ends the render early and is
// reported in the result rather than as an error.
func render(e *granular.Engine, in []float64, s renderSettings) (renderResult, error) {
	if s.SampleRate <= 0 {
		return renderResult{}, fmt.Errorf("invalid sample rate %g", s.SampleRate)
	}

	block := s.BlockSize
	if block <= 0 {
		block = core.DefaultProcessorConfig().BlockSize
	}

	left := make([]float64, len(in))
	right := make([]float64, len(in))

	for start, end := 0, 0; start < len(in); start = end {
		if start == 0 || s.Scheduler.Due(start) {
			r, err := s.Source.Readings(float64(start) / s.SampleRate)
			if err != nil {
				return renderResult{}, fmt.Errorf("control reading at frame %d: %w", start, err)
			}

			e.SetParams(s.Mapper.Params(r))
		}

		end = min(start+block, len(in))
		if stride := s.Scheduler.Stride; stride > 0 {
			end = min(end, (start/stride+1)*stride)
		}

		n, err := e.ProcessBlock(left[start:end], right[start:end], in[start:end])
		if err != nil {
			if !errors.Is(err, granular.ErrClipOverrun) {
				return renderResult{}, err
			}

			done := start + n

			return renderResult{
				Left:  left[:done],
				Right: right[:done],
				Stats: e.Stats(),
				Fault: err,
			}, nil
		}

		if s.Progress != nil {
			s.Progress(end)
		}
	}

	return renderResult{Left: left, Right: right, Stats: e.Stats()}, nil
}

// padTail returns in followed by n zeros.
func padTail(in []float64, n int) []float64 {
	if n <= 0 {
		return in
	}

	out := make([]float64, len(in)+n)
	copy(out, in)

	return out
}

// validateKnobs rejects readings outside [0, 1].
func validateKnobs(r control.Readings) error {
	knobs := []struct {
		name  string
		value float64
	}{
		{"volume", r.Volume},
		{"grain", r.GrainSize},
		{"feedback", r.Feedback},
		{"reps", r.GainReps},
		{"freeze", r.Freeze},
		{"pitch", r.Pitch},
	}

	for _, k := range knobs {
		if !(k.value >= 0 && k.value <= 1) {
			return fmt.Errorf("-%s must be in [0, 1], got %g", k.name, k.value)
		}
	}

	return nil
}

// writeChart renders the input and output level envelopes to path.
func writeChart(path string, in []float64, res renderResult, sampleRate float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	window := max(1, int(sampleRate)/chartRate)

	return chart.RenderEnvelope(f, "grainverb level envelope", float64(window)/sampleRate,
		chart.Series{Name: "input", Values: chart.Envelope(in, window)},
		chart.Series{Name: "left", Values: chart.Envelope(res.Left, window)},
		chart.Series{Name: "right", Values: chart.Envelope(res.Right, window)},
	)
}
