package loudness

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-grainverb/internal/testutil"
)

// A full-scale 1 kHz sine measures about -3.03 LUFS per channel: mean
// square 0.5 plus 0.67 dB of K-weighting gain, minus 0.691.
const sineLUFS = -3.0325

func TestMeter_MonoSine(t *testing.T) {
	const sr = 48000.0

	m := NewMeter(WithSampleRate(sr), WithChannels(1))
	sig := testutil.DeterministicSine(1000, sr, 1, int(4*sr))

	if err := m.ProcessPlanar(sig); err != nil {
		t.Fatal(err)
	}

	for name, got := range map[string]float64{
		"momentary":  m.Momentary(),
		"short-term": m.ShortTerm(),
		"integrated": m.Integrated(),
		"max mom":    m.MaxMomentary(),
	} {
		if math.Abs(got-sineLUFS) > 0.02 {
			t.Errorf("%s = %.4f LUFS, want %.4f", name, got, sineLUFS)
		}
	}
}

func TestMeter_StereoSumsPower(t *testing.T) {
	const sr = 48000.0

	m := NewMeter(WithSampleRate(sr))
	sig := testutil.DeterministicSine(1000, sr, 1, int(2*sr))

	for _, s := range sig {
		if err := m.ProcessFrame([]float64{s, s}); err != nil {
			t.Fatal(err)
		}
	}

	want := sineLUFS + 10*math.Log10(2)
	if got := m.Integrated(); math.Abs(got-want) > 0.02 {
		t.Errorf("integrated = %.4f LUFS, want %.4f", got, want)
	}
}

func TestMeter_ChannelWeights(t *testing.T) {
	const sr = 48000.0

	m := NewMeter(WithSampleRate(sr), WithChannels(2), WithChannelWeights(1, 0))
	sig := testutil.DeterministicSine(1000, sr, 1, int(sr))
	loud := make([]float64, len(sig))

	for i := range loud {
		loud[i] = 4 * sig[i]
	}

	// A zero weight falls back to 1, so both channels count.
	if err := m.ProcessPlanar(sig, loud); err != nil {
		t.Fatal(err)
	}

	want := sineLUFS + 10*math.Log10(17)
	if got := m.Integrated(); math.Abs(got-want) > 0.02 {
		t.Errorf("integrated = %.4f LUFS, want %.4f", got, want)
	}

	w := NewMeter(WithSampleRate(sr), WithChannels(2), WithChannelWeights(1, 1.41))
	if err := w.ProcessPlanar(sig, sig); err != nil {
		t.Fatal(err)
	}

	want = sineLUFS + 10*math.Log10(2.41)
	if got := w.Integrated(); math.Abs(got-want) > 0.02 {
		t.Errorf("weighted integrated = %.4f LUFS, want %.4f", got, want)
	}
}

func TestMeter_Silence(t *testing.T) {
	m := NewMeter(WithChannels(1))
	if err := m.ProcessPlanar(make([]float64, 48000)); err != nil {
		t.Fatal(err)
	}

	if got := m.Momentary(); got > -100 {
		t.Errorf("momentary = %v, want floor", got)
	}

	if got := m.Integrated(); !math.IsInf(got, -1) {
		t.Errorf("integrated = %v, want -Inf", got)
	}
}

func TestMeter_ShortInputHasNoBlocks(t *testing.T) {
	m := NewMeter(WithSampleRate(48000), WithChannels(1))
	if err := m.ProcessPlanar(testutil.DeterministicSine(1000, 48000, 1, 1000)); err != nil {
		t.Fatal(err)
	}

	if !math.IsInf(m.Integrated(), -1) || !math.IsInf(m.MaxMomentary(), -1) || !math.IsInf(m.MaxShortTerm(), -1) {
		t.Error("expected -Inf before the first full window")
	}
}

func TestMeter_Gating(t *testing.T) {
	const sr = 48000.0

	m := NewMeter(WithSampleRate(sr), WithChannels(1))
	high := testutil.DeterministicSine(1000, sr, 1, int(10*sr))
	low := testutil.DeterministicSine(1000, sr, 1e-4, int(10*sr))

	_ = m.ProcessPlanar(high)
	before := m.Integrated()

	_ = m.ProcessPlanar(low)
	after := m.Integrated()

	if math.Abs(before-after) > 0.1 {
		t.Errorf("gating failed: %.3f before, %.3f after the quiet part", before, after)
	}

	if m.MaxShortTerm() < after {
		t.Errorf("max short-term %.3f below integrated %.3f", m.MaxShortTerm(), after)
	}

	if m.ShortTerm() > -60 {
		t.Errorf("short-term after 10 s of quiet = %.2f", m.ShortTerm())
	}
}

func TestMeter_ChannelMismatch(t *testing.T) {
	m := NewMeter()

	if err := m.ProcessFrame([]float64{0}); !errors.Is(err, ErrChannelCount) {
		t.Errorf("ProcessFrame: got %v", err)
	}

	if err := m.ProcessPlanar([]float64{0}); !errors.Is(err, ErrChannelCount) {
		t.Errorf("ProcessPlanar count: got %v", err)
	}

	if err := m.ProcessPlanar([]float64{0}, []float64{0, 0}); !errors.Is(err, ErrChannelCount) {
		t.Errorf("ProcessPlanar lengths: got %v", err)
	}
}

func TestMeter_Reset(t *testing.T) {
	m := NewMeter(WithSampleRate(48000), WithChannels(1))
	_ = m.ProcessPlanar(testutil.DeterministicSine(1000, 48000, 1, 48000))
	m.Reset()

	if m.Channels() != 1 {
		t.Errorf("channels = %d", m.Channels())
	}

	if !math.IsInf(m.Integrated(), -1) || m.Momentary() != floorLUFS {
		t.Error("reset did not clear state")
	}
}
