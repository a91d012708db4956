package level

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-grainverb/internal/testutil"
)

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || !math.IsInf(s.PeakDB, -1) || !math.IsInf(s.RMSDB, -1) {
		t.Fatalf("empty stats: %+v", s)
	}
}

func TestCalculate_Square(t *testing.T) {
	s := Calculate([]float64{0.5, -0.5, 0.5, -0.5})

	if s.Length != 4 || s.DC != 0 {
		t.Fatalf("length=%d dc=%v", s.Length, s.DC)
	}

	if s.RMS != 0.5 || s.Peak != 0.5 || s.CrestFactor != 1 || s.CrestFactorDB != 0 {
		t.Fatalf("stats: %+v", s)
	}

	if math.Abs(s.PeakDB-(-6.0206)) > 1e-4 {
		t.Fatalf("peak dB: %v", s.PeakDB)
	}
}

func TestCalculate_Sine(t *testing.T) {
	sig := testutil.DeterministicSine(1000, 48000, 1, 48000)
	s := Calculate(sig)

	if math.Abs(s.RMS-1/math.Sqrt2) > 1e-6 {
		t.Fatalf("rms: %v", s.RMS)
	}

	if math.Abs(s.CrestFactor-math.Sqrt2) > 1e-5 {
		t.Fatalf("crest: %v", s.CrestFactor)
	}

	if math.Abs(s.DC) > 1e-9 {
		t.Fatalf("dc: %v", s.DC)
	}
}

func TestMeter_BlocksMatchCalculate(t *testing.T) {
	sig := testutil.DeterministicNoise(1, 0.8, 1000)
	want := Calculate(sig)

	m := NewMeter()
	for start := 0; start < len(sig); start += 128 {
		end := min(start+128, len(sig))
		m.Update(sig[start:end])
	}

	m.Update(nil)

	got := m.Result()
	if got.Length != want.Length || got.Max != want.Max || got.Min != want.Min || got.Peak != want.Peak {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if math.Abs(got.RMS-want.RMS) > 1e-12 || math.Abs(got.DC-want.DC) > 1e-12 {
		t.Fatalf("rms/dc: got %v %v, want %v %v", got.RMS, got.DC, want.RMS, want.DC)
	}

	m.Reset()
	if m.Result().Length != 0 {
		t.Fatal("Reset did not clear the meter")
	}
}

func TestMeter_NegativeOnly(t *testing.T) {
	m := NewMeter()
	m.Update([]float64{-0.2, -0.9})
	m.Update([]float64{-0.1})

	s := m.Result()
	if s.Max != -0.1 || s.Min != -0.9 || s.Peak != 0.9 {
		t.Fatalf("stats: %+v", s)
	}
}
