package granular

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-grainverb/dsp/resample"
)

func TestPitchedLength(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		pitch float64
		max   int
		want  int
	}{
		{"unity", 4410, 0, 44100, 4410},
		{"octave up", 4410, 2, 44100, 2205},
		{"octave down", 4410, -2, 44100, 8820},
		{"two octaves down", 4410, -4, 44100, 17640},
		{"clamped to capacity", 44100, -2, 44100, 44100},
		{"clamped to one", 1, 4, 44100, 1},
		{"floor", 3, 1, 100, 2},
		{"nan pitch", 100, math.NaN(), 1000, 100},
		{"inf pitch", 100, math.Inf(-1), 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PitchedLength(tt.n, tt.pitch, tt.max); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

// The resampled grain is written back into the slot and its playable
// length updated. Earlier builds discarded the resampled grain and kept the
// captured length.
func TestPitchShifter_WritesBack(t *testing.T) {
	p := newGrainPool(2, 64)
	s, err := newPitchShifter(64)
	if err != nil {
		t.Fatal(err)
	}

	buf := p.slot(1)
	for i := range 32 {
		buf[i] = float64(i)
	}

	p.lengths[1] = 32

	if err := s.shift(p, 1, 32, 2); err != nil {
		t.Fatal(err)
	}

	if p.lengths[1] != 16 {
		t.Fatalf("length: got %d, want 16", p.lengths[1])
	}

	// A ramp stays monotonic after halving.
	for i := 1; i < 16; i++ {
		if buf[i] <= buf[i-1] {
			t.Fatalf("sample %d not increasing: %v <= %v", i, buf[i], buf[i-1])
		}
	}

	if p.lengths[0] != 0 || p.slot(0)[0] != 0 {
		t.Fatal("neighbouring slot touched")
	}
}

func TestPitchShifter_EmptyGrain(t *testing.T) {
	p := newGrainPool(1, 8)
	s, _ := newPitchShifter(8)

	if err := s.shift(p, 0, 0, 2); !errors.Is(err, resample.ErrEmptySource) {
		t.Fatalf("got %v, want ErrEmptySource", err)
	}

	if p.lengths[0] != 0 {
		t.Fatalf("length changed: %d", p.lengths[0])
	}
}

func TestPitchShifter_UnityIsNoop(t *testing.T) {
	p := newGrainPool(1, 8)
	s, _ := newPitchShifter(8)

	buf := p.slot(0)
	copy(buf, []float64{1, 2, 3, 4})
	p.lengths[0] = 4

	if err := s.shift(p, 0, 4, 0); err != nil {
		t.Fatal(err)
	}

	if p.lengths[0] != 4 || buf[2] != 3 {
		t.Fatalf("unity pitch changed the grain: len=%d buf=%v", p.lengths[0], buf[:4])
	}
}
