package control

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-grainverb/dsp/granular"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name                 string
		x, inMin, inMax      float64
		outMin, outMax, want float64
	}{
		{"low end", 0, 0, 1, 500, 44100, 500},
		{"high end", 1, 0, 1, 500, 44100, 44100},
		{"midpoint", 0.5, 0, 1, -4, 4, 0},
		{"clamped above", 1.5, 0, 1, 0.5, 1.5, 1.5},
		{"clamped below", -1, 0, 1, 0, 100, 0},
		{"degenerate input range", 0.3, 1, 1, 2, 120, 2},
		{"input range within rounding", 2, 1, 1 + 1e-15, 0, 10, 0},
		{"nan", math.NaN(), 0, 1, 2, 120, 2},
		{"reversed output", 0.25, 0, 1, 100, 0, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Map(tt.x, tt.inMin, tt.inMax, tt.outMin, tt.outMax); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMap_Monotonic(t *testing.T) {
	prev := math.Inf(-1)

	for i := 0; i <= 100; i++ {
		y := Map(float64(i)/100, 0, 1, 0.5, 1.5)
		if y < prev {
			t.Fatalf("not monotonic at %d: %v < %v", i, y, prev)
		}

		prev = y
	}
}

func TestMapper_Params(t *testing.T) {
	m := DefaultMapper()

	lo := m.Params(Readings{})
	want := granular.Params{GrainSize: 500, Feedback: 0.5, GainReps: 2, Pitch: -4}

	if lo != want {
		t.Fatalf("zero readings: got %+v, want %+v", lo, want)
	}

	hi := m.Params(Readings{Volume: 1, GrainSize: 1, Feedback: 1, GainReps: 1, Freeze: 1, Pitch: 1})
	want = granular.Params{
		Amplitude:  1,
		GrainSize:  granular.DefaultMaxGrainSize,
		Feedback:   1.5,
		GainReps:   granular.DefaultMaxReps,
		FreezeDial: 100,
		Pitch:      4,
	}

	if hi != want {
		t.Fatalf("full readings: got %+v, want %+v", hi, want)
	}

	mid := m.Params(Readings{Freeze: 0.5, Pitch: 0.5})
	if mid.FreezeDial != 50 || mid.Pitch != 0 {
		t.Fatalf("mid readings: %+v", mid)
	}
}

func TestScheduler(t *testing.T) {
	s := NewScheduler(16, 2)
	if s.Stride != 8 {
		t.Fatalf("stride: %d", s.Stride)
	}

	var due []int

	for n := range 20 {
		if s.Due(n) {
			due = append(due, n)
		}
	}

	if len(due) != 3 || due[0] != 0 || due[1] != 8 || due[2] != 16 {
		t.Fatalf("due frames: %v", due)
	}

	off := NewScheduler(16, 0)
	if off.Due(0) || off.Due(16) {
		t.Fatal("disabled scheduler reported a due frame")
	}
}
