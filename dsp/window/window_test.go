package window

import (
	"math"
	"testing"
)

func TestHannAtEndpoints(t *testing.T) {
	if got := HannAt(0, 100); math.Abs(got) > 1e-12 {
		t.Fatalf("HannAt(0, 100) = %v, want ~0", got)
	}
	if got := HannAt(50, 100); math.Abs(got-1) > 1e-12 {
		t.Fatalf("HannAt(50, 100) = %v, want ~1", got)
	}
}

func TestHannAtSymmetric(t *testing.T) {
	for _, length := range []int{1, 2, 7, 100, 501, 4410, 44100} {
		for n := 0; n <= length/2; n++ {
			a := HannAt(n, length)
			b := HannAt(length-n, length)
			if math.Abs(a-b) > 1e-9 {
				t.Fatalf("length %d: HannAt(%d)=%v, HannAt(%d)=%v", length, n, a, length-n, b)
			}
		}
	}
}

func TestHannAtRange(t *testing.T) {
	const length = 333
	for n := range length {
		v := HannAt(n, length)
		if v < -1e-15 || v > 1+1e-15 {
			t.Fatalf("HannAt(%d) = %v outside [0, 1]", n, v)
		}
	}
}

func TestHannMatchesHannAt(t *testing.T) {
	w, err := Hann(64)
	if err != nil {
		t.Fatalf("Hann() error = %v", err)
	}
	for i, v := range w {
		if v != HannAt(i, 64) {
			t.Fatalf("w[%d] = %v, want %v", i, v, HannAt(i, 64))
		}
	}

	if _, err := Hann(0); err == nil {
		t.Fatal("Hann(0) expected error")
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	coeffs := []float64{0, 0.5, 1, 0.5}

	dst := make([]float64, 4)
	if err := ApplyCoefficients(dst, samples, coeffs); err != nil {
		t.Fatalf("ApplyCoefficients() error = %v", err)
	}
	want := []float64{0, 1, 3, 2}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	if err := ApplyCoefficientsInPlace(samples, coeffs); err != nil {
		t.Fatalf("ApplyCoefficientsInPlace() error = %v", err)
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}

	if err := ApplyCoefficientsInPlace(samples, coeffs[:2]); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
