package biquad

import "math"

// HighpassRBJ returns the RBJ cookbook high-pass section.
func HighpassRBJ(freq, q, sampleRate float64) Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	b1 := -(1 + cw) / a0

	return Coefficients{
		B0: -b1 / 2,
		B1: b1,
		B2: -b1 / 2,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

// HighShelfRBJ returns the RBJ cookbook high shelf with gainDB of boost
// (or cut) above freq.
func HighShelfRBJ(freq, gainDB, q, sampleRate float64) Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	a0 := (a + 1) - (a-1)*cw + beta

	return Coefficients{
		B0: a * ((a + 1) + (a-1)*cw + beta) / a0,
		B1: -2 * a * ((a - 1) + (a+1)*cw) / a0,
		B2: a * ((a + 1) + (a-1)*cw - beta) / a0,
		A1: 2 * ((a - 1) - (a+1)*cw) / a0,
		A2: ((a + 1) - (a-1)*cw - beta) / a0,
	}
}
