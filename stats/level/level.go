// Package level measures the level of rendered audio blocks: peak, RMS,
// crest factor and DC, accumulated across blocks.
package level

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-grainverb/dsp/core"
)

// Stats holds level statistics of a signal.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMSDB         float64
	Max           float64
	Min           float64
	Peak          float64 // max(|Max|, |Min|)
	PeakDB        float64
	CrestFactor   float64 // Peak / RMS
	CrestFactorDB float64
}

func emptyStats() Stats {
	return Stats{
		RMSDB:         math.Inf(-1),
		PeakDB:        math.Inf(-1),
		CrestFactorDB: math.Inf(-1),
	}
}

// Meter accumulates level statistics across blocks.
type Meter struct {
	n     int
	sum   float64
	sumSq float64
	max   float64
	min   float64
}

// NewMeter returns an empty meter.
func NewMeter() *Meter {
	return &Meter{}
}

// Update adds a block of samples.
func (m *Meter) Update(block []float64) {
	if len(block) == 0 {
		return
	}

	hi, lo := floats.Max(block), floats.Min(block)
	if m.n == 0 || hi > m.max {
		m.max = hi
	}

	if m.n == 0 || lo < m.min {
		m.min = lo
	}

	m.n += len(block)
	m.sum += floats.Sum(block)
	m.sumSq += floats.Dot(block, block)
}

// Result returns the statistics of every sample seen since the last Reset.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return emptyStats()
	}

	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)
	peak := math.Max(math.Abs(m.max), math.Abs(m.min))

	s := Stats{
		Length: m.n,
		DC:     m.sum / nf,
		RMS:    rms,
		RMSDB:  core.LinearToDB(rms),
		Max:    m.max,
		Min:    m.min,
		Peak:   peak,
		PeakDB: core.LinearToDB(peak),
	}

	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactorDB = core.LinearToDB(s.CrestFactor)
	}

	return s
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}

// Calculate returns the statistics of a single signal.
func Calculate(signal []float64) Stats {
	var m Meter

	m.Update(signal)

	return m.Result()
}
