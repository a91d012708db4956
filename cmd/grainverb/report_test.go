package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-grainverb/dsp/granular"
	"github.com/cwbudde/algo-grainverb/dsp/spectrum"
	"github.com/cwbudde/algo-grainverb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeChannel(t *testing.T) {
	an, err := spectrum.NewAnalyzer(reportFFTSize)
	require.NoError(t, err)

	sine := testutil.DeterministicSine(1000, testRate, 0.5, 3*reportFFTSize)

	rep, err := analyzeChannel("left", sine, testRate, an)
	require.NoError(t, err)
	assert.Equal(t, "left", rep.Name)
	assert.Equal(t, len(sine), rep.Level.Length)
	assert.InDelta(t, 0.5, rep.Level.Peak, 1e-3)
	assert.InDelta(t, 0.5/math.Sqrt2, rep.Level.RMS, 1e-3)
	assert.InDelta(t, 1000, rep.PeakHz, 5)

	short, err := analyzeChannel("right", sine[:100], testRate, an)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(short.PeakHz))
	assert.Equal(t, 100, short.Level.Length)
}

func TestWriteReport(t *testing.T) {
	sine := testutil.DeterministicSine(440, testRate, 0.25, 2*reportFFTSize)
	res := renderResult{
		Left:  sine,
		Right: sine,
		Stats: granular.Stats{Frames: int64(len(sine)), Grains: 3, CanvasWraps: 1, LastCyclePeak: 0.25},
	}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sine, res, testRate, 0))

	out := buf.String()
	assert.Contains(t, out, "Channel")
	assert.Contains(t, out, "left")
	assert.Contains(t, out, "right")
	assert.Contains(t, out, "Integrated: ")
	assert.Contains(t, out, "LUFS")
	assert.Contains(t, out, "frames=8192 grains=3 canvas_wraps=1 last_cycle_peak=0.2500")
	assert.NotContains(t, out, "Tone")
}

func TestWriteReport_Tone(t *testing.T) {
	in := testutil.DeterministicSine(440, testRate, 0.25, 2*reportFFTSize)
	res := renderResult{Left: in, Right: make([]float64, len(in))}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, in, res, testRate, 440))
	assert.Contains(t, buf.String(), "Tone 440.0 Hz: in -12.0 dBFS  left -12.0 dBFS  right -Inf dBFS")

	require.Error(t, writeReport(&bytes.Buffer{}, in, res, testRate, testRate))
}

func TestToneLevel(t *testing.T) {
	g, err := spectrum.NewGoertzel(1000, testRate)
	require.NoError(t, err)

	sine := testutil.DeterministicSine(1000, testRate, 0.5, 3*meterBlock+100)
	assert.InDelta(t, -6.02, toneLevel(g, sine), 0.05)

	// The detector is reset between calls.
	assert.InDelta(t, -6.02, toneLevel(g, sine), 0.05)

	off := testutil.DeterministicSine(5000, testRate, 0.5, 3*meterBlock+100)
	assert.Less(t, toneLevel(g, off), -40.0)

	assert.True(t, math.IsInf(toneLevel(g, nil), -1))
}

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.html")
	in := testutil.DeterministicSine(440, testRate, 0.25, 4410)
	res := renderResult{Left: in, Right: in}

	require.NoError(t, writeChart(path, in, res, testRate))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "grainverb level envelope")
}
