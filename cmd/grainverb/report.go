package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-grainverb/dsp/core"
	"github.com/cwbudde/algo-grainverb/dsp/spectrum"
	"github.com/cwbudde/algo-grainverb/measure/loudness"
	"github.com/cwbudde/algo-grainverb/stats/level"
)

const (
	reportFFTSize = 4096
	meterBlock    = 4096
)

// channelReport summarises one rendered channel.
type channelReport struct {
	Name   string
	Level  level.Stats
	PeakHz float64 // NaN if the channel is shorter than one analysis frame
}

func analyzeChannel(name string, samples []float64, sampleRate float64, an *spectrum.Analyzer) (channelReport, error) {
	m := level.NewMeter()
	for start := 0; start < len(samples); start += meterBlock {
		m.Update(samples[start:min(start+meterBlock, len(samples))])
	}

	rep := channelReport{Name: name, Level: m.Result(), PeakHz: math.NaN()}

	if len(samples) < an.Size() {
		return rep, nil
	}

	// Analyze the middle of the render, past the canvas build-up.
	mid := (len(samples) - an.Size()) / 2

	hz, err := an.PeakFrequency(samples[mid:mid+an.Size()], sampleRate)
	if err != nil {
		return rep, err
	}

	rep.PeakHz = hz

	return rep, nil
}

// toneLevel returns the amplitude in dBFS of the component of samples at
// the detector's frequency, assuming a steady sinusoid.
func toneLevel(g *spectrum.Goertzel, samples []float64) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}

	g.Reset()

	for start := 0; start < len(samples); start += meterBlock {
		g.ProcessBlock(samples[start:min(start+meterBlock, len(samples))])
	}

	return core.LinearToDB(2 * g.Magnitude() / float64(len(samples)))
}

// writeTone prints how a tone at hz carries from the input to each output
// channel.
func writeTone(w io.Writer, in []float64, res renderResult, sampleRate, hz float64) error {
	g, err := spectrum.NewGoertzel(hz, sampleRate)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Tone %.1f Hz: in %.1f dBFS  left %.1f dBFS  right %.1f dBFS\n",
		g.Frequency(), toneLevel(g, in), toneLevel(g, res.Left), toneLevel(g, res.Right))

	return err
}

// writeReport prints per-channel levels and the engine counters. A positive
// toneHz adds a line tracking that tone through the render.
func writeReport(w io.Writer, in []float64, res renderResult, sampleRate, toneHz float64) error {
	an, err := spectrum.NewAnalyzer(reportFFTSize)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Channel\tPeak [dB]\tRMS [dB]\tCrest [dB]\tDC\tPeak [Hz]\n")
	fmt.Fprintf(tw, "-------\t---------\t--------\t----------\t--\t---------\n")

	for _, ch := range []struct {
		name    string
		samples []float64
	}{{"left", res.Left}, {"right", res.Right}} {
		rep, err := analyzeChannel(ch.name, ch.samples, sampleRate, an)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.5f\t%.1f\n",
			rep.Name, rep.Level.PeakDB, rep.Level.RMSDB, rep.Level.CrestFactorDB, rep.Level.DC, rep.PeakHz)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	lm := loudness.NewMeter(loudness.WithSampleRate(sampleRate), loudness.WithChannels(2))
	if err := lm.ProcessPlanar(res.Left, res.Right); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nIntegrated: %.1f LUFS  Max short-term: %.1f LUFS\n", lm.Integrated(), lm.MaxShortTerm())

	if toneHz > 0 {
		if err := writeTone(w, in, res, sampleRate, toneHz); err != nil {
			return err
		}
	}

	st := res.Stats
	_, err = fmt.Fprintf(w, "frames=%d grains=%d canvas_wraps=%d last_cycle_peak=%.4f\n",
		st.Frames, st.Grains, st.CanvasWraps, st.LastCyclePeak)

	return err
}
