// Package chart renders level envelopes of a render as an HTML line chart.
package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/cwbudde/algo-grainverb/dsp/core"
)

// ErrNoSeries is returned when there is nothing to plot.
var ErrNoSeries = errors.New("chart: no series")

// Series is one named line.
type Series struct {
	Name   string
	Values []float64
}

// Envelope returns the peak magnitude of each consecutive window of
// samples. The last window may be shorter.
func Envelope(samples []float64, window int) []float64 {
	if window <= 0 || len(samples) == 0 {
		return nil
	}

	out := make([]float64, 0, (len(samples)+window-1)/window)
	for start := 0; start < len(samples); start += window {
		end := min(start+window, len(samples))
		out = append(out, core.MaxAbs(samples[start:end]))
	}

	return out
}

// RenderEnvelope writes an HTML line chart of the series to w. step is the
// time in seconds between points and labels the x axis.
func RenderEnvelope(w io.Writer, title string, step float64, series ...Series) error {
	if len(series) == 0 {
		return ErrNoSeries
	}

	points := 0
	for _, s := range series {
		points = max(points, len(s.Values))
	}

	labels := make([]string, points)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.2f", float64(i)*step)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "peak per window, x in seconds",
		}),
	)

	line.SetXAxis(labels)

	for _, s := range series {
		items := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			items[i] = opts.LineData{Value: v}
		}

		line.AddSeries(s.Name, items)
	}

	return line.Render(w)
}
