// Package audiofile reads mono input clips from WAV or AIFF files and
// writes stereo renders back out.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-grainverb/dsp/dither"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
)

var (
	// ErrUnknownFormat is returned when a file is neither WAV nor AIFF.
	ErrUnknownFormat = errors.New("audiofile: unknown format")
	// ErrBitDepth is returned for bit depths other than 16, 24 or 32.
	ErrBitDepth = errors.New("audiofile: unsupported bit depth")
	// ErrChannelLength is returned when left and right differ in length.
	ErrChannelLength = errors.New("audiofile: channel length mismatch")
)

// readChunk is the number of frames decoded per AIFF read.
const readChunk = 4096

// Clip is a decoded input file downmixed to one channel in [-1, 1].
type Clip struct {
	Samples    []float64
	SampleRate int
	BitDepth   int
	// Channels is the channel count of the source file.
	Channels int
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}

	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// Read decodes a WAV or AIFF file, detected by its header, and averages
// all channels into one.
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnknownFormat, path, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch string(magic[:]) {
	case "RIFF":
		return readWAV(f, path)
	case "FORM":
		return readAIFF(f, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

func readWAV(f *os.File, path string) (*Clip, error) {
	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return newClip(buf.Data, buf.Format.NumChannels, int(decoder.SampleRate), int(decoder.BitDepth))
}

func readAIFF(f *os.File, path string) (*Clip, error) {
	decoder := aiff.NewDecoder(f)
	decoder.ReadInfo()

	channels := int(decoder.NumChans)
	if channels == 0 || decoder.SampleRate == 0 || decoder.BitDepth == 0 {
		return nil, fmt.Errorf("invalid AIFF file: %s", path)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  int(decoder.SampleRate),
		},
		Data:           make([]int, readChunk*channels),
		SourceBitDepth: int(decoder.BitDepth),
	}

	var data []int

	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}

		if n == 0 {
			break
		}

		data = append(data, buf.Data[:n]...)
	}

	return newClip(data, channels, int(decoder.SampleRate), int(decoder.BitDepth))
}

func newClip(data []int, channels, sampleRate, bitDepth int) (*Clip, error) {
	full, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	if channels <= 0 {
		return nil, fmt.Errorf("audiofile: invalid channel count %d", channels)
	}

	frames := len(data) / channels
	samples := make([]float64, frames)
	norm := 1 / (full * float64(channels))

	for i := range samples {
		var sum int
		for _, v := range data[i*channels : (i+1)*channels] {
			sum += v
		}

		samples[i] = float64(sum) * norm
	}

	return &Clip{
		Samples:    samples,
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Channels:   channels,
	}, nil
}

// fullScale returns 2^(bitDepth-1), the magnitude of the most negative code.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
}

// WriteOption configures Write.
type WriteOption func(*writeConfig)

type writeConfig struct {
	dither     bool
	seed       uint64
	ditherOpts []dither.Option
}

// WithDither quantizes through a dither.Quantizer per channel instead of
// plain rounding. The right channel uses seed+1 so the channels get
// independent noise. opts are passed on to dither.NewQuantizer; the bit
// depth always follows Write's argument.
func WithDither(seed uint64, opts ...dither.Option) WriteOption {
	return func(cfg *writeConfig) {
		cfg.dither = true
		cfg.seed = seed
		cfg.ditherOpts = opts
	}
}

// Write encodes a stereo render. The container follows the extension:
// .aif or .aiff for AIFF, anything else for WAV. Samples outside [-1, 1]
// are clipped to the largest code.
func Write(path string, left, right []float64, sampleRate, bitDepth int, opts ...WriteOption) error {
	if len(left) != len(right) {
		return fmt.Errorf("%w: %d vs %d", ErrChannelLength, len(left), len(right))
	}

	full, err := fullScale(bitDepth)
	if err != nil {
		return err
	}

	var cfg writeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var data []int
	if cfg.dither {
		data, err = ditherCodes(left, right, bitDepth, cfg)
		if err != nil {
			return err
		}
	} else {
		data = roundCodes(left, right, full)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := newEncoder(out, path, sampleRate, bitDepth)

	if err := enc.Write(buf); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	return out.Close()
}

func roundCodes(left, right []float64, full float64) []int {
	interleaved := make([]float64, 2*len(left))
	f64.Interleave2(interleaved, left, right)
	f64.Scale(interleaved, interleaved, full)

	maxCode := int(full) - 1
	data := make([]int, len(interleaved))

	for i, v := range interleaved {
		data[i] = clipCode(int(math.Round(v)), maxCode)
	}

	return data
}

func ditherCodes(left, right []float64, bitDepth int, cfg writeConfig) ([]int, error) {
	quantizers := make([]*dither.Quantizer, 2)

	for ch := range quantizers {
		opts := append(append([]dither.Option(nil), cfg.ditherOpts...),
			dither.WithSeed(cfg.seed+uint64(ch)),
			dither.WithBitDepth(bitDepth),
		)

		q, err := dither.NewQuantizer(opts...)
		if err != nil {
			return nil, fmt.Errorf("audiofile: dither: %w", err)
		}

		quantizers[ch] = q
	}

	data := make([]int, 2*len(left))
	for i := range left {
		data[2*i] = quantizers[0].ProcessInteger(left[i])
		data[2*i+1] = quantizers[1].ProcessInteger(right[i])
	}

	return data, nil
}

type encoder interface {
	Write(buf *audio.IntBuffer) error
	Close() error
}

func newEncoder(w io.WriteSeeker, path string, sampleRate, bitDepth int) encoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".aif", ".aiff":
		return aiff.NewEncoder(w, sampleRate, bitDepth, 2)
	default:
		return wav.NewEncoder(w, sampleRate, bitDepth, 2, 1)
	}
}

func clipCode(v, maxCode int) int {
	if v > maxCode {
		return maxCode
	}

	if v < -maxCode {
		return -maxCode
	}

	return v
}
