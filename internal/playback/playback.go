// Package playback plays a rendered stereo buffer on the default audio
// device. Builds with the headless tag have no audio backend and return
// ErrUnavailable.
package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
)

var (
	// ErrUnavailable is returned when the binary has no audio backend.
	ErrUnavailable = errors.New("playback: audio output unavailable in this build")
	// ErrChannelLength is returned when left and right differ in length.
	ErrChannelLength = errors.New("playback: channel length mismatch")
)

const (
	channelCount   = 2
	bytesPerSample = 4
)

// Encode interleaves left and right into little-endian float32 frames.
func Encode(left, right []float64) ([]byte, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrChannelLength, len(left), len(right))
	}

	interleaved := make([]float64, channelCount*len(left))
	f64.Interleave2(interleaved, left, right)

	out := make([]byte, bytesPerSample*len(interleaved))
	for i, v := range interleaved {
		binary.LittleEndian.PutUint32(out[i*bytesPerSample:], math.Float32bits(float32(v)))
	}

	return out, nil
}
