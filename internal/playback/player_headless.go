//go:build headless

package playback

import "context"

// Player is a stub without an audio backend.
type Player struct{}

// New always returns ErrUnavailable.
func New(sampleRate int) (*Player, error) {
	return nil, ErrUnavailable
}

// Play always returns ErrUnavailable.
func (p *Player) Play(ctx context.Context, left, right []float64) error {
	return ErrUnavailable
}
