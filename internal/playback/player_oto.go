//go:build !headless

package playback

import (
	"bytes"
	"context"
	"time"

	"github.com/ebitengine/oto/v3"
)

const pollInterval = 10 * time.Millisecond

// Player owns the process-wide audio context. Create at most one.
type Player struct {
	ctx *oto.Context
}

// New opens the default output device at the given sample rate.
func New(sampleRate int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &Player{ctx: ctx}, nil
}

// Play blocks until the buffer has been played or ctx is done.
func (p *Player) Play(ctx context.Context, left, right []float64) error {
	data, err := Encode(left, right)
	if err != nil {
		return err
	}

	player := p.ctx.NewPlayer(bytes.NewReader(data))
	defer player.Close()

	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}
