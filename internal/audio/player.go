package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// Sink plays streams. Implementations must not block.
type Sink interface {
	Play(s beep.Streamer)
}

// Player turns cues into streams for a sink.
type Player struct {
	mu     sync.Mutex
	sink   Sink
	rate   beep.SampleRate
	volume float64
	muted  bool
}

// NewPlayer creates a player. A nil sink makes every trigger a no-op.
func NewPlayer(sink Sink, rate beep.SampleRate, volume float64) *Player {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Player{sink: sink, rate: rate, volume: volume}
}

// Trigger plays c unless the player is muted.
func (p *Player) Trigger(c Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sink == nil || p.muted {
		return
	}
	p.sink.Play(Stream(c, p.rate, p.volume))
}

// SetMuted silences or restores the player.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether triggers are dropped.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}
