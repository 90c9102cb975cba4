// Package playback sends audio cues to the system speaker.
package playback

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Speaker mixes cues into the default output device.
type Speaker struct {
	mixer *beep.Mixer
}

// Open initialises the output device at rate with a 100ms buffer.
func Open(rate beep.SampleRate) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("playback: init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play adds st to the running mix.
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Stop drops everything queued on the device.
func (s *Speaker) Stop() {
	speaker.Clear()
}
