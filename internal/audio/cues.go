// Package audio synthesises the short sound cues of an arena session and
// writes them out as WAV files.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
)

// DefaultSampleRate is used when no rate is configured.
const DefaultSampleRate beep.SampleRate = 44100

// Cue is one sound effect.
type Cue int

const (
	CueStart Cue = iota
	CueEat
	CueEnemyDown
	CueGameOver
	CueScore
)

// Cues lists every cue in declaration order.
var Cues = []Cue{CueStart, CueEat, CueEnemyDown, CueGameOver, CueScore}

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueEat:
		return "eat"
	case CueEnemyDown:
		return "enemy-down"
	case CueGameOver:
		return "game-over"
	case CueScore:
		return "score"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}

// Duration returns the length of the cue.
func (c Cue) Duration() time.Duration {
	switch c {
	case CueStart:
		return 160 * time.Millisecond
	case CueEat:
		return 120 * time.Millisecond
	case CueEnemyDown:
		return 90 * time.Millisecond
	case CueGameOver:
		return 540 * time.Millisecond
	case CueScore:
		return 240 * time.Millisecond
	default:
		return 0
	}
}

// Stream builds a fresh streamer for c at the given rate and linear volume.
func Stream(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueStart:
		s = beep.Seq(
			tone(523.25, 80*time.Millisecond, WaveSine, rate),
			tone(783.99, 80*time.Millisecond, WaveSine, rate),
		)
	case CueEat:
		d := c.Duration()
		s = beep.Mix(
			gain(tone(880, d, WaveSine, rate), 0.7),
			gain(tone(1760, d, WaveSine, rate), 0.3),
		)
	case CueEnemyDown:
		s = gain(tone(0, c.Duration(), WaveNoise, rate), 0.5)
	case CueGameOver:
		s = gain(beep.Seq(
			tone(329.63, 180*time.Millisecond, WaveSaw, rate),
			tone(220, 180*time.Millisecond, WaveSaw, rate),
			tone(164.81, 180*time.Millisecond, WaveSaw, rate),
		), 0.6)
	case CueScore:
		s = gain(beep.Seq(
			tone(659.25, 120*time.Millisecond, WaveSquare, rate),
			tone(987.77, 120*time.Millisecond, WaveSquare, rate),
		), 0.4)
	default:
		s = beep.Silence(0)
	}
	return gain(s, volume)
}
