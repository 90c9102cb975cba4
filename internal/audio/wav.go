package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV encodes c as 16-bit stereo WAV.
func WriteWAV(w io.WriteSeeker, c Cue, rate beep.SampleRate, volume float64) error {
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, Stream(c, rate, volume), format); err != nil {
		return fmt.Errorf("audio: encode %s: %w", c, err)
	}
	return nil
}

// ExportAll writes every cue into dir as <name>.wav and returns the paths.
func ExportAll(dir string, rate beep.SampleRate, volume float64) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("audio: create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(Cues))
	for _, c := range Cues {
		path := filepath.Join(dir, c.String()+".wav")
		f, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("audio: create %s: %w", path, err)
		}
		if err := WriteWAV(f, c, rate, volume); err != nil {
			f.Close()
			return paths, err
		}
		if err := f.Close(); err != nil {
			return paths, fmt.Errorf("audio: close %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
