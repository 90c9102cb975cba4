package main

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/audio"
)

var flagSampleRate int

var soundsCmd = &cobra.Command{
	Use:   "sounds [dir]",
	Short: "Export the sound cues as WAV files",
	Long: `Render every sound cue to a WAV file in dir (default: ./sounds).

Examples:
  snake-arena sounds
  snake-arena sounds ./out --volume 1 --rate 22050`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSounds,
}

func init() {
	soundsCmd.Flags().IntVar(&flagSampleRate, "rate", int(audio.DefaultSampleRate), "Sample rate in Hz")
}

func runSounds(_ *cobra.Command, args []string) {
	dir := "sounds"
	if len(args) == 1 {
		dir = args[0]
	}
	if flagSampleRate <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --rate must be positive\n")
		os.Exit(1)
	}

	paths, err := audio.ExportAll(dir, beep.SampleRate(flagSampleRate), flagVolume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting sounds: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}
