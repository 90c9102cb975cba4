package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-arena/internal/audio"
	"github.com/vovakirdan/snake-arena/internal/audio/playback"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/arena"
	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

var (
	flagSound  bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play an arena mode",
	Long: `Start playing the given arena mode (default: arena).

Modes:
  arena        - Enemies spawn from the arena edges until the swarm is full
  arena_solo   - Just you and the food

Controls:
  Arrows/WASD/HJKL - Steer
  Enter/Space      - Start (from the menu panel)
  P                - Pause
  M                - Mute
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower snakes, smaller swarm
  normal - The configured pace
  hard   - Faster snakes, larger swarm
  fixed  - No speed-up over the run

Examples:
  snake-arena play
  snake-arena play arena_solo
  snake-arena play --difficulty hard --sound
  snake-arena play --config ./my-arena.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound cues on the default audio device")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 0.6, "Sound cue volume (0-1)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := string(arena.ModeArena)
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'snake-arena list' to see available modes.")
		os.Exit(1)
	}

	logger := newLogger("arena", true)
	if err := setupLocal(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)

	runErr := tui.Run(game, store, runtimeConfig(), playerName(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("arena", true)
	if err := setupLocal(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	runErr := tui.RunSession(store, runtimeConfig(), playerName(), flagDifficulty, logger)
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// setupLocal configures the arena for a session on this terminal,
// including the speaker when --sound is set.
func setupLocal(logger *log.Logger) error {
	if err := configureArena(logger); err != nil {
		return err
	}
	if !flagSound {
		return nil
	}

	spk, err := playback.Open(audio.DefaultSampleRate)
	if err != nil {
		// Sound is optional; the game still works.
		logger.Warn("sound disabled", "error", err)
		return nil
	}
	arena.SetAudio(audio.NewPlayer(spk, audio.DefaultSampleRate, flagVolume))
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. A failure is logged and the game
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
