// snake-arena is a terminal snake arena: one player snake against a swarm of
// enemy snakes that steer toward the food.
//
// Usage:
//
//	snake-arena                  - Start the menu
//	snake-arena list             - List arena modes
//	snake-arena play [mode]      - Play a mode directly
//	snake-arena scores [mode]    - Show high scores for a mode
//	snake-arena serve            - Start SSH server for remote play
//	snake-arena web              - Start the leaderboard HTTP API
//	snake-arena sounds [dir]     - Export the sound cues as WAV files
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.snake-arena/scores.db)
//	--log-level <level>   - debug, info, warn, error
//	--config <path>       - Custom arena config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--model <path>        - Digit model weights for the bonus score
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/games/arena"
	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/scoring"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagModel      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake-arena",
	Short: "Snake Arena - outlast the swarm in your terminal",
	Long: `Snake Arena is a terminal snake game. Your snake shares the board with
enemy snakes that hunt the same food; leave the arena or touch another
snake and the run is over.

Running without a command opens the menu.

Available commands:
  list     - Show the arena modes
  play     - Play a mode directly
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Serve the leaderboard over HTTP
  sounds   - Export sound cues as WAV files

Examples:
  snake-arena
  snake-arena play --difficulty hard
  snake-arena play arena_solo --sound
  snake-arena serve --ssh :2222
  snake-arena web --http :8080`,
	PersistentPreRunE: validateGlobalFlags,
	Run:               runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.snake-arena/scores.db", "Path to scores database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagModel, "model", "", "Path to digit model weights (enables the bonus score)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(soundsCmd)
}

func validateGlobalFlags(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if !slices.Contains(tui.Difficulties, flagDifficulty) {
		return fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	return nil
}

// newLogger builds the process logger. Interactive commands own the terminal,
// so they log to ~/.snake-arena/arena.log instead of stderr.
func newLogger(prefix string, interactive bool) *log.Logger {
	level, _ := log.ParseLevel(flagLogLevel)

	var out io.Writer = os.Stderr
	if interactive {
		out = io.Discard
		if f, err := openLogFile(); err == nil {
			out = f
		}
	}

	return log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".snake-arena")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "arena.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// configureArena pushes the global flags into the arena modes before any
// instance is created.
func configureArena(logger *log.Logger) error {
	arena.SetConfigPath(flagConfig)
	arena.SetDifficultyPreset(flagDifficulty)
	arena.SetLogger(logger)

	if flagModel == "" {
		return nil
	}
	model, err := scoring.LoadDigitModel(flagModel)
	if err != nil {
		return err
	}
	scorer, err := scoring.NewDigitScorer(model)
	if err != nil {
		return err
	}
	arena.SetScorer(scorer)
	logger.Info("bonus scoring enabled", "model", flagModel)
	return nil
}

func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
