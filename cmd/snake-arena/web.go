package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/storage"
	"github.com/vovakirdan/snake-arena/internal/web"
)

var (
	flagHTTPAddr string
	flagPoll     time.Duration
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the leaderboard over HTTP",
	Long: `Start a read-only JSON API over the scores database.

Endpoints:
  GET /healthz
  GET /api/games
  GET /api/scores?limit=N
  GET /api/scores/{mode}?limit=N
  GET /api/stats/{mode}
  GET /api/runs/{id|uuid}
  GET /api/live?after=ID        (websocket feed of new runs)

Examples:
  snake-arena web
  snake-arena web --http 127.0.0.1:9000 --db ./scores.db`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().DurationVar(&flagPoll, "poll", time.Second, "How often the live feed checks for new runs")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger := newLogger("arena-web", false)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	cfg := web.DefaultConfig()
	cfg.Address = flagHTTPAddr
	cfg.PollInterval = flagPoll

	server, err := web.NewServer(store, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		store.Close()
		os.Exit(1)
	}
}
