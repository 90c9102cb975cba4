package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// GameSummary is one entry of /api/games.
type GameSummary struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Stats       *storage.GameStats `json:"stats"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("could not encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorBody{Error: msg})
}

// limit reads the limit query parameter.
// Missing means storage.DefaultLimit; values above MaxLimit are clamped.
func (s *Server) limit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return storage.DefaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return min(n, s.config.MaxLimit), true
}

// clean strips markup from player-supplied names before they leave the server.
func (s *Server) clean(runs []storage.Run) []storage.Run {
	for i := range runs {
		runs[i].Player = s.policy.Sanitize(runs[i].Player)
	}
	return runs
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	all, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("games stats", "error", err)
		s.writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}

	games := registry.List()
	out := make([]GameSummary, 0, len(games))
	for _, g := range games {
		out = append(out, GameSummary{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Stats:       all[g.ID],
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.limit(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	runs, err := s.store.RecentRuns(limit)
	if err != nil {
		s.logger.Error("recent runs", "error", err)
		s.writeError(w, http.StatusInternalServerError, "scores unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, s.clean(nonNil(runs)))
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	game := chi.URLParam(r, "game")
	if !registry.Exists(game) {
		s.writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	limit, ok := s.limit(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	runs, err := s.store.TopScores(game, limit)
	if err != nil {
		s.logger.Error("top scores", "game", game, "error", err)
		s.writeError(w, http.StatusInternalServerError, "scores unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, s.clean(nonNil(runs)))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	game := chi.URLParam(r, "game")
	if !registry.Exists(game) {
		s.writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	stats, err := s.store.GetGameStats(game)
	if err != nil {
		s.logger.Error("game stats", "game", game, "error", err)
		s.writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// handleRun accepts either the numeric row ID or the run UUID.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")

	var (
		run *storage.Run
		err error
	)
	if id, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil {
		run, err = s.store.RunByID(id)
	} else if u, parseErr := uuid.Parse(raw); parseErr == nil {
		run, err = s.store.RunByUUID(u.String())
	} else {
		s.writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	if err != nil {
		s.logger.Error("run lookup", "id", raw, "error", err)
		s.writeError(w, http.StatusInternalServerError, "run unavailable")
		return
	}
	if run == nil {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	run.Player = s.policy.Sanitize(run.Player)
	s.writeJSON(w, http.StatusOK, run)
}

func nonNil(runs []storage.Run) []storage.Run {
	if runs == nil {
		return []storage.Run{}
	}
	return runs
}
