package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/snake-arena/internal/storage"
)

const (
	liveBatch    = 50
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// LiveMessage is pushed to feed subscribers for every saved run.
type LiveMessage struct {
	Type string      `json:"type"`
	Run  storage.Run `json:"run"`
}

// handleLive streams runs saved after the connection opened, or after the
// ID given in the after query parameter.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	var last int64
	if raw := r.URL.Query().Get("after"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid after")
			return
		}
		last = n
	} else {
		id, err := s.store.LastRunID()
		if err != nil {
			s.logger.Error("live feed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "feed unavailable")
			return
		}
		last = id
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	remote := r.RemoteAddr
	s.logger.Info("live subscriber connected", "remote", remote, "after", last)

	// The feed is push-only; reading detects the peer going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug("live read error", "remote", remote, "error", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		runs, err := s.store.RunsAfter(last, liveBatch)
		if err != nil {
			s.logger.Error("live feed poll", "error", err)
			return
		}
		for _, run := range runs {
			run.Player = s.policy.Sanitize(run.Player)
			data, err := json.Marshal(LiveMessage{Type: "run", Run: run})
			if err != nil {
				s.logger.Warn("could not encode run", "id", run.ID, "error", err)
				continue
			}
			ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Debug("live write failed", "remote", remote, "error", err)
				return
			}
			last = run.ID
		}

		select {
		case <-gone:
			s.logger.Info("live subscriber disconnected", "remote", remote)
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
