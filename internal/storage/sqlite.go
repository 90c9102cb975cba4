// Package storage persists finished arena runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultLimit is used when a caller asks for a non-positive number of rows.
const DefaultLimit = 10

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sqlx.DB
}

// Timestamp stores a time as Unix milliseconds.
type Timestamp struct {
	time.Time
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case int64:
		t.Time = time.UnixMilli(v)
	default:
		return fmt.Errorf("storage: cannot scan %T into timestamp", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return time.Now().UnixMilli(), nil
	}
	return t.UnixMilli(), nil
}

// Run is one finished session.
type Run struct {
	ID         int64     `db:"id" json:"id"`
	UUID       string    `db:"uuid" json:"uuid"`
	GameID     string    `db:"game_id" json:"game"`
	Player     string    `db:"player" json:"player"`
	Score      int       `db:"score" json:"score"`
	Food       int       `db:"food_eaten" json:"food"`
	Bonus      int       `db:"bonus" json:"bonus"`
	Ticks      int       `db:"ticks" json:"ticks"`
	DurationMS int64     `db:"duration_ms" json:"duration_ms"`
	CreatedAt  Timestamp `db:"created_at" json:"created_at"`
}

// Duration returns the session length.
func (r Run) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}
	// SSH sessions write concurrently; one connection serialises them.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uuid TEXT NOT NULL UNIQUE,
		game_id TEXT NOT NULL,
		player TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL,
		food_eaten INTEGER NOT NULL DEFAULT 0,
		bonus INTEGER NOT NULL DEFAULT 0,
		ticks INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished session and returns its ID.
// A zero CreatedAt is stamped with the current time and a missing UUID is generated.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.GameID == "" {
		return 0, errors.New("storage: run without game id")
	}
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	result, err := s.db.NamedExec(
		`INSERT INTO runs (uuid, game_id, player, score, food_eaten, bonus, ticks, duration_ms, created_at)
		 VALUES (:uuid, :game_id, :player, :score, :food_eaten, :bonus, :ticks, :duration_ms, :created_at)`,
		r,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveScore records a bare score for the given game.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return s.SaveRun(Run{GameID: gameID, Score: score})
}

const runColumns = `id, uuid, game_id, player, score, food_eaten, bonus, ticks, duration_ms, created_at`

// TopScores retrieves the top N runs for the given game, best first.
// Equal scores keep insertion order.
func (s *Store) TopScores(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var runs []Run
	err := s.db.Select(&runs,
		`SELECT `+runColumns+` FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return runs, nil
}

// RecentRuns retrieves the most recent runs across all games.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var runs []Run
	err := s.db.Select(&runs,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent runs: %w", err)
	}
	return runs, nil
}

// RunsAfter returns up to limit runs with an ID above afterID, oldest first.
func (s *Store) RunsAfter(afterID int64, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var runs []Run
	err := s.db.Select(&runs,
		`SELECT `+runColumns+` FROM runs WHERE id > ? ORDER BY id ASC LIMIT ?`,
		afterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query new runs: %w", err)
	}
	return runs, nil
}

// LastRunID returns the highest run ID, or 0 for an empty table.
func (s *Store) LastRunID() (int64, error) {
	var id int64
	if err := s.db.Get(&id, `SELECT COALESCE(MAX(id), 0) FROM runs`); err != nil {
		return 0, fmt.Errorf("storage: cannot query last run: %w", err)
	}
	return id, nil
}

// RunByID returns a single run, or nil when it does not exist.
func (s *Store) RunByID(id int64) (*Run, error) {
	return s.getRun(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
}

// RunByUUID returns a single run by its public identifier, or nil.
func (s *Store) RunByUUID(id string) (*Run, error) {
	return s.getRun(`SELECT `+runColumns+` FROM runs WHERE uuid = ?`, id)
}

func (s *Store) getRun(query string, arg any) (*Run, error) {
	var r Run
	err := s.db.Get(&r, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	if err := s.db.Get(&score, "SELECT MAX(score) FROM runs WHERE game_id = ?", gameID); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all runs for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string    `db:"game_id" json:"game"`
	GamesCount int       `db:"games_count" json:"games"`
	HighScore  int       `db:"high_score" json:"high_score"`
	AvgScore   float64   `db:"avg_score" json:"avg_score"`
	TotalScore int64     `db:"total_score" json:"total_score"`
	TotalFood  int64     `db:"total_food" json:"total_food"`
	LastPlayed Timestamp `db:"last_played" json:"last_played"`
}

const statsColumns = `COUNT(*) AS games_count,
	COALESCE(MAX(score), 0) AS high_score,
	COALESCE(AVG(score), 0) AS avg_score,
	COALESCE(SUM(score), 0) AS total_score,
	COALESCE(SUM(food_eaten), 0) AS total_food,
	MAX(created_at) AS last_played`

// GetGameStats retrieves aggregated statistics for a specific game.
// A game without runs yields zero values.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{}
	err := s.db.Get(stats, `SELECT ? AS game_id, `+statsColumns+` FROM runs WHERE game_id = ?`, gameID, gameID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	var rows []GameStats
	err := s.db.Select(&rows, `SELECT game_id, `+statsColumns+` FROM runs GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}

	stats := make(map[string]*GameStats, len(rows))
	for i := range rows {
		stats[rows[i].GameID] = &rows[i]
	}
	return stats, nil
}
