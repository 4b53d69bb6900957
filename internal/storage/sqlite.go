// Package storage keeps the history of finished breakout runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTime is the layout SQLite's CURRENT_TIMESTAMP produces.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished (or abandoned) breakout session.
type Run struct {
	ID        int64
	RunID     uuid.UUID // Matches the ID of the run's replay file
	GameID    string    // Variant, e.g. "classic" or "daily"
	Player    string
	Seed      uint64
	Score     int64
	Penalties int64
	ComboMax  int64
	Rank      string
	Ticks     int
	Cleared   bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Seeds are stored as text: SQLite integers are signed.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed TEXT NOT NULL,
			score INTEGER NOT NULL,
			penalties INTEGER NOT NULL DEFAULT 0,
			combo_max INTEGER NOT NULL DEFAULT 0,
			rank TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			cleared INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
	`
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

// SaveRun records a run. A zero RunID is replaced with a fresh one.
// Returns the row ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.RunID == uuid.Nil {
		r.RunID = uuid.New()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, game_id, player, seed, score, penalties, combo_max, rank, ticks, cleared)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID.String(), r.GameID, r.Player, fmt.Sprint(r.Seed),
		r.Score, r.Penalties, r.ComboMax, r.Rank, r.Ticks, r.Cleared,
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

const runColumns = `id, run_id, game_id, player, seed, score, penalties, combo_max, rank, ticks, cleared, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		r         Run
		runID     string
		seed      string
		createdAt any
	)
	err := row.Scan(&r.ID, &runID, &r.GameID, &r.Player, &seed,
		&r.Score, &r.Penalties, &r.ComboMax, &r.Rank, &r.Ticks, &r.Cleared, &createdAt)
	if err != nil {
		return Run{}, err
	}

	if r.RunID, err = uuid.Parse(runID); err != nil {
		return Run{}, fmt.Errorf("storage: bad run id %q: %w", runID, err)
	}
	if _, err := fmt.Sscan(seed, &r.Seed); err != nil {
		return Run{}, fmt.Errorf("storage: bad seed %q: %w", seed, err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// TopRuns retrieves the best N runs for the given variant.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunByID retrieves a run by its run ID. It returns nil when no such run
// exists.
func (s *Store) RunByID(id uuid.UUID) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		id.String(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// HighScore returns the highest score for the given variant.
// Returns 0 if no runs exist.
func (s *Store) HighScore(gameID string) (int64, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return score.Int64, nil
}

// ClearRuns deletes all runs for the given variant.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a variant.
type GameStats struct {
	GameID     string
	RunsCount  int
	Cleared    int
	HighScore  int64
	AvgScore   float64
	BestCombo  int64
	LastPlayed time.Time
}

const statsColumns = `COUNT(*), COALESCE(SUM(cleared), 0), COALESCE(MAX(score), 0),
	COALESCE(AVG(score), 0), COALESCE(MAX(combo_max), 0), MAX(created_at)`

// GetGameStats retrieves aggregated statistics for a specific variant.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &stats.Cleared, &stats.HighScore, &stats.AvgScore, &stats.BestCombo, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllGamesStats retrieves statistics for every variant that has runs.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, ` + statsColumns + `
		 FROM runs
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var (
			st         GameStats
			lastPlayed any
		)
		if err := rows.Scan(&st.GameID, &st.RunsCount, &st.Cleared, &st.HighScore, &st.AvgScore, &st.BestCombo, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
