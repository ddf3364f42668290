package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunSummary is the outcome of one finished game session.
type RunSummary struct {
	ID         int64
	RunID      string
	GameID     string
	Seed       int64
	Difficulty string
	Score      int
	Delivered  int
	Elapsed    time.Duration
	Stations   int
	Trains     int
	CreatedAt  time.Time
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}

// SaveRun records a finished run. An empty RunID is filled with a new one.
// Returns the stored run ID.
func (s *Store) SaveRun(run RunSummary) (string, error) {
	if run.RunID == "" {
		run.RunID = NewRunID()
	} else if _, err := uuid.Parse(run.RunID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", run.RunID, err)
	}
	if run.Difficulty == "" {
		run.Difficulty = "normal"
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, game_id, seed, difficulty, score, delivered, elapsed_secs, stations, trains)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.GameID,
		run.Seed,
		run.Difficulty,
		run.Score,
		run.Delivered,
		run.Elapsed.Seconds(),
		run.Stations,
		run.Trains,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.RunID, nil
}

// RunByID retrieves a run by its run ID. Returns nil when it does not exist.
func (s *Store) RunByID(runID string) (*RunSummary, error) {
	row := s.db.QueryRow(
		`SELECT id, run_id, game_id, seed, difficulty, score, delivered,
		        elapsed_secs, stations, trains, created_at
		 FROM runs
		 WHERE run_id = ?`,
		runID,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns retrieves the most recent runs of the given game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, seed, difficulty, score, delivered,
		        elapsed_secs, stations, trains, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (RunSummary, error) {
	var run RunSummary
	var elapsed float64
	var createdAt any
	err := r.Scan(
		&run.ID,
		&run.RunID,
		&run.GameID,
		&run.Seed,
		&run.Difficulty,
		&run.Score,
		&run.Delivered,
		&elapsed,
		&run.Stations,
		&run.Trains,
		&createdAt,
	)
	if err != nil {
		return run, err
	}
	run.Elapsed = time.Duration(elapsed * float64(time.Second))
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}
