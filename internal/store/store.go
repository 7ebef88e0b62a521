// Package store handles SQLite persistence of finished sessions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typexam/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNoResults is returned when a lookup matches no stored result.
var ErrNoResults = errors.New("no stored results")

// Store wraps SQLite access for result data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			user TEXT NOT NULL,
			exercise TEXT NOT NULL,
			mode TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			true_accuracy REAL NOT NULL,
			correct_words INTEGER NOT NULL,
			passed INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_ended_at ON results(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_results_user_exercise ON results(user, exercise);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertResult stores a finished session. A missing SessionID is filled with
// a new UUID. It returns the stored row.
func (s *Store) InsertResult(ctx context.Context, rec model.SessionRecord) (model.StoredResult, error) {
	if rec.SessionID == "" {
		rec.SessionID = uuid.NewString()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (session_id, user, exercise, mode, started_at, ended_at, duration_ms, elapsed_ms, wpm, accuracy, true_accuracy, correct_words, passed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.User,
		rec.Exercise,
		rec.Mode,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.EndedAt.UTC().Format(time.RFC3339Nano),
		rec.Duration.Milliseconds(),
		rec.Result.Elapsed.Milliseconds(),
		rec.Result.WPM,
		rec.Result.Accuracy,
		rec.Result.TrueAccuracy,
		rec.Result.CorrectWords,
		rec.Passed,
	)
	if err != nil {
		return model.StoredResult{}, fmt.Errorf("insert result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.StoredResult{}, fmt.Errorf("insert result: %w", err)
	}
	return model.StoredResult{ID: id, SessionRecord: rec}, nil
}

const selectColumns = `SELECT id, session_id, user, exercise, mode, started_at, ended_at, duration_ms, elapsed_ms,
	wpm, accuracy, true_accuracy, correct_words, passed FROM results`

// ListResults returns stored results matching cfg, oldest first. When
// cfg.Last is positive only the most recent cfg.Last rows are returned.
func (s *Store) ListResults(ctx context.Context, cfg model.HistoryConfig) ([]model.StoredResult, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.User != "" {
		clauses = append(clauses, "user = ?")
		args = append(args, cfg.User)
	}
	if cfg.Exercise != "" {
		clauses = append(clauses, "exercise = ?")
		args = append(args, cfg.Exercise)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`%s WHERE %s ORDER BY ended_at DESC, id DESC`, selectColumns, strings.Join(clauses, " AND "))
	if cfg.Last > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Last)
	}
	results, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

// LatestResult returns the most recent result, optionally for one user.
func (s *Store) LatestResult(ctx context.Context, user string) (model.StoredResult, error) {
	results, err := s.ListResults(ctx, model.HistoryConfig{User: user, Last: 1})
	if err != nil {
		return model.StoredResult{}, err
	}
	if len(results) == 0 {
		return model.StoredResult{}, ErrNoResults
	}
	return results[0], nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]model.StoredResult, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.StoredResult
	for rows.Next() {
		var (
			r                   model.StoredResult
			startedAt, endedAt  string
			durationMs, elapsed int64
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.User, &r.Exercise, &r.Mode, &startedAt, &endedAt,
			&durationMs, &elapsed, &r.Result.WPM, &r.Result.Accuracy, &r.Result.TrueAccuracy,
			&r.Result.CorrectWords, &r.Passed); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.Result.Elapsed = time.Duration(elapsed) * time.Millisecond
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
