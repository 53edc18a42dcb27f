package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mugrush/internal/modules/drinking/domain"
	drinkingout "mugrush/internal/modules/drinking/port/out"
	apperrors "mugrush/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type SQLiteRunStore struct {
	db *sql.DB
}

func NewSQLiteRunStore(dbPath string) (drinkingout.RunStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteRunStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRunStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  seed INTEGER NOT NULL,
  outcome TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  mugs INTEGER NOT NULL,
  chugs INTEGER NOT NULL,
  attempts INTEGER NOT NULL,
  misses INTEGER NOT NULL,
  staggers INTEGER NOT NULL,
  wobbles_passed INTEGER NOT NULL,
  wobbles_failed INTEGER NOT NULL,
  best_streak INTEGER NOT NULL,
  min_time_limit REAL NOT NULL,
  game_seconds REAL NOT NULL,
  error TEXT,
  journal_path TEXT
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs(started_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	return nil
}

func (s *SQLiteRunStore) Save(ctx context.Context, run domain.Run) error {
	const stmt = `
INSERT INTO runs (id, seed, outcome, started_at, ended_at, mugs, chugs, attempts, misses, staggers, wobbles_passed, wobbles_failed, best_streak, min_time_limit, game_seconds, error, journal_path)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  outcome=excluded.outcome,
  ended_at=excluded.ended_at,
  mugs=excluded.mugs,
  chugs=excluded.chugs,
  attempts=excluded.attempts,
  misses=excluded.misses,
  staggers=excluded.staggers,
  wobbles_passed=excluded.wobbles_passed,
  wobbles_failed=excluded.wobbles_failed,
  best_streak=excluded.best_streak,
  min_time_limit=excluded.min_time_limit,
  game_seconds=excluded.game_seconds,
  error=excluded.error,
  journal_path=excluded.journal_path;
`
	_, err := s.db.ExecContext(ctx, stmt,
		run.ID,
		run.Seed,
		string(run.Outcome),
		run.StartedAt.UTC().Format(timeLayout),
		run.EndedAt.UTC().Format(timeLayout),
		run.Mugs,
		run.Chugs,
		run.Attempts,
		run.Misses,
		run.Staggers,
		run.WobblesPassed,
		run.WobblesFailed,
		run.BestStreak,
		run.MinTimeLimit,
		run.GameSeconds,
		run.Error,
		run.JournalPath,
	)
	if err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	return nil
}

const selectRuns = `
SELECT id, seed, outcome, started_at, ended_at, mugs, chugs, attempts, misses, staggers, wobbles_passed, wobbles_failed, best_streak, min_time_limit, game_seconds, COALESCE(error, ''), COALESCE(journal_path, '')
FROM runs
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (domain.Run, error) {
	var run domain.Run
	var outcome, startedAt, endedAt string
	if err := row.Scan(
		&run.ID, &run.Seed, &outcome, &startedAt, &endedAt,
		&run.Mugs, &run.Chugs, &run.Attempts, &run.Misses, &run.Staggers,
		&run.WobblesPassed, &run.WobblesFailed, &run.BestStreak,
		&run.MinTimeLimit, &run.GameSeconds, &run.Error, &run.JournalPath,
	); err != nil {
		return domain.Run{}, err
	}
	run.Outcome = domain.Outcome(outcome)
	var err error
	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return domain.Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
		return domain.Run{}, fmt.Errorf("parse ended_at: %w", err)
	}
	return run, nil
}

func (s *SQLiteRunStore) Get(ctx context.Context, id string) (domain.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, selectRuns+"WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Run{}, fmt.Errorf("%w: run %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return domain.Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

func (s *SQLiteRunStore) List(ctx context.Context, limit int) ([]domain.Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRuns+"ORDER BY started_at DESC, id\nLIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
