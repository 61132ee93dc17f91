// Package leaderboard provides a SQLite-backed store of best finished
// games, ranked per draw mode by move count then time.
package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// MaxEntries is the number of entries retained per draw mode.
const MaxEntries = 20

// Entry is one finished game on the board.
type Entry struct {
	Initials    string
	Moves       int
	TimeSeconds int
	DrawMode    int
	CreatedAt   time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	initials TEXT NOT NULL,
	moves INTEGER NOT NULL,
	time_seconds INTEGER NOT NULL,
	draw_mode INTEGER NOT NULL,
	created_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_rank
	ON entries (draw_mode, moves, time_seconds);
`

// Store persists leaderboard entries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if necessary) the leaderboard database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("leaderboard path is required")
	}
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// normalizeInitials uppercases and pads initials to exactly 3 characters.
func normalizeInitials(initials string) string {
	initials = strings.ToUpper(strings.TrimSpace(initials))
	if len(initials) > 3 {
		initials = initials[:3]
	}
	for len(initials) < 3 {
		initials += " "
	}
	return initials
}

// Add records a finished game and returns its 1-based position on the
// board for its draw mode, or -1 if it did not make the top entries.
// Entries beyond the cap are pruned.
func (s *Store) Add(ctx context.Context, e Entry) (int, error) {
	if e.DrawMode != 1 && e.DrawMode != 3 {
		return -1, fmt.Errorf("draw mode must be 1 or 3, got %d", e.DrawMode)
	}
	if e.Moves < 0 || e.TimeSeconds < 0 {
		return -1, fmt.Errorf("moves and time must be non-negative")
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return -1, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO entries (initials, moves, time_seconds, draw_mode, created_at_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		normalizeInitials(e.Initials), e.Moves, e.TimeSeconds, e.DrawMode,
		createdAt.UTC().UnixMilli())
	if err != nil {
		return -1, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return -1, fmt.Errorf("last insert id: %w", err)
	}

	// 1-based rank among this draw mode; earlier entries win ties.
	var position int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) + 1 FROM entries
		 WHERE draw_mode = ?
		   AND (moves < ?
		        OR (moves = ? AND time_seconds < ?)
		        OR (moves = ? AND time_seconds = ? AND id < ?))`,
		e.DrawMode, e.Moves, e.Moves, e.TimeSeconds, e.Moves, e.TimeSeconds, id).
		Scan(&position)
	if err != nil {
		return -1, fmt.Errorf("rank entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM entries WHERE draw_mode = ? AND id NOT IN (
		   SELECT id FROM entries WHERE draw_mode = ?
		   ORDER BY moves, time_seconds, id LIMIT ?)`,
		e.DrawMode, e.DrawMode, MaxEntries)
	if err != nil {
		return -1, fmt.Errorf("prune entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("commit: %w", err)
	}

	if position > MaxEntries {
		return -1, nil
	}
	return position, nil
}

// Top returns up to limit best entries for a draw mode, best first.
func (s *Store) Top(ctx context.Context, drawMode, limit int) ([]Entry, error) {
	if limit <= 0 || limit > MaxEntries {
		limit = MaxEntries
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT initials, moves, time_seconds, draw_mode, created_at_ms
		 FROM entries WHERE draw_mode = ?
		 ORDER BY moves, time_seconds, id LIMIT ?`,
		drawMode, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ms int64
		if err := rows.Scan(&e.Initials, &e.Moves, &e.TimeSeconds, &e.DrawMode, &ms); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Qualifies reports whether a result would make the board without
// recording it.
func (s *Store) Qualifies(ctx context.Context, drawMode, moves, timeSeconds int) (bool, error) {
	var count int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries
		 WHERE draw_mode = ?
		   AND (moves < ? OR (moves = ? AND time_seconds <= ?))`,
		drawMode, moves, moves, timeSeconds).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count better entries: %w", err)
	}
	return count < MaxEntries, nil
}
