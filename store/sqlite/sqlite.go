/*
Package sqlite provides SQLite-backed persistence for named schedules.

PURPOSE:
  A schedule is an offset definition plus range bounds, saved under a name
  so clients can re-expand it on demand. The offset definition is stored as
  its JSON form; the engine's own types never touch the database.

KEY TABLE:
  schedules:  id, name, definition (JSON), start_date, end_date, periods,
              created_at

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL the database-level
  concurrency control would handle this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers do not
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/schedules.db")   // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - factory package: the stored definition format
  - api package: HTTP surface over this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/schedule-engine/factory"
)

// ErrScheduleNotFound is returned when a referenced schedule doesn't exist.
var ErrScheduleNotFound = errors.New("schedule not found")

// Schedule is a named offset definition with optional range bounds.
type Schedule struct {
	ID         string
	Name       string
	Definition factory.OffsetJSON
	Start      *time.Time
	End        *time.Time
	Periods    int
	CreatedAt  time.Time
}

// Store persists schedules in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schedules (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		definition TEXT NOT NULL,
		start_date TEXT,
		end_date   TEXT,
		periods    INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_schedules_name ON schedules(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateSchedule persists a schedule, assigning an ID when none is given.
func (s *Store) CreateSchedule(ctx context.Context, sched Schedule) (Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sched.ID == "" {
		sched.ID = uuid.NewString()
	}
	if sched.CreatedAt.IsZero() {
		sched.CreatedAt = time.Now().UTC()
	}

	def, err := json.Marshal(sched.Definition)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to encode definition: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedules (id, name, definition, start_date, end_date, periods, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sched.ID, sched.Name, string(def),
		timeToCol(sched.Start), timeToCol(sched.End),
		sched.Periods, sched.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to insert schedule: %w", err)
	}
	return sched, nil
}

// GetSchedule loads a schedule by ID.
func (s *Store) GetSchedule(ctx context.Context, id string) (Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, definition, start_date, end_date, periods, created_at
		FROM schedules WHERE id = ?`, id)
	sched, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Schedule{}, ErrScheduleNotFound
	}
	return sched, err
}

// ListSchedules returns all schedules ordered by creation time.
func (s *Store) ListSchedules(ctx context.Context) ([]Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, definition, start_date, end_date, periods, created_at
		FROM schedules ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var out []Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sched)
	}
	return out, rows.Err()
}

// DeleteSchedule removes a schedule by ID.
func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (Schedule, error) {
	var (
		sched      Schedule
		def        string
		start, end sql.NullString
		createdAt  string
	)
	if err := row.Scan(&sched.ID, &sched.Name, &def, &start, &end, &sched.Periods, &createdAt); err != nil {
		return Schedule{}, err
	}

	if err := json.Unmarshal([]byte(def), &sched.Definition); err != nil {
		return Schedule{}, fmt.Errorf("corrupt schedule definition: %w", err)
	}

	var err error
	if sched.Start, err = colToTime(start); err != nil {
		return Schedule{}, err
	}
	if sched.End, err = colToTime(end); err != nil {
		return Schedule{}, err
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Schedule{}, fmt.Errorf("corrupt created_at: %w", err)
	}
	sched.CreatedAt = created
	return sched, nil
}

func timeToCol(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func colToTime(col sql.NullString) (*time.Time, error) {
	if !col.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, col.String)
	if err != nil {
		return nil, fmt.Errorf("corrupt date column: %w", err)
	}
	return &t, nil
}
