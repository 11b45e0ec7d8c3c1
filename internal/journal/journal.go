// Package journal records container events in a SQLite database that lives
// only as long as the process. The default DSN is an in-memory database; the
// journal is never read back on a later run.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/trainyard/pkg/types"
)

// DefaultDSN opens a private in-memory database.
const DefaultDSN = ":memory:"

// ErrClosed is returned by operations on a closed journal.
var ErrClosed = errors.New("journal is closed")

// Journal implements types.Listener by inserting every event it is notified
// of. Insert failures do not propagate into the container; the first one is
// kept and reported by Err.
type Journal struct {
	mu      sync.Mutex
	db      *sql.DB
	seq     int64
	lastErr error
	now     func() time.Time
}

// Open creates the events table in the database named by dsn. An empty dsn
// uses DefaultDSN.
func Open(dsn string) (*Journal, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// An in-memory database exists per connection; pin the pool to one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createEvents); err != nil {
		db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create index: %w", err)
		}
	}

	var maxSeq sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(seq) FROM events`).Scan(&maxSeq); err != nil {
		db.Close()
		return nil, fmt.Errorf("read sequence: %w", err)
	}

	return &Journal{db: db, seq: maxSeq.Int64, now: time.Now}, nil
}

// Close releases the database. Close is idempotent.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Notify stamps e and records it.
func (j *Journal) Notify(e types.Event) {
	if _, err := j.Record(e); err != nil {
		j.mu.Lock()
		if j.lastErr == nil {
			j.lastErr = err
		}
		j.mu.Unlock()
	}
}

// Err returns the first insert failure seen by Notify, if any.
func (j *Journal) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastErr
}

// Record assigns a UUID v7, the next sequence number and a timestamp to e,
// inserts it, and returns the stamped event.
func (j *Journal) Record(e types.Event) (types.Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return types.Event{}, ErrClosed
	}

	e.ID = newEventID()
	e.Seq = j.seq + 1
	e.CreatedAt = j.now().UTC()

	_, err := j.db.Exec(
		`INSERT INTO events (event_id, seq, kind, structure, subject, detail, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Seq, e.Kind, e.Structure, e.Subject, e.Detail, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.Event{}, fmt.Errorf("insert event %s: %w", e.Kind, err)
	}
	j.seq = e.Seq
	return e, nil
}

// Recent returns up to limit of the newest events, oldest first. A limit of
// zero or less returns every event.
func (j *Journal) Recent(limit int) ([]types.Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil, ErrClosed
	}

	query := `SELECT event_id, seq, kind, structure, subject, detail, created_at FROM events ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []types.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	for i, k := 0, len(events)-1; i < k; i, k = i+1, k-1 {
		events[i], events[k] = events[k], events[i]
	}
	return events, nil
}

// CountByKind returns the number of recorded events per kind.
func (j *Journal) CountByKind() (map[string]int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil, ErrClosed
	}

	rows, err := j.db.Query(`SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

func scanEvent(rows *sql.Rows) (types.Event, error) {
	var e types.Event
	var created string
	if err := rows.Scan(&e.ID, &e.Seq, &e.Kind, &e.Structure, &e.Subject, &e.Detail, &created); err != nil {
		return types.Event{}, fmt.Errorf("scan event: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return types.Event{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	e.CreatedAt = t
	return e, nil
}

// newEventID returns a time-ordered id so event ids sort with seq. A random
// id is used only when the clock source fails.
func newEventID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
