package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/agentville/core"
)

// SQLiteIndex mirrors placed world events into a SQLite database so replay
// and analysis tooling can query a run without parsing snapshots. It is an
// optional sink: the driver writes to it after applying each action.
type SQLiteIndex struct {
	db *sql.DB
}

// OpenSQLiteIndex opens (or creates) the index database at path.
func OpenSQLiteIndex(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty index db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Single writer; the driver serializes mutation anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS tick_events (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id      TEXT NOT NULL,
  tick        INTEGER NOT NULL,
  agent       TEXT NOT NULL,
  subject     TEXT NOT NULL,
  predicate   TEXT,
  object      TEXT,
  description TEXT,
  x           INTEGER NOT NULL,
  y           INTEGER NOT NULL,
  recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tick_events_run_tick ON tick_events(run_id, tick);
CREATE INDEX IF NOT EXISTS idx_tick_events_subject ON tick_events(subject);`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteIndex{db: db}, nil
}

// RecordEvent appends one placed event for the given run and tick.
func (x *SQLiteIndex) RecordEvent(runID string, tick uint64, agent string, e core.WorldEvent, c core.Coord) error {
	_, err := x.db.Exec(
		`INSERT INTO tick_events (run_id, tick, agent, subject, predicate, object, description, x, y, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, tick, agent, string(e.Subject), e.Predicate, e.Object, e.Description,
		c.X, c.Y, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// EventCount returns the number of recorded events for a run.
func (x *SQLiteIndex) EventCount(runID string) (int, error) {
	var n int
	err := x.db.QueryRow(`SELECT COUNT(*) FROM tick_events WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}

// EventsForTick returns the events recorded at one tick of a run, in
// insertion order.
func (x *SQLiteIndex) EventsForTick(runID string, tick uint64) ([]core.WorldEvent, error) {
	rows, err := x.db.Query(
		`SELECT subject, predicate, object, description FROM tick_events
		 WHERE run_id = ? AND tick = ? ORDER BY id`, runID, tick)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.WorldEvent
	for rows.Next() {
		var subject string
		var e core.WorldEvent
		if err := rows.Scan(&subject, &e.Predicate, &e.Object, &e.Description); err != nil {
			return nil, err
		}
		e.Subject = core.Address(subject)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (x *SQLiteIndex) Close() error { return x.db.Close() }
