// Package transcript records play sessions to a SQLite database: one
// row per session plus every input line and the output it produced, for
// replay and debugging of adventure databases.
package transcript

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	adventure INTEGER NOT NULL,
	version   INTEGER NOT NULL,
	started   TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS turns (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	session INTEGER NOT NULL REFERENCES sessions(id),
	at      TIMESTAMP NOT NULL,
	input   TEXT NOT NULL,
	output  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS turns_session ON turns(session);
`

// Recorder appends session transcripts to a SQLite database.
type Recorder struct {
	db      *sql.DB
	mu      sync.Mutex
	session int64
}

// Open opens or creates the transcript database, sets WAL mode and
// ensures the schema exists.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("transcript: open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: setting WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: create schema: %w", err)
	}
	return &Recorder{db: db}, nil
}

// Close closes the underlying database.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// BeginSession opens a new session row for the given adventure and
// makes it the target of subsequent Record calls.
func (r *Recorder) BeginSession(adventure, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.db.Exec(
		"INSERT INTO sessions (adventure, version, started) VALUES (?, ?, ?)",
		adventure, version, time.Now())
	if err != nil {
		return fmt.Errorf("transcript: begin session: %w", err)
	}
	r.session, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("transcript: begin session: %w", err)
	}
	return nil
}

// Record appends one turn to the current session.
func (r *Recorder) Record(input, output string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == 0 {
		return fmt.Errorf("transcript: no session started")
	}
	_, err := r.db.Exec(
		"INSERT INTO turns (session, at, input, output) VALUES (?, ?, ?, ?)",
		r.session, time.Now(), input, output)
	if err != nil {
		return fmt.Errorf("transcript: record turn: %w", err)
	}
	return nil
}

// Turn is one recorded input/output pair.
type Turn struct {
	At     time.Time
	Input  string
	Output string
}

// SessionTurns returns the recorded turns of a session in order.
func (r *Recorder) SessionTurns(session int64) ([]Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.db.Query(
		"SELECT at, input, output FROM turns WHERE session = ? ORDER BY id", session)
	if err != nil {
		return nil, fmt.Errorf("transcript: query turns: %w", err)
	}
	defer rows.Close()

	var out []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.At, &t.Input, &t.Output); err != nil {
			return nil, fmt.Errorf("transcript: scan turn: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CurrentSession returns the id of the session opened by BeginSession,
// 0 when none is active.
func (r *Recorder) CurrentSession() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}
