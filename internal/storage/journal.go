// Package storage provides the SQLite diagnostics journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/celebration/internal/diag"
)

// DefaultPath is where the journal lives unless --db says otherwise.
const DefaultPath = "~/.celebration/journal.db"

const timeLayout = "2006-01-02 15:04:05.000"

// Journal records session lifecycle events. It never stores scores.
// Safe for concurrent use; every connection's session writes to the same
// journal.
type Journal struct {
	db *sql.DB

	writeMu sync.Mutex // Serializes inserts and deletes

	mu     sync.Mutex
	logger *log.Logger
}

// EventEntry is a single journal row.
type EventEntry struct {
	ID        int64
	SessionID string
	Kind      diag.Kind
	State     string
	Message   string
	Detail    string
	CreatedAt time.Time
}

// Open creates or opens a journal at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Journal, error) {
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

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS session_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			state TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events(session_id);
		CREATE INDEX IF NOT EXISTS idx_session_events_kind ON session_events(kind);
	`

	_, err := j.db.Exec(schema)
	return err
}

// SetLogger sets where failed writes from Record are reported.
func (j *Journal) SetLogger(logger *log.Logger) {
	j.mu.Lock()
	j.logger = logger
	j.mu.Unlock()
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Save appends an event and returns its row ID.
func (j *Journal) Save(evt diag.Event) (int64, error) {
	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}

	j.writeMu.Lock()
	defer j.writeMu.Unlock()

	result, err := j.db.Exec(
		`INSERT INTO session_events (session_id, kind, state, message, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		evt.SessionID, string(evt.Kind), evt.State, evt.Message, evt.Detail,
		at.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Record implements diag.Recorder. Failures are logged and otherwise
// ignored so a broken journal never affects play.
func (j *Journal) Record(evt diag.Event) {
	if _, err := j.Save(evt); err != nil {
		j.mu.Lock()
		logger := j.logger
		j.mu.Unlock()
		if logger != nil {
			logger.Warn("journal write failed", "session", evt.SessionID, "kind", evt.Kind, "err", err)
		}
	}
}

var _ diag.Recorder = (*Journal)(nil)

// RecentEvents returns the newest events first.
func (j *Journal) RecentEvents(limit int) ([]EventEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(
		`SELECT id, session_id, kind, state, message, detail, created_at
		 FROM session_events
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// SessionEvents returns every event of one session in the order recorded.
func (j *Journal) SessionEvents(sessionID string) ([]EventEntry, error) {
	rows, err := j.db.Query(
		`SELECT id, session_id, kind, state, message, detail, created_at
		 FROM session_events
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]EventEntry, error) {
	var entries []EventEntry
	for rows.Next() {
		var e EventEntry
		var kind string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.State, &e.Message, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Kind = diag.Kind(kind)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// EventCounts returns how many events of each kind have been recorded.
func (j *Journal) EventCounts() (map[diag.Kind]int, error) {
	rows, err := j.db.Query(`SELECT kind, COUNT(*) FROM session_events GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[diag.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan count row: %w", err)
		}
		counts[diag.Kind(kind)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}

// Clear deletes every recorded event.
func (j *Journal) Clear() error {
	j.writeMu.Lock()
	defer j.writeMu.Unlock()

	if _, err := j.db.Exec("DELETE FROM session_events"); err != nil {
		return fmt.Errorf("storage: cannot clear events: %w", err)
	}
	return nil
}
