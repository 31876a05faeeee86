// Package history implements the optional invocation-history store.
//
// It records every dispatched tool call in a SQLite database so past runs
// can be queried from the task_history tool — a structured index over the
// same events the append-only audit log captures. History is an independent
// subsystem: if it fails to initialize, the workflow tools keep working and
// the server logs a warning.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DBFile is the database filename inside the data directory.
const DBFile = "history.db"

// Config holds history store configuration.
type Config struct {
	// DataDir is where history.db lives. Created if missing.
	DataDir string
}

// Session represents one server run. Every invocation recorded by a
// process belongs to the session it opened at startup.
type Session struct {
	ID        string `json:"id"`
	WorkDir   string `json:"work_dir"`
	StartedAt string `json:"started_at"`
}

// Invocation is one recorded tool call.
type Invocation struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Tool      string `json:"tool"`
	TaskID    string `json:"task_id"`
	Arguments string `json:"arguments"`
	Result    string `json:"result"`
	OK        bool   `json:"ok"`
	CreatedAt string `json:"created_at"`
}

// Stats holds aggregate history statistics.
type Stats struct {
	TotalSessions    int `json:"total_sessions"`
	TotalInvocations int `json:"total_invocations"`
	TotalFailures    int `json:"total_failures"`
}

// Store is the invocation history engine backed by SQLite.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the history database and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(cfg.DataDir, DBFile))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			work_dir   TEXT NOT NULL,
			started_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS invocations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT    NOT NULL,
			tool       TEXT    NOT NULL,
			task_id    TEXT    NOT NULL,
			arguments  TEXT    NOT NULL,
			result     TEXT    NOT NULL,
			ok         INTEGER NOT NULL DEFAULT 1,
			created_at TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		);

		CREATE INDEX IF NOT EXISTS idx_inv_session ON invocations(session_id);
		CREATE INDEX IF NOT EXISTS idx_inv_task    ON invocations(task_id);
		CREATE INDEX IF NOT EXISTS idx_inv_created ON invocations(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// StartSession registers a new server session and returns its ID.
func (s *Store) StartSession(workDir string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, work_dir) VALUES (?, ?)`,
		id, workDir,
	)
	if err != nil {
		return "", fmt.Errorf("history: start session: %w", err)
	}
	return id, nil
}

// RecordInvocation stores one completed tool call. CreatedAt defaults to
// now (UTC) when empty.
func (s *Store) RecordInvocation(inv Invocation) error {
	createdAt := inv.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`INSERT INTO invocations (session_id, tool, task_id, arguments, result, ok, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.SessionID, inv.Tool, inv.TaskID, inv.Arguments, inv.Result, boolToInt(inv.OK), createdAt,
	)
	if err != nil {
		return fmt.Errorf("history: record invocation: %w", err)
	}
	return nil
}

// RecentInvocations returns the most recent invocations, newest first.
// With a non-empty taskID the result is filtered to that task.
func (s *Store) RecentInvocations(taskID string, limit int) ([]Invocation, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, session_id, tool, task_id, arguments, result, ok, created_at
		FROM invocations
		WHERE 1=1
	`
	args := []any{}
	if taskID != "" {
		query += " AND task_id = ?"
		args = append(args, taskID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Invocation
	for rows.Next() {
		var inv Invocation
		var ok int
		if err := rows.Scan(&inv.ID, &inv.SessionID, &inv.Tool, &inv.TaskID,
			&inv.Arguments, &inv.Result, &ok, &inv.CreatedAt); err != nil {
			return nil, err
		}
		inv.OK = ok != 0
		results = append(results, inv)
	}
	return results, rows.Err()
}

// GetStats returns aggregate counts across all sessions.
func (s *Store) GetStats() (*Stats, error) {
	var st Stats
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&st.TotalSessions); err != nil {
		return nil, fmt.Errorf("history: counting sessions: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM invocations`).Scan(&st.TotalInvocations); err != nil {
		return nil, fmt.Errorf("history: counting invocations: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM invocations WHERE ok = 0`).Scan(&st.TotalFailures); err != nil {
		return nil, fmt.Errorf("history: counting failures: %w", err)
	}
	return &st, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
