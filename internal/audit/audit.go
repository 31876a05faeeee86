// Package audit implements the append-only tool action log.
//
// Every dispatched tool call is recorded as one line in
// .tasks/tool_actions.log under the working directory:
//
//	<timestamp> - <json>
//
// where the JSON object carries the tool name, task ID, timestamp, full
// argument set and outcome text — enough to reconstruct the call. The log
// is a secondary channel: a failed append must never mask or replace the
// underlying operation's own outcome, so callers report append errors on
// stderr and move on.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"taskflow/internal/task"
)

// LogFile is the audit log filename, under the .tasks/ root.
const LogFile = "tool_actions.log"

// Record is one audit entry for a completed tool call. Result holds the
// confirmation text on success and the error text on failure.
type Record struct {
	Tool      string         `json:"tool"`
	TaskID    string         `json:"task_id"`
	Timestamp string         `json:"timestamp"`
	Arguments map[string]any `json:"arguments"`
	Result    string         `json:"result"`
}

// Logger appends audit records to the working directory's tool action log.
type Logger struct {
	workDir string
}

// NewLogger creates an audit logger rooted at workDir. Nothing is created
// until the first append.
func NewLogger(workDir string) *Logger {
	return &Logger{workDir: workDir}
}

// Path returns the absolute path of the audit log file.
func (l *Logger) Path() string {
	return filepath.Join(task.TasksPath(l.workDir), LogFile)
}

// Log appends one record. The .tasks/ directory and the log file are
// created on first write. Records with no timestamp are stamped now (UTC).
func (l *Logger) Log(rec Record) error {
	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling audit record: %w", err)
	}

	if err := os.MkdirAll(task.TasksPath(l.workDir), 0o755); err != nil {
		return fmt.Errorf("creating tasks directory: %w", err)
	}

	f, err := os.OpenFile(l.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s - %s\n", rec.Timestamp, data); err != nil {
		return fmt.Errorf("appending audit record: %w", err)
	}
	return nil
}
