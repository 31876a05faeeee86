package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store defines the persistence operations for task artifacts and
// checklists. Abstracted for testability (DIP).
type Store interface {
	WriteInvestigation(taskID, content string) (string, error)
	WriteSolutionPlan(taskID, content string) (string, error)
	WriteChecklist(taskID string, doc any) (string, error)
	ReadInvestigation(taskID string) (string, error)
	ReadSolutionPlan(taskID string) (string, error)
	ReadChecklist(taskID string) (string, error)
	AddItem(taskID, label string) (string, error)
	SetItemStatus(taskID, label, status string, notes *string) (string, error)
	RemoveItem(taskID, label string) (string, error)
}

// FileStore implements Store on the local filesystem, rooted at a working
// directory. Single-writer-at-a-time access per task is assumed; there is
// no locking — concurrent writers on the same task race, last writer wins.
type FileStore struct {
	workDir string
}

// NewFileStore creates a filesystem-backed store rooted at workDir.
func NewFileStore(workDir string) *FileStore {
	return &FileStore{workDir: workDir}
}

// WorkDir returns the configured working directory.
func (fs *FileStore) WorkDir() string {
	return fs.workDir
}

// path resolves one of this store's task documents.
func (fs *FileStore) path(taskID, filename string) string {
	return TaskPath(fs.workDir, taskID, filename)
}

// exists is the workflow-state predicate: an artifact exists iff its file
// does, checked fresh on every call.
func (fs *FileStore) exists(taskID, filename string) bool {
	_, err := os.Stat(fs.path(taskID, filename))
	return err == nil
}

// WriteInvestigation creates or overwrites a task's INVESTIGATION.md.
// This is the first step of the workflow and has no precondition; the task
// directory (including nested parents) is created as needed.
func (fs *FileStore) WriteInvestigation(taskID, content string) (string, error) {
	path := fs.path(taskID, InvestigationFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating task directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", InvestigationFile, err)
	}
	return "Wrote " + path, nil
}

// WriteSolutionPlan creates or overwrites a task's SOLUTION_PLAN.md.
// The investigation must already exist. The directory is not created here —
// it is guaranteed by the investigation step.
func (fs *FileStore) WriteSolutionPlan(taskID, content string) (string, error) {
	if !fs.exists(taskID, InvestigationFile) {
		return "", fmt.Errorf("%w: Cannot write %s without %s",
			ErrPrecondition, SolutionPlanFile, InvestigationFile)
	}
	path := fs.path(taskID, SolutionPlanFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", SolutionPlanFile, err)
	}
	return "Wrote " + path, nil
}

// WriteChecklist fully replaces a task's CHECKLIST.json with the given
// decoded document. The solution plan must already exist, and the document
// must pass structural validation — nothing is written on a violation.
// Duplicate labels are accepted here; only AddItem rejects them.
func (fs *FileStore) WriteChecklist(taskID string, doc any) (string, error) {
	if !fs.exists(taskID, SolutionPlanFile) {
		return "", fmt.Errorf("%w: Cannot write %s without %s",
			ErrPrecondition, ChecklistFile, SolutionPlanFile)
	}
	return fs.saveChecklist(taskID, doc, "Wrote ")
}

// ReadInvestigation returns the raw content of INVESTIGATION.md.
func (fs *FileStore) ReadInvestigation(taskID string) (string, error) {
	return fs.readArtifact(taskID, InvestigationFile)
}

// ReadSolutionPlan returns the raw content of SOLUTION_PLAN.md.
func (fs *FileStore) ReadSolutionPlan(taskID string) (string, error) {
	return fs.readArtifact(taskID, SolutionPlanFile)
}

// ReadChecklist returns the serialized JSON text of CHECKLIST.json.
func (fs *FileStore) ReadChecklist(taskID string) (string, error) {
	return fs.readArtifact(taskID, ChecklistFile)
}

func (fs *FileStore) readArtifact(taskID, filename string) (string, error) {
	data, err := os.ReadFile(fs.path(taskID, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s not found", ErrNotFound, filename)
		}
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return string(data), nil
}

// saveChecklist is the single validate-then-persist path for every
// checklist write, whole-document and granular alike. Validation happens
// before the file is touched — a violation leaves it unchanged.
func (fs *FileStore) saveChecklist(taskID string, doc any, verb string) (string, error) {
	if err := ValidateChecklist(doc); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", ChecklistFile, err)
	}
	path := fs.path(taskID, ChecklistFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", ChecklistFile, err)
	}
	return verb + path, nil
}
