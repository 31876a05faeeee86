// Package task implements the task workflow engine: artifact files and the
// checklist for each task, gated by workflow-order preconditions.
//
// Every task lives in its own folder under .tasks/ and owns up to three
// documents, created strictly in order:
//
//  1. INVESTIGATION.md — research the problem
//  2. SOLUTION_PLAN.md — plan the approach (requires investigation)
//  3. CHECKLIST.json   — actionable items (requires solution plan)
//
// The filesystem is the source of truth for workflow state: each
// precondition is an existence check on the upstream file, evaluated fresh
// on every call. Deleting an artifact externally re-blocks dependent writes.
package task

import "path/filepath"

const (
	// TasksDir is the root folder for all task directories, relative to
	// the configured working directory.
	TasksDir = ".tasks"

	// InvestigationFile is the first artifact in the workflow.
	InvestigationFile = "INVESTIGATION.md"
	// SolutionPlanFile requires an existing investigation.
	SolutionPlanFile = "SOLUTION_PLAN.md"
	// ChecklistFile requires an existing solution plan.
	ChecklistFile = "CHECKLIST.json"
)

// TasksPath returns the absolute path to the .tasks/ root.
func TasksPath(workDir string) string {
	return filepath.Join(workDir, TasksDir)
}

// TaskPath returns the path to one of a task's documents. The task ID is
// trusted caller input and may contain path separators — nested IDs map to
// nested directories, no normalization is applied.
func TaskPath(workDir, taskID, filename string) string {
	return filepath.Join(workDir, TasksDir, taskID, filename)
}
