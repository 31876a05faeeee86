// Package tools implements the MCP tool surface for the task workflow.
//
// Each tool is a thin struct with a Definition()/Handle() pair; all of them
// delegate to a shared Dispatcher that owns the operation table, argument
// extraction and defaults, and the post-call audit reporting. Caller
// mistakes (workflow-order violations, schema violations, unknown labels)
// surface as tool error results; storage faults propagate as errors.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"taskflow/internal/audit"
	"taskflow/internal/history"
	"taskflow/internal/task"
)

// Default templates for the free-form artifacts, applied when the caller
// omits content.
const (
	DefaultInvestigation = "# Investigation\n\n"
	DefaultSolutionPlan  = "# Solution Plan\n\n"
)

// ErrUnknownTool reports a dispatch with an unrecognized operation name.
var ErrUnknownTool = errors.New("unknown tool")

// ErrBadArguments reports a missing or wrongly-typed required argument.
var ErrBadArguments = errors.New("bad arguments")

// Dispatcher routes an operation name plus argument bag to the matching
// store call and reports every completed call to the audit log (and, when
// enabled, the history store). Reporting happens after the operation
// finishes — success or failure — and before the result is returned;
// reporting failures go to stderr and never change the call's outcome.
type Dispatcher struct {
	store     task.Store
	audit     *audit.Logger
	history   *history.Store
	sessionID string
	observer  func(taskID, filename string)
}

// NewDispatcher creates a Dispatcher over the given store and audit sink.
func NewDispatcher(store task.Store, auditLog *audit.Logger) *Dispatcher {
	return &Dispatcher{store: store, audit: auditLog}
}

// SetHistory attaches the optional invocation-history store. Nil-safe by
// omission: without it, dispatching only writes the audit log.
func (d *Dispatcher) SetHistory(h *history.Store, sessionID string) {
	d.history = h
	d.sessionID = sessionID
}

// SetObserver registers a callback invoked after every successful
// artifact-creating write, with the task ID and the filename written.
// The server uses it to keep the concrete resource list in step with
// the documents on disk.
func (d *Dispatcher) SetObserver(fn func(taskID, filename string)) {
	d.observer = fn
}

// Dispatch runs one named operation and reports it.
func (d *Dispatcher) Dispatch(ctx context.Context, tool string, args map[string]any) (string, error) {
	result, err := d.run(tool, args)

	outcome := result
	if err != nil {
		outcome = err.Error()
	}
	d.report(tool, args, outcome, err == nil)

	if err == nil && d.observer != nil {
		if filename, ok := writtenArtifact(tool); ok {
			if taskID, ok := args["task_id"].(string); ok {
				d.observer(taskID, filename)
			}
		}
	}

	return result, err
}

// writtenArtifact maps an artifact-creating tool to the filename it
// writes. Granular checklist mutations update a file that already
// exists, so they are not included.
func writtenArtifact(tool string) (string, bool) {
	switch tool {
	case "write_investigation":
		return task.InvestigationFile, true
	case "write_solution_plan":
		return task.SolutionPlanFile, true
	case "write_checklist":
		return task.ChecklistFile, true
	}
	return "", false
}

// run is the fixed operation table. The tool name is checked before any
// argument is read, so an unrecognized operation fails as such even with
// an empty argument bag.
func (d *Dispatcher) run(tool string, args map[string]any) (string, error) {
	if !knownTools[tool] {
		return "", fmt.Errorf("%w: Unknown tool: %s", ErrUnknownTool, tool)
	}

	taskID, err := requiredString(args, "task_id")
	if err != nil {
		return "", err
	}

	switch tool {
	case "write_investigation":
		return d.store.WriteInvestigation(taskID, optionalString(args, "content", DefaultInvestigation))

	case "write_solution_plan":
		return d.store.WriteSolutionPlan(taskID, optionalString(args, "content", DefaultSolutionPlan))

	case "write_checklist":
		doc, ok := args["checklist"]
		if !ok || doc == nil {
			doc = []any{}
		}
		return d.store.WriteChecklist(taskID, doc)

	case "read_investigation":
		return d.store.ReadInvestigation(taskID)

	case "read_solution_plan":
		return d.store.ReadSolutionPlan(taskID)

	case "read_checklist":
		return d.store.ReadChecklist(taskID)

	case "add_checklist_item":
		label, err := requiredString(args, "task_label")
		if err != nil {
			return "", err
		}
		return d.store.AddItem(taskID, label)

	case "set_checklist_item_status":
		label, err := requiredString(args, "task_label")
		if err != nil {
			return "", err
		}
		status, err := requiredString(args, "status")
		if err != nil {
			return "", err
		}
		// Notes are tri-state: only an explicitly supplied string
		// overwrites the item's notes.
		var notes *string
		if v, ok := args["notes"].(string); ok {
			notes = &v
		}
		return d.store.SetItemStatus(taskID, label, status, notes)

	case "remove_checklist_item":
		label, err := requiredString(args, "task_label")
		if err != nil {
			return "", err
		}
		return d.store.RemoveItem(taskID, label)
	}

	// Unreachable: knownTools gates every name the switch handles.
	return "", fmt.Errorf("%w: Unknown tool: %s", ErrUnknownTool, tool)
}

// knownTools is the set of operation names run dispatches on.
var knownTools = map[string]bool{
	"write_investigation":       true,
	"write_solution_plan":       true,
	"write_checklist":           true,
	"read_investigation":        true,
	"read_solution_plan":        true,
	"read_checklist":            true,
	"add_checklist_item":        true,
	"set_checklist_item_status": true,
	"remove_checklist_item":     true,
}

// report writes the audit line and the history row for a completed call.
func (d *Dispatcher) report(tool string, args map[string]any, outcome string, ok bool) {
	taskID, _ := args["task_id"].(string)

	rec := audit.Record{
		Tool:      tool,
		TaskID:    taskID,
		Arguments: args,
		Result:    outcome,
	}
	if err := d.audit.Log(rec); err != nil {
		log.Printf("WARNING: audit log write failed: %v", err)
	}

	if d.history == nil {
		return
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		log.Printf("WARNING: history arguments encode failed: %v", err)
		return
	}
	inv := history.Invocation{
		SessionID: d.sessionID,
		Tool:      tool,
		TaskID:    taskID,
		Arguments: string(argsJSON),
		Result:    outcome,
		OK:        ok,
	}
	if err := d.history.RecordInvocation(inv); err != nil {
		log.Printf("WARNING: history record failed: %v", err)
	}
}

func requiredString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: missing required argument %q", ErrBadArguments, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %q must be a string", ErrBadArguments, key)
	}
	return s, nil
}

func optionalString(args map[string]any, key, defaultVal string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return defaultVal
}
