package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"taskflow/internal/audit"
	"taskflow/internal/history"
	"taskflow/internal/task"
)

func TestDispatch_WriteInvestigationDefaultContent(t *testing.T) {
	d, store := newTestDispatcher(t)

	result, err := d.Dispatch(context.Background(), "write_investigation",
		map[string]any{"task_id": "t"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if !strings.HasPrefix(result, "Wrote ") {
		t.Errorf("result = %q", result)
	}

	got, err := store.ReadInvestigation("t")
	if err != nil {
		t.Fatal(err)
	}
	if got != DefaultInvestigation {
		t.Errorf("content = %q, want default template %q", got, DefaultInvestigation)
	}
}

func TestDispatch_WriteSolutionPlanDefaultContent(t *testing.T) {
	d, store := newTestDispatcher(t)
	mustDispatch(t, d, "write_investigation", map[string]any{"task_id": "t"})

	mustDispatch(t, d, "write_solution_plan", map[string]any{"task_id": "t"})

	got, err := store.ReadSolutionPlan("t")
	if err != nil {
		t.Fatal(err)
	}
	if got != DefaultSolutionPlan {
		t.Errorf("content = %q, want default template %q", got, DefaultSolutionPlan)
	}
}

func TestDispatch_WriteChecklistDefaultsToEmpty(t *testing.T) {
	d, store := newTestDispatcher(t)
	mustDispatch(t, d, "write_investigation", map[string]any{"task_id": "t"})
	mustDispatch(t, d, "write_solution_plan", map[string]any{"task_id": "t"})

	mustDispatch(t, d, "write_checklist", map[string]any{"task_id": "t"})

	raw, err := store.ReadChecklist("t")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(raw) != "[]" {
		t.Errorf("omitted checklist should persist as [], got: %s", raw)
	}
}

func TestDispatch_MissingTaskID(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), "read_checklist", map[string]any{})
	if !errors.Is(err, ErrBadArguments) {
		t.Fatalf("want ErrBadArguments, got: %v", err)
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), "launch_rockets",
		map[string]any{"task_id": "t"})
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("want ErrUnknownTool, got: %v", err)
	}
	if !strings.Contains(err.Error(), "Unknown tool: launch_rockets") {
		t.Errorf("error = %q", err)
	}
}

func TestDispatch_UnknownToolWithoutArguments(t *testing.T) {
	// The name is checked before any argument, so an unrecognized
	// operation fails as unknown even with an empty argument bag.
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), "launch_rockets", map[string]any{})
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("want ErrUnknownTool, got: %v", err)
	}
}

func TestDispatch_NotesOnlyWhenSupplied(t *testing.T) {
	d, store := newTestDispatcher(t)
	seedChecklist(t, d)
	mustDispatch(t, d, "add_checklist_item",
		map[string]any{"task_id": "t", "task_label": "a"})
	mustDispatch(t, d, "set_checklist_item_status",
		map[string]any{"task_id": "t", "task_label": "a", "status": "in-progress", "notes": "wip"})

	// No notes argument at all: existing notes stay.
	mustDispatch(t, d, "set_checklist_item_status",
		map[string]any{"task_id": "t", "task_label": "a", "status": "done"})

	raw, err := store.ReadChecklist("t")
	if err != nil {
		t.Fatal(err)
	}
	var items []task.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatal(err)
	}
	if items[0].Status != task.StatusDone {
		t.Errorf("status = %s", items[0].Status)
	}
	if items[0].Notes == nil || *items[0].Notes != "wip" {
		t.Errorf("notes = %v, want preserved %q", items[0].Notes, "wip")
	}
}

func TestDispatch_AuditsEveryCall(t *testing.T) {
	dir := t.TempDir()
	store := task.NewFileStore(dir)
	logger := audit.NewLogger(dir)
	d := NewDispatcher(store, logger)

	// One success, one caller failure: both must be logged.
	if _, err := d.Dispatch(context.Background(), "write_investigation",
		map[string]any{"task_id": "t", "content": "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Dispatch(context.Background(), "write_checklist",
		map[string]any{"task_id": "t"}); err == nil {
		t.Fatal("expected precondition failure")
	}

	data, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("reading audit log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d audit lines, want 2:\n%s", len(lines), data)
	}

	var rec audit.Record
	_, jsonPart, _ := strings.Cut(lines[1], " - ")
	if err := json.Unmarshal([]byte(jsonPart), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Tool != "write_checklist" || rec.TaskID != "t" {
		t.Errorf("record = %+v", rec)
	}
	if !strings.Contains(rec.Result, "Cannot write CHECKLIST.json without SOLUTION_PLAN.md") {
		t.Errorf("failure result should carry the error text, got: %q", rec.Result)
	}
}

func TestDispatch_RecordsHistory(t *testing.T) {
	d, _ := newTestDispatcher(t)
	h, err := history.New(history.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	sid, err := h.StartSession("/work")
	if err != nil {
		t.Fatal(err)
	}
	d.SetHistory(h, sid)

	mustDispatch(t, d, "write_investigation", map[string]any{"task_id": "t"})
	if _, err := d.Dispatch(context.Background(), "read_checklist",
		map[string]any{"task_id": "t"}); err == nil {
		t.Fatal("expected not-found failure")
	}

	invs, err := h.RecentInvocations("t", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(invs) != 2 {
		t.Fatalf("got %d invocations, want 2", len(invs))
	}
	if invs[0].Tool != "read_checklist" || invs[0].OK {
		t.Errorf("newest invocation = %+v, want failed read_checklist", invs[0])
	}
	if invs[1].Tool != "write_investigation" || !invs[1].OK {
		t.Errorf("oldest invocation = %+v", invs[1])
	}
}

func TestDispatch_ObserverNotifiedOnWrites(t *testing.T) {
	d, _ := newTestDispatcher(t)

	type written struct{ taskID, filename string }
	var seen []written
	d.SetObserver(func(taskID, filename string) {
		seen = append(seen, written{taskID, filename})
	})

	mustDispatch(t, d, "write_investigation", map[string]any{"task_id": "t"})
	mustDispatch(t, d, "write_solution_plan", map[string]any{"task_id": "t"})
	mustDispatch(t, d, "write_checklist", map[string]any{"task_id": "t"})

	// Reads, granular mutations and failed writes never notify.
	mustDispatch(t, d, "read_investigation", map[string]any{"task_id": "t"})
	mustDispatch(t, d, "add_checklist_item", map[string]any{"task_id": "t", "task_label": "a"})
	if _, err := d.Dispatch(context.Background(), "write_solution_plan",
		map[string]any{"task_id": "other"}); err == nil {
		t.Fatal("expected precondition failure")
	}

	want := []written{
		{"t", task.InvestigationFile},
		{"t", task.SolutionPlanFile},
		{"t", task.ChecklistFile},
	}
	if len(seen) != len(want) {
		t.Fatalf("observer calls = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

// Tool handlers surface caller mistakes as error results, not Go errors.
func TestHandle_CallerErrorsBecomeToolErrors(t *testing.T) {
	d, _ := newTestDispatcher(t)
	tool := NewWriteSolutionPlanTool(d)

	result, err := tool.Handle(context.Background(),
		newRequest(map[string]interface{}{"task_id": "t", "content": "plan"}))
	if err != nil {
		t.Fatalf("caller error must not propagate as Go error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected IsError result")
	}
	if !strings.Contains(getResultText(result), "Cannot write SOLUTION_PLAN.md without INVESTIGATION.md") {
		t.Errorf("text = %q", getResultText(result))
	}
}

func TestHandle_SuccessReturnsText(t *testing.T) {
	d, _ := newTestDispatcher(t)
	tool := NewWriteInvestigationTool(d)

	result, err := tool.Handle(context.Background(),
		newRequest(map[string]interface{}{"task_id": "t", "content": "# Findings\n"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected error result: %s", getResultText(result))
	}
	if !strings.HasPrefix(getResultText(result), "Wrote ") {
		t.Errorf("text = %q", getResultText(result))
	}
}

func TestHandle_InvalidStatusIsToolError(t *testing.T) {
	d, _ := newTestDispatcher(t)
	seedChecklist(t, d)
	tool := NewSetChecklistItemStatusTool(d)

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"task_id": "t", "task_label": "a", "status": "bogus",
	}))
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected IsError result")
	}
	if !strings.Contains(getResultText(result), "Invalid status; must be one of: pending, in-progress, done") {
		t.Errorf("text = %q", getResultText(result))
	}
}

func TestHandle_ReadBackContent(t *testing.T) {
	d, _ := newTestDispatcher(t)
	mustDispatch(t, d, "write_investigation",
		map[string]any{"task_id": "t", "content": "# Deep dive\n"})

	tool := NewReadInvestigationTool(d)
	result, err := tool.Handle(context.Background(),
		newRequest(map[string]interface{}{"task_id": "t"}))
	if err != nil {
		t.Fatal(err)
	}
	if got := getResultText(result); got != "# Deep dive\n" {
		t.Errorf("text = %q", got)
	}
}

// --- helpers ---

func mustDispatch(t *testing.T, d *Dispatcher, tool string, args map[string]any) string {
	t.Helper()
	result, err := d.Dispatch(context.Background(), tool, args)
	if err != nil {
		t.Fatalf("%s failed: %v", tool, err)
	}
	return result
}

func seedChecklist(t *testing.T, d *Dispatcher) {
	t.Helper()
	mustDispatch(t, d, "write_investigation", map[string]any{"task_id": "t"})
	mustDispatch(t, d, "write_solution_plan", map[string]any{"task_id": "t"})
	mustDispatch(t, d, "write_checklist", map[string]any{"task_id": "t"})
}
