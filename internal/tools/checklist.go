package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// WriteChecklistTool handles the write_checklist MCP tool. Final step of
// the workflow — requires an existing solution plan. Fully replaces the
// checklist file after structural validation.
type WriteChecklistTool struct {
	d *Dispatcher
}

// NewWriteChecklistTool creates the tool bound to a dispatcher.
func NewWriteChecklistTool(d *Dispatcher) *WriteChecklistTool {
	return &WriteChecklistTool{d: d}
}

// Definition returns the MCP tool definition for registration.
func (t *WriteChecklistTool) Definition() mcp.Tool {
	return mcp.NewTool("write_checklist",
		mcp.WithDescription(
			"Create or fully replace the checklist for a task. Requires the "+
				"task's solution plan to exist. Each item must be "+
				`{"label": string, "status": "pending"|"in-progress"|"done", "notes"?: string|null}`+
				" — no other keys are allowed.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
		mcp.WithArray("checklist",
			mcp.Description("The checklist items (defaults to an empty list)"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"label":  map[string]any{"type": "string"},
					"status": map[string]any{"enum": []string{"pending", "in-progress", "done"}},
					"notes":  map[string]any{"type": []string{"string", "null"}},
				},
				"required":             []string{"label", "status"},
				"additionalProperties": false,
			}),
		),
	)
}

// Handle processes the write_checklist tool call.
func (t *WriteChecklistTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.d.handle(ctx, "write_checklist", req)
}

// ReadChecklistTool handles the read_checklist MCP tool.
type ReadChecklistTool struct {
	d *Dispatcher
}

// NewReadChecklistTool creates the tool bound to a dispatcher.
func NewReadChecklistTool(d *Dispatcher) *ReadChecklistTool {
	return &ReadChecklistTool{d: d}
}

// Definition returns the MCP tool definition for registration.
func (t *ReadChecklistTool) Definition() mcp.Tool {
	return mcp.NewTool("read_checklist",
		mcp.WithDescription("Read a task's checklist as serialized JSON text."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
	)
}

// Handle processes the read_checklist tool call.
func (t *ReadChecklistTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.d.handle(ctx, "read_checklist", req)
}
