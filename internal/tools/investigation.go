package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// WriteInvestigationTool handles the write_investigation MCP tool — the
// first step of the workflow, with no precondition.
type WriteInvestigationTool struct {
	d *Dispatcher
}

// NewWriteInvestigationTool creates the tool bound to a dispatcher.
func NewWriteInvestigationTool(d *Dispatcher) *WriteInvestigationTool {
	return &WriteInvestigationTool{d: d}
}

// Definition returns the MCP tool definition for registration.
func (t *WriteInvestigationTool) Definition() mcp.Tool {
	return mcp.NewTool("write_investigation",
		mcp.WithDescription(
			"Create or overwrite the investigation document for a task. "+
				"First step of the workflow: research and understand the problem "+
				"before planning a solution. Creates the task folder on first write.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID. May contain '/' for nested task folders."),
		),
		mcp.WithString("content",
			mcp.Description("Markdown content for the investigation"),
			mcp.DefaultString(DefaultInvestigation),
		),
	)
}

// Handle processes the write_investigation tool call.
func (t *WriteInvestigationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.d.handle(ctx, "write_investigation", req)
}

// ReadInvestigationTool handles the read_investigation MCP tool.
type ReadInvestigationTool struct {
	d *Dispatcher
}

// NewReadInvestigationTool creates the tool bound to a dispatcher.
func NewReadInvestigationTool(d *Dispatcher) *ReadInvestigationTool {
	return &ReadInvestigationTool{d: d}
}

// Definition returns the MCP tool definition for registration.
func (t *ReadInvestigationTool) Definition() mcp.Tool {
	return mcp.NewTool("read_investigation",
		mcp.WithDescription("Read a task's investigation document."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
	)
}

// Handle processes the read_investigation tool call.
func (t *ReadInvestigationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.d.handle(ctx, "read_investigation", req)
}
