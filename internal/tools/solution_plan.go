package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// WriteSolutionPlanTool handles the write_solution_plan MCP tool. Second
// step of the workflow — requires an existing investigation for the task.
type WriteSolutionPlanTool struct {
	d *Dispatcher
}

// NewWriteSolutionPlanTool creates the tool bound to a dispatcher.
func NewWriteSolutionPlanTool(d *Dispatcher) *WriteSolutionPlanTool {
	return &WriteSolutionPlanTool{d: d}
}

// Definition returns the MCP tool definition for registration.
func (t *WriteSolutionPlanTool) Definition() mcp.Tool {
	return mcp.NewTool("write_solution_plan",
		mcp.WithDescription(
			"Create or overwrite the solution plan for a task. Requires the "+
				"task's investigation to exist — the workflow order is "+
				"investigation → solution plan → checklist.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
		mcp.WithString("content",
			mcp.Description("Markdown content for the solution plan"),
			mcp.DefaultString(DefaultSolutionPlan),
		),
	)
}

// Handle processes the write_solution_plan tool call.
func (t *WriteSolutionPlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.d.handle(ctx, "write_solution_plan", req)
}

// ReadSolutionPlanTool handles the read_solution_plan MCP tool.
type ReadSolutionPlanTool struct {
	d *Dispatcher
}

// NewReadSolutionPlanTool creates the tool bound to a dispatcher.
func NewReadSolutionPlanTool(d *Dispatcher) *ReadSolutionPlanTool {
	return &ReadSolutionPlanTool{d: d}
}

// Definition returns the MCP tool definition for registration.
func (t *ReadSolutionPlanTool) Definition() mcp.Tool {
	return mcp.NewTool("read_solution_plan",
		mcp.WithDescription("Read a task's solution plan document."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
	)
}

// Handle processes the read_solution_plan tool call.
func (t *ReadSolutionPlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.d.handle(ctx, "read_solution_plan", req)
}
