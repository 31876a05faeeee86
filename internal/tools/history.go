package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"taskflow/internal/history"
)

// HistoryTool handles the task_history MCP tool. It queries the optional
// invocation-history store — a structured index over the same events the
// append-only audit log records. Registered only when history is enabled.
type HistoryTool struct {
	store *history.Store
}

// NewHistoryTool creates a HistoryTool with the given history store.
func NewHistoryTool(store *history.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("task_history",
		mcp.WithDescription(
			"List recent tool invocations recorded by this server, newest "+
				"first. Filter by task_id to see one task's history. Useful "+
				"for recovering what happened to a task across sessions.",
		),
		mcp.WithString("task_id",
			mcp.Description("Only show invocations for this task (default: all tasks)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default: 10)"),
		),
	)
}

// Handle processes the task_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := req.GetString("task_id", "")
	limit := intArg(req, "limit", 10)

	invs, err := t.store.RecentInvocations(taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}

	if len(invs) == 0 {
		if taskID != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No recorded invocations for task %q.", taskID)), nil
		}
		return mcp.NewToolResultText("No recorded invocations yet."), nil
	}

	var b strings.Builder
	b.WriteString("# Invocation History\n\n")
	for _, inv := range invs {
		marker := "✅"
		if !inv.OK {
			marker = "❌"
		}
		fmt.Fprintf(&b, "- %s `%s` task=%q at %s\n  %s\n",
			marker, inv.Tool, inv.TaskID, inv.CreatedAt, inv.Result)
	}

	stats, err := t.store.GetStats()
	if err == nil {
		fmt.Fprintf(&b, "\n---\n_%d invocations across %d sessions (%d failed)_",
			stats.TotalInvocations, stats.TotalSessions, stats.TotalFailures)
	}

	return mcp.NewToolResultText(b.String()), nil
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}
