package tools

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"taskflow/internal/audit"
	"taskflow/internal/task"
)

// Shared test helpers for the tools package.

func newTestDispatcher(t *testing.T) (*Dispatcher, *task.FileStore) {
	t.Helper()
	dir := t.TempDir()
	store := task.NewFileStore(dir)
	return NewDispatcher(store, audit.NewLogger(dir)), store
}

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

func getResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
