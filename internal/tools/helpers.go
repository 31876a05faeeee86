package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"taskflow/internal/task"
)

// handle is the shared glue between an MCP tool call and the dispatcher:
// caller errors become tool error results the client can inspect, storage
// faults propagate as protocol errors.
func (d *Dispatcher) handle(ctx context.Context, tool string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := d.Dispatch(ctx, tool, req.GetArguments())
	if err != nil {
		if isCallerError(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(result), nil
}

// isCallerError reports whether err should surface as a tool error result
// rather than a protocol-level failure.
func isCallerError(err error) bool {
	return task.IsDomain(err) ||
		errors.Is(err, ErrUnknownTool) ||
		errors.Is(err, ErrBadArguments)
}
