package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// AddChecklistItemTool handles the add_checklist_item MCP tool. Appends a
// pending item to an existing checklist; labels are unique per checklist,
// so adding a label that already exists fails.
type AddChecklistItemTool struct {
	d *Dispatcher
}

// NewAddChecklistItemTool creates the tool bound to a dispatcher.
func NewAddChecklistItemTool(d *Dispatcher) *AddChecklistItemTool {
	return &AddChecklistItemTool{d: d}
}

// Definition returns the MCP tool definition for registration.
func (t *AddChecklistItemTool) Definition() mcp.Tool {
	return mcp.NewTool("add_checklist_item",
		mcp.WithDescription(
			"Append a new item to a task's checklist with status 'pending'. "+
				"The checklist must already exist, and the label must not "+
				"collide with an existing item.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
		mcp.WithString("task_label",
			mcp.Required(),
			mcp.Description("Label for the new item — acts as its unique key"),
		),
	)
}

// Handle processes the add_checklist_item tool call.
func (t *AddChecklistItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.d.handle(ctx, "add_checklist_item", req)
}

// SetChecklistItemStatusTool handles the set_checklist_item_status MCP
// tool. Updates the first item matching the label.
type SetChecklistItemStatusTool struct {
	d *Dispatcher
}

// NewSetChecklistItemStatusTool creates the tool bound to a dispatcher.
func NewSetChecklistItemStatusTool(d *Dispatcher) *SetChecklistItemStatusTool {
	return &SetChecklistItemStatusTool{d: d}
}

// Definition returns the MCP tool definition for registration.
func (t *SetChecklistItemStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("set_checklist_item_status",
		mcp.WithDescription(
			"Update the status of a checklist item by label. Notes are "+
				"overwritten only when supplied; omit them to leave existing "+
				"notes untouched.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
		mcp.WithString("task_label",
			mcp.Required(),
			mcp.Description("Label of the item to update"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("The new status"),
			mcp.Enum("pending", "in-progress", "done"),
		),
		mcp.WithString("notes",
			mcp.Description("Optional notes to set on the item"),
		),
	)
}

// Handle processes the set_checklist_item_status tool call.
func (t *SetChecklistItemStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.d.handle(ctx, "set_checklist_item_status", req)
}

// RemoveChecklistItemTool handles the remove_checklist_item MCP tool.
// Removes every item matching the label (duplicates included).
type RemoveChecklistItemTool struct {
	d *Dispatcher
}

// NewRemoveChecklistItemTool creates the tool bound to a dispatcher.
func NewRemoveChecklistItemTool(d *Dispatcher) *RemoveChecklistItemTool {
	return &RemoveChecklistItemTool{d: d}
}

// Definition returns the MCP tool definition for registration.
func (t *RemoveChecklistItemTool) Definition() mcp.Tool {
	return mcp.NewTool("remove_checklist_item",
		mcp.WithDescription(
			"Remove checklist items by label. All items with a matching "+
				"label are removed; fails if none match.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
		mcp.WithString("task_label",
			mcp.Required(),
			mcp.Description("Label of the item(s) to remove"),
		),
	)
}

// Handle processes the remove_checklist_item tool call.
func (t *RemoveChecklistItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.d.handle(ctx, "remove_checklist_item", req)
}
