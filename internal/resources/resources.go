// Package resources implements MCP resource handlers for task documents.
//
// Each task artifact is addressable as task://{task_id}/{filename}, so MCP
// hosts can pull documents into context without a tool call. Reads go
// through the task store — resources never touch the files directly.
package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"taskflow/internal/task"
)

// Handler manages task document resource endpoints.
type Handler struct {
	store task.Store
}

// NewHandler creates a resource Handler over the given store.
func NewHandler(store task.Store) *Handler {
	return &Handler{store: store}
}

// DocumentTemplate returns the resource template covering all task documents.
func (h *Handler) DocumentTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"task://{task_id}/{filename}",
		"Task Documents",
		mcp.WithTemplateDescription(
			"A task's workflow documents: INVESTIGATION.md, SOLUTION_PLAN.md or CHECKLIST.json",
		),
	)
}

// Document returns the concrete resource definition for one existing
// task artifact, addressable at task://{task_id}/{filename}. The server
// registers one of these per document on disk so hosts can enumerate
// what actually exists, alongside the template.
func (h *Handler) Document(taskID, filename string) mcp.Resource {
	return mcp.NewResource(
		"task://"+taskID+"/"+filename,
		taskID+"/"+filename,
		mcp.WithResourceDescription(fmt.Sprintf("%s for task %s", filename, taskID)),
		mcp.WithMIMEType(documentMIME(filename)),
	)
}

// documentMIME maps an artifact filename to its MIME type.
func documentMIME(filename string) string {
	if filename == task.ChecklistFile {
		return "application/json"
	}
	return "text/markdown"
}

// HandleDocument reads one task document by URI.
// URI format: task://{task_id}/{filename}, where task_id may itself
// contain '/' — the filename is always the last path segment.
func (h *Handler) HandleDocument(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI

	taskID, filename, err := parseDocumentURI(uri)
	if err != nil {
		return nil, err
	}

	var content string
	switch filename {
	case task.InvestigationFile:
		content, err = h.store.ReadInvestigation(taskID)
	case task.SolutionPlanFile:
		content, err = h.store.ReadSolutionPlan(taskID)
	case task.ChecklistFile:
		content, err = h.store.ReadChecklist(taskID)
	default:
		return nil, fmt.Errorf("unknown task document %q in URI %s", filename, uri)
	}
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return nil, fmt.Errorf("resource not found: %s", uri)
		}
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: documentMIME(filename),
			Text:     content,
		},
	}, nil
}

// parseDocumentURI splits a task:// URI into task ID and filename.
func parseDocumentURI(uri string) (taskID, filename string, err error) {
	const scheme = "task://"
	if !strings.HasPrefix(uri, scheme) {
		return "", "", fmt.Errorf("invalid resource URI: %s", uri)
	}
	rest := strings.TrimPrefix(uri, scheme)
	slash := strings.LastIndex(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return "", "", fmt.Errorf("invalid resource URI format: %s", uri)
	}
	return rest[:slash], rest[slash+1:], nil
}
