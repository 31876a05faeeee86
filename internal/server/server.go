// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools and resources that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"taskflow/internal/audit"
	"taskflow/internal/history"
	"taskflow/internal/resources"
	"taskflow/internal/task"
	"taskflow/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config holds the server's runtime configuration.
type Config struct {
	// WorkDir is the directory the .tasks/ tree lives under.
	WorkDir string
	// HistoryDir is where the invocation-history database lives.
	HistoryDir string
	// HistoryEnabled toggles the optional history subsystem.
	HistoryEnabled bool
}

// New creates and configures the MCP server with all tools and resources
// registered.
//
// The returned cleanup function closes the history store's database
// connection and must be called on shutdown (typically via defer). It is
// always non-nil and safe to call even if history init failed.
func New(cfg Config) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	store := task.NewFileStore(cfg.WorkDir)
	auditLog := audit.NewLogger(cfg.WorkDir)
	dispatcher := tools.NewDispatcher(store, auditLog)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"taskflow",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register workflow tools ---

	writeInvestigation := tools.NewWriteInvestigationTool(dispatcher)
	s.AddTool(writeInvestigation.Definition(), writeInvestigation.Handle)

	writeSolutionPlan := tools.NewWriteSolutionPlanTool(dispatcher)
	s.AddTool(writeSolutionPlan.Definition(), writeSolutionPlan.Handle)

	writeChecklist := tools.NewWriteChecklistTool(dispatcher)
	s.AddTool(writeChecklist.Definition(), writeChecklist.Handle)

	readInvestigation := tools.NewReadInvestigationTool(dispatcher)
	s.AddTool(readInvestigation.Definition(), readInvestigation.Handle)

	readSolutionPlan := tools.NewReadSolutionPlanTool(dispatcher)
	s.AddTool(readSolutionPlan.Definition(), readSolutionPlan.Handle)

	readChecklist := tools.NewReadChecklistTool(dispatcher)
	s.AddTool(readChecklist.Definition(), readChecklist.Handle)

	addItem := tools.NewAddChecklistItemTool(dispatcher)
	s.AddTool(addItem.Definition(), addItem.Handle)

	setItemStatus := tools.NewSetChecklistItemStatusTool(dispatcher)
	s.AddTool(setItemStatus.Definition(), setItemStatus.Handle)

	removeItem := tools.NewRemoveChecklistItemTool(dispatcher)
	s.AddTool(removeItem.Definition(), removeItem.Handle)

	// --- Register history subsystem ---
	//
	// History is independent from the workflow: if it fails to initialize,
	// the workflow tools continue working. We log a warning and skip
	// history registration — the audit file log still records every call.

	cleanup := noop
	if cfg.HistoryEnabled {
		histStore, err := history.New(history.Config{DataDir: cfg.HistoryDir})
		if err != nil {
			log.Printf("WARNING: history subsystem disabled: %v", err)
		} else {
			sessionID, err := histStore.StartSession(cfg.WorkDir)
			if err != nil {
				log.Printf("WARNING: history subsystem disabled: %v", err)
				_ = histStore.Close()
			} else {
				cleanup = func() {
					if err := histStore.Close(); err != nil {
						log.Printf("WARNING: history store close: %v", err)
					}
				}
				dispatcher.SetHistory(histStore, sessionID)

				historyTool := tools.NewHistoryTool(histStore)
				s.AddTool(historyTool.Definition(), historyTool.Handle)
			}
		}
	}

	// --- Register resources ---
	//
	// The template makes every task document addressable; documents that
	// already exist on disk are also registered as concrete resources so
	// hosts can enumerate them, and the dispatcher adds new ones as the
	// write tools create them.

	resourceHandler := resources.NewHandler(store)
	s.AddResourceTemplate(resourceHandler.DocumentTemplate(), resourceHandler.HandleDocument)

	docs, err := store.ListDocuments()
	if err != nil {
		log.Printf("WARNING: listing task documents: %v", err)
	}
	for _, doc := range docs {
		s.AddResource(resourceHandler.Document(doc.TaskID, doc.Filename), resourceHandler.HandleDocument)
	}
	dispatcher.SetObserver(func(taskID, filename string) {
		s.AddResource(resourceHandler.Document(taskID, filename), resourceHandler.HandleDocument)
	})

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when history is
// disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI how
// to use the task workflow.
func serverInstructions() string {
	return `You have access to taskflow, a structured task management MCP server.

## Workflow

Every task follows a strict three-step document workflow. Each step is
blocked until the previous one exists:

1. write_investigation — research and understand the problem (INVESTIGATION.md)
2. write_solution_plan — plan the approach (SOLUTION_PLAN.md, requires 1)
3. write_checklist — break the plan into actionable items (CHECKLIST.json, requires 2)

Pick a short, stable task_id for each unit of work and reuse it for every
call. Task IDs may contain '/' to group related tasks into folders.

## Checklist items

Each item is {"label", "status", "notes"?}. The label is the item's unique
key; status is one of: pending, in-progress, done.

- add_checklist_item: append a new pending item
- set_checklist_item_status: move an item through pending → in-progress → done;
  pass notes to record outcomes ("done, see commit abc123")
- remove_checklist_item: delete an item that is no longer needed
- write_checklist: replace the whole list (use granular tools for single items)

## Recommended usage

- Write a real investigation before planning — the order is enforced.
- Update item status as you work so progress survives between sessions.
- read_checklist returns the raw JSON; parse it to check remaining work.
- Documents are also exposed as resources at task://{task_id}/{filename}.`
}
