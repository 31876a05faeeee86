// Taskflow: structured task management MCP server.
//
// Exposes an ordered document workflow (investigation → solution plan →
// checklist) to any MCP-capable AI tool over stdio.
//
// Usage:
//
//	taskflow serve [--workdir DIR]   # Start MCP server (stdio transport)
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	taskserver "taskflow/internal/server"
)

func main() {
	// Best-effort .env loading — absent files are fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("taskflow v%s\n", taskserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	workDir := fs.String("workdir", "", "working directory for the .tasks/ tree (default: $TASKFLOW_WORKDIR or cwd)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := resolveConfig(*workDir)
	if err != nil {
		return err
	}

	s, cleanup, err := taskserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

// resolveConfig fills the server config from the flag, environment and
// process defaults. Precedence: flag > TASKFLOW_WORKDIR > cwd.
func resolveConfig(workDir string) (taskserver.Config, error) {
	if workDir == "" {
		workDir = os.Getenv("TASKFLOW_WORKDIR")
	}
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return taskserver.Config{}, fmt.Errorf("getting working directory: %w", err)
		}
		workDir = cwd
	}

	cfg := taskserver.Config{
		WorkDir:        workDir,
		HistoryDir:     os.Getenv("TASKFLOW_HISTORY_DIR"),
		HistoryEnabled: os.Getenv("TASKFLOW_HISTORY") != "off",
	}
	if cfg.HistoryDir == "" {
		// Keep the database next to the audit log.
		cfg.HistoryDir = filepath.Join(workDir, ".tasks")
	}
	return cfg, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `taskflow v%s — structured task management MCP server

Usage:
  taskflow serve [--workdir DIR]   Start the MCP server (stdio transport)
  taskflow version                 Print the version

Environment:
  TASKFLOW_WORKDIR       Working directory for the .tasks/ tree (default: cwd)
  TASKFLOW_HISTORY       Set to "off" to disable the invocation history DB
  TASKFLOW_HISTORY_DIR   Where history.db lives (default: <workdir>/.tasks)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "taskflow": {
        "command": "taskflow",
        "args": ["serve"]
      }
    }
  }
`, taskserver.Version)
}
