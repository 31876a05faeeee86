package task

import (
	"fmt"
	"os"
	"path/filepath"
)

// Document identifies one task artifact that exists on disk.
type Document struct {
	TaskID   string
	Filename string
}

// ListDocuments walks the .tasks tree and returns every artifact file
// that currently exists, in path order. A missing .tasks directory yields
// an empty list. Files at the .tasks root (the audit log, the history
// database) are not task documents and are skipped, as is anything not
// named like an artifact.
func (fs *FileStore) ListDocuments() ([]Document, error) {
	root := TasksPath(fs.workDir)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return []Document{}, nil
	}

	docs := []Document{}
	var walk func(dir, taskID string) error
	walk = func(dir, taskID string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("listing %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				childID := e.Name()
				if taskID != "" {
					childID = taskID + "/" + childID
				}
				if err := walk(filepath.Join(dir, e.Name()), childID); err != nil {
					return err
				}
				continue
			}
			if taskID == "" {
				continue
			}
			switch e.Name() {
			case InvestigationFile, SolutionPlanFile, ChecklistFile:
				docs = append(docs, Document{TaskID: taskID, Filename: e.Name()})
			}
		}
		return nil
	}
	if err := walk(root, ""); err != nil {
		return nil, err
	}
	return docs, nil
}
