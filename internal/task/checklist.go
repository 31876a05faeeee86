package task

import (
	"encoding/json"
	"fmt"
	"os"
)

// Granular checklist operations. Each one loads the persisted checklist,
// mutates it by label and writes it back through the shared
// validate-then-persist path. None of them has a create-if-missing
// fallback — the checklist must already exist.

// AddItem appends a new pending item with the given label. Fails if any
// existing item already carries the label; the file is left unchanged.
func (fs *FileStore) AddItem(taskID, label string) (string, error) {
	items, err := fs.loadItems(taskID)
	if err != nil {
		return "", err
	}
	for _, it := range items {
		if it.Label == label {
			return "", fmt.Errorf("%w: Checklist item already exists with this label",
				ErrDuplicateLabel)
		}
	}
	return fs.saveItems(taskID, append(items, NewItem(label)))
}

// SetItemStatus updates the status of the first item matching label. The
// status value is validated before the checklist is even loaded. Notes are
// overwritten only when supplied (non-nil); a nil notes leaves existing
// notes alone. First-match only: if duplicate labels exist from a prior
// whole-checklist overwrite, later matches are untouched.
func (fs *FileStore) SetItemStatus(taskID, label, status string, notes *string) (string, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return "", err
	}

	items, err := fs.loadItems(taskID)
	if err != nil {
		return "", err
	}
	for i := range items {
		if items[i].Label != label {
			continue
		}
		items[i].Status = parsed
		if notes != nil {
			items[i].Notes = notes
		}
		return fs.saveItems(taskID, items)
	}
	return "", fmt.Errorf("%w: Checklist item not found", ErrItemNotFound)
}

// RemoveItem deletes every item matching label — all matches, not just the
// first. Fails if nothing matched; the file is left unchanged.
func (fs *FileStore) RemoveItem(taskID, label string) (string, error) {
	items, err := fs.loadItems(taskID)
	if err != nil {
		return "", err
	}
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Label != label {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return "", fmt.Errorf("%w: Checklist item not found", ErrItemNotFound)
	}
	return fs.saveItems(taskID, kept)
}

// loadItems reads and decodes the persisted checklist.
func (fs *FileStore) loadItems(taskID string) ([]Item, error) {
	data, err := os.ReadFile(fs.path(taskID, ChecklistFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s not found", ErrNotFound, ChecklistFile)
		}
		return nil, fmt.Errorf("reading %s: %w", ChecklistFile, err)
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ChecklistFile, err)
	}
	return items, nil
}

// saveItems funnels typed items back through the same validator and writer
// used by whole-checklist overwrites. Construction keeps items
// schema-conformant, so validation always passes here.
func (fs *FileStore) saveItems(taskID string, items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshaling checklist items: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("decoding checklist items: %w", err)
	}
	return fs.saveChecklist(taskID, doc, "Updated ")
}
