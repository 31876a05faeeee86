package task

import "fmt"

// Status is the closed set of checklist item states.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// ParseStatus validates a raw status value against the closed enum.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusInProgress, StatusDone:
		return Status(raw), nil
	}
	return "", fmt.Errorf("%w: Invalid status; must be one of: %s, %s, %s",
		ErrInvalidStatus, StatusPending, StatusInProgress, StatusDone)
}

// Item is a single checklist entry. The label acts as the item's unique key
// within a task's checklist — there is no separate numeric ID. Notes is nil
// when the item carries no notes; absent and null are the same value.
type Item struct {
	Label  string  `json:"label"`
	Status Status  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// NewItem returns a fresh pending item with no notes.
func NewItem(label string) Item {
	return Item{Label: label, Status: StatusPending}
}
