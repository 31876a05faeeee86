package task

import "fmt"

// ValidateChecklist checks a decoded checklist document against the
// structural contract before any write:
//
//   - the document must be an array
//   - each element must be an object with exactly the keys "label" (string),
//     "status" (pending | in-progress | done) and, optionally, "notes"
//     (string or null) — any other key is a violation
//
// Validation is structural only. It deliberately does NOT check label
// uniqueness across items: whole-checklist overwrites accept duplicate
// labels, and only AddItem guards against them.
func ValidateChecklist(doc any) error {
	items, ok := doc.([]any)
	if !ok {
		return fmt.Errorf("%w: checklist must be an array", ErrSchema)
	}

	for i, el := range items {
		obj, ok := el.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: item %d must be an object", ErrSchema, i)
		}
		if err := validateItem(i, obj); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(i int, obj map[string]any) error {
	label, ok := obj["label"]
	if !ok {
		return fmt.Errorf("%w: item %d is missing required key %q", ErrSchema, i, "label")
	}
	if _, ok := label.(string); !ok {
		return fmt.Errorf("%w: item %d: %q must be a string", ErrSchema, i, "label")
	}

	status, ok := obj["status"]
	if !ok {
		return fmt.Errorf("%w: item %d is missing required key %q", ErrSchema, i, "status")
	}
	raw, ok := status.(string)
	if !ok {
		return fmt.Errorf("%w: item %d: %q must be a string", ErrSchema, i, "status")
	}
	if _, err := ParseStatus(raw); err != nil {
		return fmt.Errorf("%w: item %d: status %q is not one of %s, %s, %s",
			ErrSchema, i, raw, StatusPending, StatusInProgress, StatusDone)
	}

	if notes, ok := obj["notes"]; ok && notes != nil {
		if _, ok := notes.(string); !ok {
			return fmt.Errorf("%w: item %d: %q must be a string or null", ErrSchema, i, "notes")
		}
	}

	for key := range obj {
		switch key {
		case "label", "status", "notes":
		default:
			return fmt.Errorf("%w: item %d has unknown key %q", ErrSchema, i, key)
		}
	}
	return nil
}
