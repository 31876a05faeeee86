package task

import "errors"

// Sentinel errors for workflow and checklist failures. Call sites wrap them
// with fmt.Errorf("%w: ...") so callers can match categories with errors.Is
// while still receiving a message that names the violated rule.
var (
	// ErrPrecondition reports a workflow-order violation: the upstream
	// artifact a write depends on does not exist yet.
	ErrPrecondition = errors.New("precondition failed")

	// ErrNotFound reports a missing artifact on read, or a missing
	// checklist on a granular mutation.
	ErrNotFound = errors.New("not found")

	// ErrSchema reports a checklist document that fails structural
	// validation.
	ErrSchema = errors.New("schema violation")

	// ErrDuplicateLabel reports an add with a label that already exists.
	ErrDuplicateLabel = errors.New("duplicate label")

	// ErrItemNotFound reports a status-set or remove whose target label
	// matched no item.
	ErrItemNotFound = errors.New("checklist item not found")

	// ErrInvalidStatus reports a status value outside the closed enum.
	ErrInvalidStatus = errors.New("invalid status")
)

// IsDomain reports whether err belongs to the workflow error taxonomy, as
// opposed to an underlying storage fault. Domain errors are caller mistakes
// and surface as tool error results; everything else propagates.
func IsDomain(err error) bool {
	return errors.Is(err, ErrPrecondition) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSchema) ||
		errors.Is(err, ErrDuplicateLabel) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrInvalidStatus)
}
