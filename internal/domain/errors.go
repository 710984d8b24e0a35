// backend-go/internal/domain/errors.go
package domain

import "fmt"

// ReferenceDataError reports a missing or malformed reference table. The
// loader is all-or-nothing, so one of these means classification runs
// without tables and degrades to Unknown.
type ReferenceDataError struct {
	File string
	Line int
	Err  error
}

func (e *ReferenceDataError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("reference data %s line %d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("reference data %s: %v", e.File, e.Err)
}

func (e *ReferenceDataError) Unwrap() error { return e.Err }

// InvalidDateError reports unusable birth/measurement dates. It blocks
// classification and is surfaced to the caller.
type InvalidDateError struct {
	Reason string
}

func (e *InvalidDateError) Error() string {
	return "invalid dates: " + e.Reason
}

// NotFoundError reports an item or batch ID with no backing record. The
// resource name distinguishes an item ID mismatch from a batch ID mismatch.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s ID mismatch: %s", e.Resource, e.ID)
}

// RejectedError is a business-rule rejection of an adjustment. The message
// is shown verbatim to the user, quantities included, so it can be audited.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

func Rejectedf(format string, args ...interface{}) *RejectedError {
	return &RejectedError{Message: fmt.Sprintf(format, args...)}
}
