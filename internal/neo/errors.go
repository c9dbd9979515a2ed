package neo

import "fmt"

// ValidationError reports a date range request that cannot be served.
// It is raised before any upstream call is made.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DataShapeError reports a feed object that violates the record invariants
// (non-empty close approaches, non-negative finite measurements, min <= max).
type DataShapeError struct {
	Date   string
	ID     string
	Name   string
	Reason string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("neo %s (%s) on %s: %s", e.ID, e.Name, e.Date, e.Reason)
}
