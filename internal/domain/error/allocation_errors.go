package error

import (
	"errors"
	"fmt"
)

// Allocation domain errors.
var (
	// ErrInvalidAllocationReason is returned when a history record carries an
	// unknown reason.
	ErrInvalidAllocationReason = errors.New("invalid allocation reason")

	// ErrStaleGoalSnapshot is returned when an allocation write targets a goal
	// that was updated after the snapshot the allocation was computed from.
	// The caller must re-fetch and retry.
	ErrStaleGoalSnapshot = errors.New("goal snapshot is stale")

	// ErrProfileNotFound is returned when no financial profile exists for the user.
	ErrProfileNotFound = errors.New("financial profile not found")
)

// AllocationErrorCode defines error codes for allocation errors.
// Format: ALC-XXYYYY where XX is category and YYYY is specific error.
type AllocationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAllocationReason AllocationErrorCode = "ALC-010001"
	ErrCodeProfileNotFound         AllocationErrorCode = "ALC-010002"

	// Persistence errors (02XXXX)
	ErrCodeStaleGoalSnapshot  AllocationErrorCode = "ALC-020001"
	ErrCodeHistoryWriteFailed AllocationErrorCode = "ALC-020002"
	ErrCodeGoalWriteFailed    AllocationErrorCode = "ALC-020003"
)

// PersistenceError wraps a failure while writing an allocation outcome. It
// is a distinct class from computation errors: the computed result is still
// valid and the caller may retry the write without recomputing.
type PersistenceError struct {
	Code AllocationErrorCode
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(code AllocationErrorCode, op string, err error) *PersistenceError {
	return &PersistenceError{
		Code: code,
		Op:   op,
		Err:  err,
	}
}

// IsPersistenceError reports whether err is (or wraps) a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
