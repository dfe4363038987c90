// Package error defines domain-specific errors for the Goal Planner application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidPriority is returned when the priority is outside 1-10.
	ErrInvalidPriority = errors.New("priority must be between 1 and 10")

	// ErrInvalidGoalType is returned when the goal type is not recognized.
	ErrInvalidGoalType = errors.New("invalid goal type")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")

	// ErrDependencyNotFound is returned when depends_on_goal_id references a
	// goal that does not exist for this user.
	ErrDependencyNotFound = errors.New("dependency goal not found")

	// ErrSelfDependency is returned when a goal is declared to depend on itself.
	ErrSelfDependency = errors.New("goal cannot depend on itself")

	// ErrGoalNotActive is returned when an operation requires an active goal.
	ErrGoalNotActive = errors.New("goal is not active")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTargetAmount    GoalErrorCode = "GOL-010002"
	ErrCodeInvalidPriority        GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalType        GoalErrorCode = "GOL-010004"
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-010005"
	ErrCodeDependencyNotFound     GoalErrorCode = "GOL-010006"
	ErrCodeSelfDependency         GoalErrorCode = "GOL-010007"
	ErrCodeGoalNotActive          GoalErrorCode = "GOL-010008"
	ErrCodeMissingGoalFields      GoalErrorCode = "GOL-010009"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
