package planning

import (
	"errors"
	"fmt"

	"github.com/walking-machine/moveit2/internal/types"
)

// ErrorType represents specific planning error types.
type ErrorType string

const (
	// ErrorTypeInvalidGroupName indicates the request named no or an
	// unknown planning group.
	ErrorTypeInvalidGroupName ErrorType = "invalid_group_name"

	// ErrorTypeValidation indicates an invalid request.
	ErrorTypeValidation ErrorType = "validation_failed"

	// ErrorTypeConfigNotFound indicates no planner configuration matched
	// the request's group and planner id.
	ErrorTypeConfigNotFound ErrorType = "planner_config_not_found"

	// ErrorTypeNoStateSpace indicates no registered state-space factory
	// can represent the planning problem.
	ErrorTypeNoStateSpace ErrorType = "no_state_space"

	// ErrorTypeConstraintRejected indicates path or goal constraints
	// failed validation.
	ErrorTypeConstraintRejected ErrorType = "constraint_rejected"

	// ErrorTypeAllocationFailed indicates planner allocation or
	// configuration failed, including the null allocator capability
	// returned for unknown planner ids.
	ErrorTypeAllocationFailed ErrorType = "planner_allocation_failed"

	// ErrorTypeInternal indicates an internal planning error, including
	// failures surfaced by the underlying planning library.
	ErrorTypeInternal ErrorType = "internal_error"
)

// PlanningError represents a planning-specific error with type and context.
// It implements the error interface and supports error wrapping with
// errors.Is/As.
type PlanningError struct {
	// Type identifies the specific error type.
	Type ErrorType

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error that caused this error (optional).
	Cause error

	// Context provides additional contextual information about the error.
	Context map[string]any
}

// Error implements the error interface.
func (e *PlanningError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain traversal.
func (e *PlanningError) Unwrap() error {
	return e.Cause
}

// Is implements the errors.Is interface for error comparison.
// Two PlanningErrors are equal if they have the same error type.
func (e *PlanningError) Is(target error) bool {
	var planningErr *PlanningError
	if errors.As(target, &planningErr) {
		return e.Type == planningErr.Type
	}
	return false
}

// Code maps the error type to the outbound error-code surface.
func (e *PlanningError) Code() types.ErrorCode {
	switch e.Type {
	case ErrorTypeInvalidGroupName:
		return types.INVALID_GROUP_NAME
	case ErrorTypeConfigNotFound:
		return types.PLANNER_CONFIG_NOT_FOUND
	case ErrorTypeNoStateSpace:
		return types.STATE_SPACE_NOT_FOUND
	case ErrorTypeConstraintRejected:
		return types.CONSTRAINT_REJECTED
	case ErrorTypeAllocationFailed:
		return types.PLANNER_ALLOCATION_FAILED
	default:
		return types.FAILURE
	}
}

// WithContext adds contextual information to the error.
func (e *PlanningError) WithContext(key string, value any) *PlanningError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewPlanningError creates a new PlanningError with the given type and
// message.
func NewPlanningError(errType ErrorType, message string) *PlanningError {
	return &PlanningError{
		Type:    errType,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapPlanningError wraps an existing error with planning error context.
func WrapPlanningError(errType ErrorType, message string, cause error) *PlanningError {
	return &PlanningError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}
