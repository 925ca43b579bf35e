package types

import "errors"

// ErrorCode represents a namespaced error code reported back to callers of the
// planning pipeline. The set mirrors the MoveIt error-code surface consumed by
// motion-planning clients.
type ErrorCode string

// Outbound error codes returned by the planning context manager.
const (
	SUCCESS            ErrorCode = "SUCCESS"
	FAILURE            ErrorCode = "FAILURE"
	INVALID_GROUP_NAME ErrorCode = "INVALID_GROUP_NAME"
)

// Internal error codes used to classify failures before they are collapsed
// into the outbound set.
const (
	PLANNER_CONFIG_NOT_FOUND  ErrorCode = "PLANNER_CONFIG_NOT_FOUND"
	STATE_SPACE_NOT_FOUND     ErrorCode = "STATE_SPACE_NOT_FOUND"
	CONSTRAINT_REJECTED       ErrorCode = "CONSTRAINT_REJECTED"
	PLANNER_ALLOCATION_FAILED ErrorCode = "PLANNER_ALLOCATION_FAILED"
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

// IsSuccess reports whether the code indicates a successful outcome.
func (c ErrorCode) IsSuccess() bool {
	return c == SUCCESS
}

// Coder is implemented by errors that carry a specific error code.
// Errors from the planning pipeline implement it so the manager can
// collapse them into the outbound code set.
type Coder interface {
	Code() ErrorCode
}

// CodeForError maps a pipeline error to the outbound error-code set.
// A nil error maps to SUCCESS. Errors carrying INVALID_GROUP_NAME keep it;
// every other failure collapses to FAILURE.
func CodeForError(err error) ErrorCode {
	if err == nil {
		return SUCCESS
	}
	var coder Coder
	if errors.As(err, &coder) && coder.Code() == INVALID_GROUP_NAME {
		return INVALID_GROUP_NAME
	}
	return FAILURE
}
