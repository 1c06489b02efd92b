// Package errors provides error types carrying replay context.
package errors

import (
	"fmt"
	"time"
)

// OperationalError wraps an error with the context it happened in: what
// was being done, in which scenario, at which step.
type OperationalError struct {
	Operation  string         // What operation was being performed
	Scenario   string         // Which scenario
	Step       int            // 1-based step number, 0 when not tied to a step
	Timestamp  time.Time      // When error occurred
	Attributes map[string]any // Additional context (optional)
	Cause      error          // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if err != nil {
//	    return NewOperationalError("parsing event", sc.Name, i+1, err)
//	}
func NewOperationalError(operation, scenario string, step int, cause error) *OperationalError {
	return NewOperationalErrorWithAttrs(operation, scenario, step, cause, nil)
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional
// attributes.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalErrorWithAttrs(operation, scenario string, step int, cause error, attrs map[string]any) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation:  operation,
		Scenario:   scenario,
		Step:       step,
		Timestamp:  time.Now(),
		Attributes: attrs,
		Cause:      cause,
	}
}

// Error implements the error interface.
//
// Format: "operation: scenario={name} step={n}: {cause}"
// The step is omitted when it is 0.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	if e.Step > 0 {
		return fmt.Sprintf("%s: scenario=%s step=%d: %v", e.Operation, e.Scenario, e.Step, e.Cause)
	}
	return fmt.Sprintf("%s: scenario=%s: %v", e.Operation, e.Scenario, e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
