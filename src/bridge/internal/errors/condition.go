package errors

import (
	stderr "errors"
	"fmt"
)

// ConditionSyntaxError indicates that a condition expression could not be parsed.
type ConditionSyntaxError struct {
	Pos int
	Msg string
}

// Error is an implementation of the error interface.
func (e *ConditionSyntaxError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("ConditionSyntaxError: %s", e.Msg)
	}
	return fmt.Sprintf("ConditionSyntaxError: %s at position %d", e.Msg, e.Pos)
}

// ConditionEvaluationError indicates that a well formed condition failed at evaluation time.
type ConditionEvaluationError struct {
	Msg string
	Err error
}

// Error is an implementation of the error interface.
func (e *ConditionEvaluationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ConditionEvaluationError: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("ConditionEvaluationError: %s", e.Msg)
}

// Unwrap returns the underlying cause.
func (e *ConditionEvaluationError) Unwrap() error {
	return e.Err
}

// IsConditionSyntax reports whether a ConditionSyntaxError is part of the error chain.
func IsConditionSyntax(e error) bool {
	var target *ConditionSyntaxError
	return stderr.As(e, &target)
}

// IsConditionEvaluation reports whether a ConditionEvaluationError is part of the error chain.
func IsConditionEvaluation(e error) bool {
	var target *ConditionEvaluationError
	return stderr.As(e, &target)
}
