// Package loanerror defines the error types returned by the loan calculator.
package loanerror

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind string

const (
	// MissingRequiredField means a required input was absent or the set of
	// present inputs does not select exactly one calculation.
	MissingRequiredField Kind = "missing required field"
	// NonPositiveValue means a numeric input was zero or negative.
	NonPositiveValue Kind = "non-positive value"
	// PaymentTooLowForInterest means the payment does not cover the interest
	// accrued in one period, so the loan is never repaid.
	PaymentTooLowForInterest Kind = "payment too low for interest"
	// OutOfRange means a value exceeds a configured limit.
	OutOfRange Kind = "out of range"
	// MalformedValue means an input could not be read as a number.
	MalformedValue Kind = "malformed value"
)

// Sentinel values for errors.Is comparisons against a ValidationError kind.
var (
	ErrMissingRequiredField     = &ValidationError{Kind: MissingRequiredField}
	ErrNonPositiveValue         = &ValidationError{Kind: NonPositiveValue}
	ErrPaymentTooLowForInterest = &ValidationError{Kind: PaymentTooLowForInterest}
	ErrOutOfRange               = &ValidationError{Kind: OutOfRange}
	ErrMalformedValue           = &ValidationError{Kind: MalformedValue}
)

// ValidationError represents a rejected set of loan parameters
type ValidationError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Reason != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return string(e.Kind)
}

// Is reports whether target is a ValidationError of the same kind.
func (e *ValidationError) Is(target error) bool {
	var t *ValidationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Missing returns a MissingRequiredField error for the given field.
func Missing(field, reason string) *ValidationError {
	return &ValidationError{Kind: MissingRequiredField, Field: field, Reason: reason}
}

// NonPositive returns a NonPositiveValue error for the given field and value.
func NonPositive(field string, value float64) *ValidationError {
	return &ValidationError{
		Kind:   NonPositiveValue,
		Field:  field,
		Reason: fmt.Sprintf("must be greater than zero, got %g", value),
	}
}

// TooLarge returns an OutOfRange error for a value above limit.
func TooLarge(field string, value, limit float64) *ValidationError {
	return &ValidationError{
		Kind:   OutOfRange,
		Field:  field,
		Reason: fmt.Sprintf("%g exceeds the limit of %g", value, limit),
	}
}

// Unrepresentable returns an OutOfRange error for a computed amount that is
// not finite or does not fit a whole-unit integer.
func Unrepresentable(field string, value float64) *ValidationError {
	return &ValidationError{
		Kind:   OutOfRange,
		Field:  field,
		Reason: fmt.Sprintf("computed value %g cannot be represented as a whole amount", value),
	}
}

// Malformed returns a MalformedValue error for raw input that is not a number.
func Malformed(field, raw string) *ValidationError {
	return &ValidationError{
		Kind:   MalformedValue,
		Field:  field,
		Reason: fmt.Sprintf("%q is not a number", raw),
	}
}

// CalculationError wraps a failure raised while running a calculator operation
type CalculationError struct {
	Operation string
	Err       error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}
