package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Precondition errors: caller mistakes detected before any computation
	ErrPrecondition      = errors.New("precondition failed")
	ErrMissingValues     = fmt.Errorf("%w: input contains missing values", ErrPrecondition)
	ErrUnsupportedAlpha  = fmt.Errorf("%w: unsupported alpha", ErrPrecondition)
	ErrNotCategorical    = fmt.Errorf("%w: column is not categorical", ErrPrecondition)
	ErrUnsupportedMethod = fmt.Errorf("%w: unsupported method", ErrPrecondition)
	ErrColumnNotFound    = fmt.Errorf("%w: column not found", ErrPrecondition)
	ErrNonNumericColumn  = fmt.Errorf("%w: column is not numeric", ErrPrecondition)
	ErrInvalidAlpha      = fmt.Errorf("%w: alpha must lie in [0,1]", ErrPrecondition)

	// Input shape errors raised by the statistical routines themselves
	ErrLengthMismatch   = errors.New("samples have different lengths")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Degenerate inputs that would otherwise produce non-finite results
	ErrDegenerate       = errors.New("degenerate input")
	ErrDegenerateTable  = fmt.Errorf("%w: contingency table has a single row or column", ErrDegenerate)
	ErrDegenerateSample = fmt.Errorf("%w: all sample values are identical", ErrDegenerate)
)

// NewLengthMismatchError reports the two offending lengths.
func NewLengthMismatchError(a, b int) error {
	return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a, b)
}

// NewInsufficientDataError reports how many observations a test needs.
func NewInsufficientDataError(test string, need, got int) error {
	return fmt.Errorf("%w: %s needs at least %d observations, got %d", ErrInsufficientData, test, need, got)
}

// Error checking helpers
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

func IsDegenerateError(err error) bool {
	return errors.Is(err, ErrDegenerate)
}
