/*
errors.go - Centralized error types for offset construction and arithmetic

PURPOSE:
  All offset errors in one place. Every error here is synchronous, local,
  and non-retryable: it signals a caller or configuration mistake, never a
  transient failure.

CATEGORIES:
  1. Configuration errors - constructor parameters out of range
  2. Type mismatch errors - incompatible operand kinds in offset arithmetic

USAGE:
  Callers match with errors.Is / errors.As:

    if errors.Is(err, offsets.ErrConfiguration) { ... }

    var mismatch *offsets.TypeMismatchError
    if errors.As(err, &mismatch) { ... }

SEE ALSO:
  - ranges package: range-generation errors (insufficient spec, non-progress)
*/
package offsets

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrConfiguration is returned when an offset is constructed with
	// parameters outside their valid range.
	ErrConfiguration = errors.New("invalid offset configuration")

	// ErrTypeMismatch is returned when offset arithmetic combines
	// incompatible concrete kinds.
	ErrTypeMismatch = errors.New("incompatible offset operands")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigurationError reports which constructor parameter was rejected.
type ConfigurationError struct {
	Offset string // family name, e.g. "WeekOfMonth"
	Param  string // offending parameter, e.g. "weekday"
	Value  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s=%d: %s", e.Offset, e.Param, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// TypeMismatchError reports the two operand kinds that cannot be combined.
type TypeMismatchError struct {
	Left  string
	Right string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot combine offset %s with %s", e.Left, e.Right)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
