package engine

import (
	"errors"
	"fmt"
)

// ErrDomain is the sentinel matched by every DomainError via errors.Is.
var ErrDomain = errors.New("domain error")

// DomainError reports a numeric input outside the domain of a computation.
// It is always returned to the caller; inputs are never silently corrected.
type DomainError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s (got %g)", e.Field, e.Reason, e.Value)
}

// Unwrap makes errors.Is(err, ErrDomain) hold.
func (e *DomainError) Unwrap() error { return ErrDomain }

// ValidationError reports an input rejected by the form-level rules
// applied before a profile reaches the scoring engine.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
