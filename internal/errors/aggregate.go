package errors

import (
	"fmt"
	"strings"
)

// Aggregate collects per-item errors from a pipeline phase. A phase with a
// non-empty aggregate is fatal at its boundary; individual item failures never
// silently skip the item.
type Aggregate struct {
	Scope string
	errs  []error
}

// NewAggregate creates an empty aggregate for the named phase or scope.
func NewAggregate(scope string) *Aggregate {
	return &Aggregate{Scope: scope}
}

// Add records err. Nil errors are ignored so callers can add unconditionally.
func (a *Aggregate) Add(err error) {
	if err != nil {
		a.errs = append(a.errs, err)
	}
}

// Addf records a formatted error.
func (a *Aggregate) Addf(format string, args ...any) {
	a.errs = append(a.errs, fmt.Errorf(format, args...))
}

// Len returns the number of collected errors.
func (a *Aggregate) Len() int { return len(a.errs) }

// Errors returns the collected errors in insertion order.
func (a *Aggregate) Errors() []error { return a.errs }

// Err returns nil when no errors were collected, otherwise the aggregate
// itself. Callers use this at the phase boundary.
func (a *Aggregate) Err() error {
	if len(a.errs) == 0 {
		return nil
	}
	return a
}

// Error formats every collected error as one enumerated message.
func (a *Aggregate) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d error(s)", a.Scope, len(a.errs))
	for i, err := range a.errs {
		fmt.Fprintf(&b, "\n  [%d] %v", i+1, err)
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is/As.
func (a *Aggregate) Unwrap() []error { return a.errs }
