package contract

import "fmt"

// SchemaViolation reports a contract instance that breaks one of its
// construction invariants: an out-of-range probability, a dangling
// identifier reference, a wrong parameter shape for an action type, and so
// on. It is a programming-error class failure: the producing component
// must not publish the offending instance, and nothing in this layer
// retries or repairs it.
type SchemaViolation struct {
	Type   string // contract type name, e.g. "BeliefState"
	Field  string // dotted path to the offending field
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Type, e.Field, e.Reason)
}

// Violationf builds a SchemaViolation with a formatted reason.
func Violationf(typ, field, format string, args ...any) *SchemaViolation {
	return &SchemaViolation{Type: typ, Field: field, Reason: fmt.Sprintf(format, args...)}
}
