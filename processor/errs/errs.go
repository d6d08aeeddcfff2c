// Package errs is the processor's error taxonomy, kept separate from
// package processor so that lower packages (arrangement, signprop,
// boolean, ...) can return a typed processor error without importing
// the top-level orchestrator and creating an import cycle.
package errs

import "fmt"

// Kind enumerates the failure categories the pipeline distinguishes.
type Kind int

const (
	// LookupTableMissing: a LUT file was requested but not loaded.
	LookupTableMissing Kind = iota
	// DegeneratePlane: a primitive's zero set is identically zero
	// across an entire tetrahedron, so no plane can be built.
	DegeneratePlane
	// InconsistentCellLabel: sign propagation produced contradictory
	// labels for the same (primitive, cell) pair.
	InconsistentCellLabel
	// BlobtreeEvaluationFailed: the blobtree could not be evaluated
	// over a cell's label row (e.g. a leaf references an unknown
	// primitive index).
	BlobtreeEvaluationFailed
	// InvalidConfiguration: a Config failed Validate.
	InvalidConfiguration
)

func (k Kind) String() string {
	switch k {
	case LookupTableMissing:
		return "lookup table missing"
	case DegeneratePlane:
		return "degenerate plane"
	case InconsistentCellLabel:
		return "inconsistent cell label"
	case BlobtreeEvaluationFailed:
		return "blobtree evaluation failed"
	case InvalidConfiguration:
		return "invalid configuration"
	default:
		return "unknown error"
	}
}

// Error is the processor's typed error; Kind lets callers branch on
// failure category without string matching.
type Error struct {
	Kind    Kind
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// New returns an *Error of the given kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap returns an *Error of the given kind wrapping err.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Wrapped: err}
}
