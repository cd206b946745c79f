package interpreter

import (
	"fmt"

	"github.com/tuannm99/novarel/internal/record"
)

// DuplicateNameError is returned when a program assigns the same name twice.
// It is detected before any statement runs.
type DuplicateNameError struct {
	Name   string
	Line   int
	Column int
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s is a duplicate relation name (line %d, column %d)", e.Name, e.Line, e.Column)
}

// UnresolvedError is returned when an expression names a relation that is
// neither assigned earlier in the program nor present in the catalog.
type UnresolvedError struct {
	Name   string
	Line   int
	Column int
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("relation %q does not exist (line %d, column %d)", e.Name, e.Line, e.Column)
}

// ComparisonError is returned when an ordering comparison meets operands of
// kinds that have no common order, such as TEXT < INTEGER.
type ComparisonError struct {
	Op     string
	Left   record.Kind
	Right  record.Kind
	Line   int
	Column int
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("cannot compare %s %s %s (line %d, column %d)", e.Left, e.Op, e.Right, e.Line, e.Column)
}

func (e *ComparisonError) Unwrap() error { return record.ErrIncomparable }
