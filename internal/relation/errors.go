package relation

import (
	"fmt"
	"strings"
)

// UnknownAttributeError is returned when an operation names an attribute
// that is not in the operand's schema.
type UnknownAttributeError struct {
	Attribute string
	Schema    []string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("relation: unknown attribute %q in schema %s", e.Attribute, formatSchema(e.Schema))
}

// SchemaMismatchError is returned by union, intersect and difference when
// the operands do not share the same attribute list in the same order.
type SchemaMismatchError struct {
	Left  []string
	Right []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("relation: mismatched schemas %s and %s", formatSchema(e.Left), formatSchema(e.Right))
}

// SchemaConflictError is returned by product when both operands carry an
// attribute with the same name.
type SchemaConflictError struct {
	Attribute string
}

func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("relation: attribute %q appears in both operands of product", e.Attribute)
}

// DuplicateAttributeError is returned when a schema would list the same
// attribute twice.
type DuplicateAttributeError struct {
	Attribute string
}

func (e *DuplicateAttributeError) Error() string {
	return fmt.Sprintf("relation: duplicate attribute %q", e.Attribute)
}

// ArityError is returned when a tuple does not have one value per attribute.
type ArityError struct {
	Expected int
	Found    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("relation: expected tuple arity %d, found %d", e.Expected, e.Found)
}

func formatSchema(s []string) string {
	return "[" + strings.Join(s, ", ") + "]"
}
