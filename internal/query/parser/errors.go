package parser

import "fmt"

// SyntaxError reports a token that does not fit the grammar at the current
// parse position.
type SyntaxError struct {
	Line     int
	Column   int
	Found    string // offending token as written
	Expected string // what the grammar allowed here
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d, column %d: expected %s, found %s",
		e.Line, e.Column, e.Expected, e.Found)
}
