package lexer

import "fmt"

// MissingQuoteError reports a string literal that reaches a newline or the
// end of input before its closing quote. Line and Column point at the
// opening quote.
type MissingQuoteError struct {
	Line   int
	Column int
}

func (e *MissingQuoteError) Error() string {
	return fmt.Sprintf("missing quote on line %d, column %d", e.Line, e.Column)
}

// InvalidSyntaxError reports a character outside the language's alphabet.
type InvalidSyntaxError struct {
	Line   int
	Column int
	Char   string
}

func (e *InvalidSyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax on line %d, column %d: the error starts with %q", e.Line, e.Column, e.Char)
}
