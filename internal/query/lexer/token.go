package lexer

import "fmt"

type TokenKind uint8

const (
	EOF TokenKind = iota

	// identifiers and constants
	Ident
	Integer
	Real
	String
	Date
	Time

	// punctuation
	Assign    // :=
	LParen    // (
	RParen    // )
	Semicolon // ;
	Comma     // ,

	// comparison operators
	Less         // <
	Greater      // >
	LessEqual    // <=
	GreaterEqual // >=
	Equal        // =
	NotEqual     // <>

	// keywords
	Select
	Project
	NJoin
	LeftOuter
	RightOuter
	FullOuter
	Product
	Intersect
	Union
	Difference
	And
	Or
)

var kindNames = [...]string{
	EOF:          "EOF",
	Ident:        "IDENTIFIER",
	Integer:      "INTEGER",
	Real:         "REAL",
	String:       "STRING",
	Date:         "DATE",
	Time:         "TIME",
	Assign:       "':='",
	LParen:       "'('",
	RParen:       "')'",
	Semicolon:    "';'",
	Comma:        "','",
	Less:         "'<'",
	Greater:      "'>'",
	LessEqual:    "'<='",
	GreaterEqual: "'>='",
	Equal:        "'='",
	NotEqual:     "'<>'",
	Select:       "select",
	Project:      "project",
	NJoin:        "njoin",
	LeftOuter:    "louter",
	RightOuter:   "router",
	FullOuter:    "fouter",
	Product:      "product",
	Intersect:    "intersect",
	Union:        "union",
	Difference:   "difference",
	And:          "and",
	Or:           "or",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// Keywords maps reserved words to their token kinds. Keywords are lower case.
var Keywords = map[string]TokenKind{
	"select":     Select,
	"project":    Project,
	"njoin":      NJoin,
	"louter":     LeftOuter,
	"router":     RightOuter,
	"fouter":     FullOuter,
	"product":    Product,
	"intersect":  Intersect,
	"union":      Union,
	"difference": Difference,
	"and":        And,
	"or":         Or,
}

// IsBinaryOperator reports whether k combines two relations.
func (k TokenKind) IsBinaryOperator() bool {
	return k >= NJoin && k <= Difference
}

// IsComparison reports whether k compares two operands inside a predicate.
func (k TokenKind) IsComparison() bool {
	return k >= Less && k <= NotEqual
}

// IsConstant reports whether k is a literal constant.
func (k TokenKind) IsConstant() bool {
	return k >= Integer && k <= Time
}

// Token is one lexical unit. Line and Column are 1-based and point at the
// token's first character.
type Token struct {
	Kind   TokenKind
	Value  string
	Line   int
	Column int
}

func (t Token) String() string {
	switch {
	case t.Kind == EOF:
		return "end of input"
	case t.Kind == String:
		return fmt.Sprintf("'%s'", t.Value)
	case t.Value != "":
		return t.Value
	}
	return t.Kind.String()
}
