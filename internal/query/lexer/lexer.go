// Package lexer turns query source text into tokens.
//
// Comments are either '%' to end of line or '/* ... */'. Keywords are
// lower case; anything else shaped like a word is an identifier. String
// literals use single or double quotes and may not span lines. A quoted
// string whose content is shaped like a date (YYYY-MM-DD, DD/MM/YYYY) or a
// time (HH:MM, HH:MM:SS) and valid as one is emitted as a Date or Time
// token; anything else stays a String. The same shapes are also accepted
// unquoted, where an invalid value is left for the parser to reject.
package lexer

import (
	"strings"
	"unicode"

	"github.com/tuannm99/novarel/internal/record"
)

type Lexer struct {
	sc *Scanner
}

func New(src string) *Lexer {
	return &Lexer{sc: NewScanner(src)}
}

// Tokenize lexes the whole input. The returned slice always ends with EOF.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == EOF {
			return out, nil
		}
	}
}

// Next returns the next token. Once the input is exhausted it returns an EOF
// token on every call.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return Token{}, err
	}

	line, col := l.sc.Pos()
	tok := Token{Line: line, Column: col}

	r := l.sc.Peek()
	switch {
	case r == EOFRune:
		tok.Kind = EOF
		return tok, nil
	case isIdentStart(r):
		return l.identifier(tok), nil
	case isDigit(r):
		return l.number(tok, "")
	case r == '-':
		l.sc.Advance()
		if !isDigit(l.sc.Peek()) {
			return Token{}, &InvalidSyntaxError{Line: line, Column: col, Char: "-"}
		}
		return l.number(tok, "-")
	case r == '\'' || r == '"':
		return l.quoted(tok)
	}

	l.sc.Advance()
	switch r {
	case ':':
		if l.sc.Peek() != '=' {
			return Token{}, &InvalidSyntaxError{Line: line, Column: col, Char: ":"}
		}
		l.sc.Advance()
		tok.Kind, tok.Value = Assign, ":="
	case '<':
		switch l.sc.Peek() {
		case '=':
			l.sc.Advance()
			tok.Kind, tok.Value = LessEqual, "<="
		case '>':
			l.sc.Advance()
			tok.Kind, tok.Value = NotEqual, "<>"
		default:
			tok.Kind, tok.Value = Less, "<"
		}
	case '>':
		if l.sc.Peek() == '=' {
			l.sc.Advance()
			tok.Kind, tok.Value = GreaterEqual, ">="
		} else {
			tok.Kind, tok.Value = Greater, ">"
		}
	case '=':
		tok.Kind, tok.Value = Equal, "="
	case '(':
		tok.Kind, tok.Value = LParen, "("
	case ')':
		tok.Kind, tok.Value = RParen, ")"
	case ';':
		tok.Kind, tok.Value = Semicolon, ";"
	case ',':
		tok.Kind, tok.Value = Comma, ","
	default:
		return Token{}, &InvalidSyntaxError{Line: line, Column: col, Char: string(r)}
	}
	return tok, nil
}

func (l *Lexer) skipSpaceAndComments() error {
	for {
		r := l.sc.Peek()
		switch {
		case r == EOFRune:
			return nil
		case unicode.IsSpace(r):
			l.sc.Advance()
		case r == '%':
			for r != '\n' && r != EOFRune {
				r = l.sc.Advance()
			}
		case r == '/':
			line, col := l.sc.Pos()
			l.sc.Advance()
			if l.sc.Peek() != '*' {
				return &InvalidSyntaxError{Line: line, Column: col, Char: "/"}
			}
			l.sc.Advance()
			l.skipBlockComment()
		default:
			return nil
		}
	}
}

// skipBlockComment consumes up to and including the closing "*/". An
// unterminated comment swallows the rest of the input.
func (l *Lexer) skipBlockComment() {
	for {
		switch l.sc.Advance() {
		case EOFRune:
			return
		case '*':
			if l.sc.Peek() == '/' {
				l.sc.Advance()
				return
			}
		}
	}
}

func (l *Lexer) identifier(tok Token) Token {
	var b strings.Builder
	for isIdentPart(l.sc.Peek()) {
		b.WriteRune(l.sc.Advance())
	}
	tok.Value = b.String()
	if kw, ok := Keywords[tok.Value]; ok {
		tok.Kind = kw
	} else {
		tok.Kind = Ident
	}
	return tok
}

// number lexes an integer or real literal. Unsigned digit runs followed by
// '-', '/' or ':' continue as a bare date or time literal.
func (l *Lexer) number(tok Token, sign string) (Token, error) {
	var b strings.Builder
	b.WriteString(sign)
	l.digits(&b)

	switch next := l.sc.Peek(); {
	case next == '.':
		line, col := l.sc.Pos()
		b.WriteRune(l.sc.Advance())
		if !isDigit(l.sc.Peek()) {
			return Token{}, &InvalidSyntaxError{Line: line, Column: col, Char: "."}
		}
		l.digits(&b)
		tok.Kind, tok.Value = Real, b.String()
		return tok, nil

	case sign == "" && (next == '-' || next == '/' || next == ':'):
		for r := l.sc.Peek(); isDigit(r) || r == next; r = l.sc.Peek() {
			b.WriteRune(l.sc.Advance())
		}
		text := b.String()
		switch {
		case record.LooksLikeDate(text):
			tok.Kind = Date
		case record.LooksLikeTime(text):
			tok.Kind = Time
		default:
			return Token{}, &InvalidSyntaxError{Line: tok.Line, Column: tok.Column, Char: text}
		}
		tok.Value = text
		return tok, nil
	}

	tok.Kind, tok.Value = Integer, b.String()
	return tok, nil
}

func (l *Lexer) digits(b *strings.Builder) {
	for isDigit(l.sc.Peek()) {
		b.WriteRune(l.sc.Advance())
	}
}

func (l *Lexer) quoted(tok Token) (Token, error) {
	quote := l.sc.Advance()
	var b strings.Builder
	for {
		r := l.sc.Peek()
		if r == EOFRune || r == '\n' {
			return Token{}, &MissingQuoteError{Line: tok.Line, Column: tok.Column}
		}
		l.sc.Advance()
		if r == quote {
			break
		}
		b.WriteRune(r)
	}

	tok.Value = b.String()
	tok.Kind = String
	if _, err := record.ParseDate(tok.Value); err == nil {
		tok.Kind = Date
	} else if _, err := record.ParseTime(tok.Value); err == nil {
		tok.Kind = Time
	}
	return tok, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool { return isIdentStart(r) || isDigit(r) }
