// Package parser builds Programs from query source.
//
// Grammar, highest precedence first:
//
//	program    := { assignment ';' } EOF
//	assignment := IDENT ':=' expression
//	expression := term { binop term }
//	term       := '(' expression ')'
//	            | 'select' condition '(' expression ')'
//	            | 'project' IDENT { ',' IDENT } '(' expression ')'
//	            | binop '(' expression ',' expression ')'
//	            | IDENT
//	condition  := conj { 'or' conj }
//	conj       := comparison { 'and' comparison }
//	comparison := operand ( '=' | '<>' | '<' | '>' | '<=' | '>=' ) operand
//	operand    := IDENT | INTEGER | REAL | STRING | DATE | TIME
//
// All binary operators share one precedence tier and associate left.
package parser

import (
	"github.com/tuannm99/novarel/internal/query/lexer"
	"github.com/tuannm99/novarel/internal/record"
)

// Parse parses a whole query script. Lexical errors are returned unchanged;
// grammar violations are *SyntaxError. Nothing is returned on failure.
func Parse(src string) (*Program, error) {
	return New(lexer.New(src)).Parse()
}

type Parser struct {
	lex *lexer.Lexer
	tok lexer.Token // current lookahead
}

func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

func (p *Parser) Parse() (*Program, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	prog := &Program{}
	for p.tok.Kind != lexer.EOF {
		st, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon, "';'"); err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, st)
	}
	return prog, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) pos() Pos {
	return Pos{Line: p.tok.Line, Column: p.tok.Column}
}

func (p *Parser) unexpected(expected string) error {
	return &SyntaxError{
		Line:     p.tok.Line,
		Column:   p.tok.Column,
		Found:    p.tok.String(),
		Expected: expected,
	}
}

// expect consumes the current token if it has the given kind.
func (p *Parser) expect(kind lexer.TokenKind, what string) (lexer.Token, error) {
	if p.tok.Kind != kind {
		return lexer.Token{}, p.unexpected(what)
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *Parser) assignment() (*Assignment, error) {
	pos := p.pos()
	name, err := p.expect(lexer.Ident, "relation name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign, "':='"); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &Assignment{Name: name.Value, Expr: expr, Pos: pos}, nil
}

func (p *Parser) expression() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind.IsBinaryOperator() {
		pos, op := p.pos(), binaryOps[p.tok.Kind]
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) term() (Expr, error) {
	pos := p.pos()

	switch p.tok.Kind {
	case lexer.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil

	case lexer.Select:
		if err := p.advance(); err != nil {
			return nil, err
		}
		cond, err := p.condition()
		if err != nil {
			return nil, err
		}
		input, err := p.operandRelation()
		if err != nil {
			return nil, err
		}
		return &SelectExpr{Cond: cond, Input: input, Pos: pos}, nil

	case lexer.Project:
		if err := p.advance(); err != nil {
			return nil, err
		}
		attrs, err := p.attributes()
		if err != nil {
			return nil, err
		}
		input, err := p.operandRelation()
		if err != nil {
			return nil, err
		}
		return &ProjectExpr{Attrs: attrs, Input: input, Pos: pos}, nil

	case lexer.Ident:
		ref := &RelationRef{Name: p.tok.Value, Pos: pos}
		return ref, p.advance()
	}

	if p.tok.Kind.IsBinaryOperator() {
		return p.prefixBinary()
	}
	return nil, p.unexpected("relation expression")
}

// operandRelation parses the parenthesized input of select and project.
func (p *Parser) operandRelation() (Expr, error) {
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return e, nil
}

// prefixBinary parses the call form of a binary operator: union(A, B).
func (p *Parser) prefixBinary() (Expr, error) {
	pos, op := p.pos(), binaryOps[p.tok.Kind]
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	left, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Comma, "','"); err != nil {
		return nil, err
	}
	right, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}, nil
}

func (p *Parser) attributes() ([]string, error) {
	first, err := p.expect(lexer.Ident, "attribute name")
	if err != nil {
		return nil, err
	}
	attrs := []string{first.Value}
	for p.tok.Kind == lexer.Comma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.expect(lexer.Ident, "attribute name")
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, next.Value)
	}
	return attrs, nil
}

func (p *Parser) condition() (Cond, error) {
	left, err := p.conjunction()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == lexer.Or {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		left = &Logical{Op: LogicalOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) conjunction() (Cond, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == lexer.And {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &Logical{Op: LogicalAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) comparison() (Cond, error) {
	pos := p.pos()
	left, err := p.operand()
	if err != nil {
		return nil, err
	}
	op, ok := cmpOps[p.tok.Kind]
	if !ok {
		return nil, p.unexpected("comparison operator")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.operand()
	if err != nil {
		return nil, err
	}
	return &Comparison{Left: left, Op: op, Right: right, Pos: pos}, nil
}

func (p *Parser) operand() (Operand, error) {
	pos := p.pos()
	if p.tok.Kind == lexer.Ident {
		a := &AttrOperand{Name: p.tok.Value, Pos: pos}
		return a, p.advance()
	}
	if !p.tok.Kind.IsConstant() {
		return nil, p.unexpected("attribute or constant")
	}

	v, err := literal(p.tok)
	if err != nil {
		return nil, p.unexpected("valid " + p.tok.Kind.String() + " literal")
	}
	c := &ConstOperand{Value: v, Pos: pos}
	return c, p.advance()
}

func literal(tok lexer.Token) (record.Value, error) {
	switch tok.Kind {
	case lexer.Integer:
		return record.ParseInt(tok.Value)
	case lexer.Real:
		return record.ParseReal(tok.Value)
	case lexer.Date:
		return record.ParseDate(tok.Value)
	case lexer.Time:
		return record.ParseTime(tok.Value)
	default:
		return record.Text(tok.Value), nil
	}
}
