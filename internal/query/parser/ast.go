package parser

import (
	"github.com/tuannm99/novarel/internal/query/lexer"
	"github.com/tuannm99/novarel/internal/record"
)

// Pos is a source position, 1-based.
type Pos struct {
	Line   int
	Column int
}

// Program is the parsed form of a query script: assignments in source order.
type Program struct {
	Statements []*Assignment
}

// Assignment binds the relation computed by Expr to Name.
type Assignment struct {
	Name string
	Expr Expr
	Pos  Pos
}

// ----- Relation expressions -----

// Expr is a relation-valued expression node.
type Expr interface {
	exprNode()
	Position() Pos
}

// RelationRef names a relation from the catalog or an earlier assignment.
type RelationRef struct {
	Name string
	Pos  Pos
}

// SelectExpr keeps the tuples of Input that satisfy Cond.
type SelectExpr struct {
	Cond  Cond
	Input Expr
	Pos   Pos
}

// ProjectExpr reduces Input to Attrs.
type ProjectExpr struct {
	Attrs []string
	Input Expr
	Pos   Pos
}

type BinaryOp uint8

const (
	OpNaturalJoin BinaryOp = iota
	OpLeftOuterJoin
	OpRightOuterJoin
	OpFullOuterJoin
	OpProduct
	OpIntersect
	OpUnion
	OpDifference
)

var binaryOps = map[lexer.TokenKind]BinaryOp{
	lexer.NJoin:      OpNaturalJoin,
	lexer.LeftOuter:  OpLeftOuterJoin,
	lexer.RightOuter: OpRightOuterJoin,
	lexer.FullOuter:  OpFullOuterJoin,
	lexer.Product:    OpProduct,
	lexer.Intersect:  OpIntersect,
	lexer.Union:      OpUnion,
	lexer.Difference: OpDifference,
}

func (op BinaryOp) String() string {
	for k, v := range binaryOps {
		if v == op {
			return k.String()
		}
	}
	return "?"
}

// BinaryExpr combines two relations.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Pos   Pos
}

func (*RelationRef) exprNode() {}
func (*SelectExpr) exprNode()  {}
func (*ProjectExpr) exprNode() {}
func (*BinaryExpr) exprNode()  {}

func (e *RelationRef) Position() Pos { return e.Pos }
func (e *SelectExpr) Position() Pos  { return e.Pos }
func (e *ProjectExpr) Position() Pos { return e.Pos }
func (e *BinaryExpr) Position() Pos  { return e.Pos }

// ----- Select conditions -----

// Cond is a boolean condition inside select.
type Cond interface {
	condNode()
}

type CmpOp uint8

const (
	CmpEqual CmpOp = iota
	CmpNotEqual
	CmpLess
	CmpGreater
	CmpLessEqual
	CmpGreaterEqual
)

var cmpOps = map[lexer.TokenKind]CmpOp{
	lexer.Equal:        CmpEqual,
	lexer.NotEqual:     CmpNotEqual,
	lexer.Less:         CmpLess,
	lexer.Greater:      CmpGreater,
	lexer.LessEqual:    CmpLessEqual,
	lexer.GreaterEqual: CmpGreaterEqual,
}

func (op CmpOp) String() string {
	return [...]string{"=", "<>", "<", ">", "<=", ">="}[op]
}

// Comparison compares two operands.
type Comparison struct {
	Left  Operand
	Op    CmpOp
	Right Operand
	Pos   Pos
}

type LogicalOp uint8

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

// Logical joins two conditions with and/or.
type Logical struct {
	Op    LogicalOp
	Left  Cond
	Right Cond
}

func (*Comparison) condNode() {}
func (*Logical) condNode()    {}

// Operand is one side of a comparison.
type Operand interface {
	operandNode()
}

// AttrOperand refers to an attribute of the selected relation.
type AttrOperand struct {
	Name string
	Pos  Pos
}

// ConstOperand is a literal value.
type ConstOperand struct {
	Value record.Value
	Pos   Pos
}

func (*AttrOperand) operandNode()  {}
func (*ConstOperand) operandNode() {}
