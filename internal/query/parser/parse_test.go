package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novarel/internal/query/lexer"
	"github.com/tuannm99/novarel/internal/record"
)

func parseOne(t *testing.T, src string) *Assignment {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	return prog.Statements[0]
}

func requireSyntaxError(t *testing.T, src string) *SyntaxError {
	t.Helper()
	_, err := Parse(src)
	var se *SyntaxError
	require.ErrorAs(t, err, &se, "source: %s", src)
	return se
}

func TestParse_Empty(t *testing.T) {
	prog, err := Parse("  % nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, prog.Statements)
}

func TestParse_RelationRef(t *testing.T) {
	st := parseOne(t, "R := Employee;")
	assert.Equal(t, "R", st.Name)
	assert.Equal(t, Pos{Line: 1, Column: 1}, st.Pos)

	ref, ok := st.Expr.(*RelationRef)
	require.True(t, ok, "want *RelationRef, got %T", st.Expr)
	assert.Equal(t, "Employee", ref.Name)
	assert.Equal(t, Pos{Line: 1, Column: 6}, ref.Pos)
}

func TestParse_Select(t *testing.T) {
	st := parseOne(t, "R := select dept = 'IT' (Employee);")

	sel, ok := st.Expr.(*SelectExpr)
	require.True(t, ok, "want *SelectExpr, got %T", st.Expr)

	cmp, ok := sel.Cond.(*Comparison)
	require.True(t, ok, "want *Comparison, got %T", sel.Cond)
	assert.Equal(t, CmpEqual, cmp.Op)
	assert.Equal(t, &AttrOperand{Name: "dept", Pos: Pos{1, 13}}, cmp.Left)

	c, ok := cmp.Right.(*ConstOperand)
	require.True(t, ok)
	assert.Equal(t, record.KindText, c.Value.Kind())
	assert.Equal(t, "IT", c.Value.String())

	assert.Equal(t, &RelationRef{Name: "Employee", Pos: Pos{1, 26}}, sel.Input)
}

func TestParse_ConditionPrecedence(t *testing.T) {
	// a = 1 or b = 2 and c = 3  ==  a = 1 or (b = 2 and c = 3)
	st := parseOne(t, "R := select a = 1 or b = 2 and c = 3 (X);")
	sel := st.Expr.(*SelectExpr)

	or, ok := sel.Cond.(*Logical)
	require.True(t, ok)
	assert.Equal(t, LogicalOr, or.Op)
	_, leftIsCmp := or.Left.(*Comparison)
	assert.True(t, leftIsCmp)

	and, ok := or.Right.(*Logical)
	require.True(t, ok)
	assert.Equal(t, LogicalAnd, and.Op)

	// and/or chains associate left
	st = parseOne(t, "R := select a = 1 and b = 2 and c = 3 (X);")
	outer := st.Expr.(*SelectExpr).Cond.(*Logical)
	_, nested := outer.Left.(*Logical)
	assert.True(t, nested)
	_, last := outer.Right.(*Comparison)
	assert.True(t, last)
}

func TestParse_ComparisonOperandsAndLiterals(t *testing.T) {
	st := parseOne(t, "R := select 10 <= age and born > '1990-05-01' and at <> 12:30 and score >= -1.5 (P);")
	and := st.Expr.(*SelectExpr).Cond.(*Logical)

	first := and.Left.(*Logical).Left.(*Logical).Left.(*Comparison)
	assert.Equal(t, CmpLessEqual, first.Op)
	lit := first.Left.(*ConstOperand)
	n, ok := lit.Value.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(10), n)

	born := and.Left.(*Logical).Left.(*Logical).Right.(*Comparison)
	assert.Equal(t, CmpGreater, born.Op)
	assert.Equal(t, record.KindDate, born.Right.(*ConstOperand).Value.Kind())

	at := and.Left.(*Logical).Right.(*Comparison)
	assert.Equal(t, CmpNotEqual, at.Op)
	assert.Equal(t, record.KindTime, at.Right.(*ConstOperand).Value.Kind())

	score := and.Right.(*Comparison)
	assert.Equal(t, CmpGreaterEqual, score.Op)
	assert.Equal(t, "-1.5", score.Right.(*ConstOperand).Value.String())
}

func TestParse_QuotedInvalidDateIsText(t *testing.T) {
	st := parseOne(t, "R := select d = '2020-13-45' (A);")
	c := st.Expr.(*SelectExpr).Cond.(*Comparison).Right.(*ConstOperand)
	assert.Equal(t, record.KindText, c.Value.Kind())
	assert.Equal(t, "2020-13-45", c.Value.String())
}

func TestParse_Project(t *testing.T) {
	st := parseOne(t, "R := project name, dept (Employee);")
	proj, ok := st.Expr.(*ProjectExpr)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "dept"}, proj.Attrs)
	assert.Equal(t, "Employee", proj.Input.(*RelationRef).Name)
}

func TestParse_BinaryLeftAssociative(t *testing.T) {
	st := parseOne(t, "R := A union B njoin C;")

	top, ok := st.Expr.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpNaturalJoin, top.Op)
	assert.Equal(t, "C", top.Right.(*RelationRef).Name)

	inner, ok := top.Left.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpUnion, inner.Op)
	assert.Equal(t, "A", inner.Left.(*RelationRef).Name)
	assert.Equal(t, "B", inner.Right.(*RelationRef).Name)
}

func TestParse_ParenthesesOverrideAssociativity(t *testing.T) {
	st := parseOne(t, "R := A union (B njoin C);")
	top := st.Expr.(*BinaryExpr)
	assert.Equal(t, OpUnion, top.Op)
	assert.Equal(t, OpNaturalJoin, top.Right.(*BinaryExpr).Op)
}

func TestParse_UnaryBindsTighterThanBinary(t *testing.T) {
	st := parseOne(t, "R := select a = 1 (A) product project b (B);")
	top := st.Expr.(*BinaryExpr)
	assert.Equal(t, OpProduct, top.Op)
	_, ok := top.Left.(*SelectExpr)
	assert.True(t, ok)
	_, ok = top.Right.(*ProjectExpr)
	assert.True(t, ok)
}

func TestParse_PrefixBinaryForm(t *testing.T) {
	prog, err := Parse("R := union(A,B);\nS := intersect(A, B);\nT := difference(A, select id = 2 (B));")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 3)

	want := []BinaryOp{OpUnion, OpIntersect, OpDifference}
	for i, st := range prog.Statements {
		b, ok := st.Expr.(*BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, want[i], b.Op)
		assert.Equal(t, i+1, st.Pos.Line)
	}
	_, ok := prog.Statements[2].Expr.(*BinaryExpr).Right.(*SelectExpr)
	assert.True(t, ok)
}

func TestParse_AllBinaryOperators(t *testing.T) {
	tests := map[string]BinaryOp{
		"njoin":      OpNaturalJoin,
		"louter":     OpLeftOuterJoin,
		"router":     OpRightOuterJoin,
		"fouter":     OpFullOuterJoin,
		"product":    OpProduct,
		"intersect":  OpIntersect,
		"union":      OpUnion,
		"difference": OpDifference,
	}
	for kw, op := range tests {
		st := parseOne(t, "R := A "+kw+" B;")
		assert.Equal(t, op, st.Expr.(*BinaryExpr).Op, kw)
		assert.Equal(t, kw, op.String())
	}
}

func TestParse_MissingPredicate(t *testing.T) {
	se := requireSyntaxError(t, "R := select (X);")
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 13, se.Column)
	assert.Equal(t, "(", se.Found)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		src   string
		line  int
		col   int
		found string
	}{
		{"R = A;", 1, 3, "="},                          // missing :=
		{"R := (A union B;", 1, 16, ";"},               // missing )
		{"R := A", 1, 7, "end of input"},               // missing ;
		{"R := project (A);", 1, 14, "("},              // empty attribute list
		{"R := project a, (A);", 1, 17, "("},           // dangling comma
		{"R := select a (A);", 1, 15, "("},             // missing comparison operator
		{"R := select a = 1 and (A);", 1, 23, "("},     // missing comparison after and
		{"R := select a = 1 A;", 1, 19, "A"},           // missing ( before operand
		{"R := A union;", 1, 13, ";"},                  // missing right operand
		{"R := union(A B);", 1, 14, "B"},               // missing comma
		{":= A;", 1, 1, ":="},                          // missing name
		{"R := A;\nS := ;", 2, 6, ";"},                 // second statement
		{"R := select d = 2020-13-45 (A);", 1, 17, "2020-13-45"},   // invalid bare date
		{"R := A; B", 1, 10, "end of input"},           // missing :=
	}
	for _, tt := range tests {
		se := requireSyntaxError(t, tt.src)
		assert.Equal(t, tt.line, se.Line, tt.src)
		assert.Equal(t, tt.col, se.Column, tt.src)
		assert.Equal(t, tt.found, se.Found, tt.src)
		assert.NotEmpty(t, se.Expected, tt.src)
	}
}

func TestParse_LexerErrorsPassThrough(t *testing.T) {
	_, err := Parse("R := select a = 'open (X);")
	var mq *lexer.MissingQuoteError
	require.ErrorAs(t, err, &mq)

	_, err = Parse("R := A $ B;")
	var inv *lexer.InvalidSyntaxError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "$", inv.Char)
}

func TestSyntaxError_Message(t *testing.T) {
	se := requireSyntaxError(t, "R := select (X);")
	assert.Equal(t, "syntax error on line 1, column 13: expected attribute or constant, found (", se.Error())
}
