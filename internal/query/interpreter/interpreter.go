// Package interpreter evaluates parsed programs against a catalog of
// relations by walking each statement's expression tree.
package interpreter

import (
	"fmt"

	"github.com/tuannm99/novarel/internal/query/parser"
	"github.com/tuannm99/novarel/internal/relation"
)

// Catalog resolves relation names supplied from outside the program.
type Catalog interface {
	Lookup(name string) (*relation.Relation, bool)
}

// MapCatalog is a Catalog backed by a map. Names are case-sensitive.
type MapCatalog map[string]*relation.Relation

func (m MapCatalog) Lookup(name string) (*relation.Relation, bool) {
	r, ok := m[name]
	return r, ok
}

// Result holds the relations assigned by a program.
type Result struct {
	Names     []string // assignment order
	Relations map[string]*relation.Relation
}

// Get returns the relation assigned to name, or nil.
func (r *Result) Get(name string) *relation.Relation {
	return r.Relations[name]
}

// Evaluate runs every statement of prog in order. Names assigned earlier in
// the program shadow catalog entries for the statements that follow.
//
// Evaluation is all or nothing: a duplicate assignment name fails before
// any statement runs, and the first failing statement aborts the program
// without returning the relations computed so far.
func Evaluate(prog *parser.Program, catalog Catalog) (*Result, error) {
	if err := checkDuplicates(prog); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = MapCatalog{}
	}

	in := &interp{
		catalog: catalog,
		scope:   make(map[string]*relation.Relation, len(prog.Statements)),
	}
	res := &Result{Relations: make(map[string]*relation.Relation, len(prog.Statements))}

	for _, st := range prog.Statements {
		rel, err := in.eval(st.Expr)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s (line %d): %w", st.Name, st.Pos.Line, err)
		}
		in.scope[st.Name] = rel
		res.Names = append(res.Names, st.Name)
		res.Relations[st.Name] = rel
	}
	return res, nil
}

func checkDuplicates(prog *parser.Program) error {
	seen := make(map[string]bool, len(prog.Statements))
	for _, st := range prog.Statements {
		if seen[st.Name] {
			return &DuplicateNameError{Name: st.Name, Line: st.Pos.Line, Column: st.Pos.Column}
		}
		seen[st.Name] = true
	}
	return nil
}

type interp struct {
	catalog Catalog
	scope   map[string]*relation.Relation
}

func (in *interp) eval(e parser.Expr) (*relation.Relation, error) {
	switch n := e.(type) {
	case *parser.RelationRef:
		return in.resolve(n)
	case *parser.SelectExpr:
		return in.evalSelect(n)
	case *parser.ProjectExpr:
		input, err := in.eval(n.Input)
		if err != nil {
			return nil, err
		}
		return relation.Project(input, n.Attrs)
	case *parser.BinaryExpr:
		return in.evalBinary(n)
	default:
		return nil, fmt.Errorf("interpreter: unsupported expression %T", e)
	}
}

func (in *interp) resolve(ref *parser.RelationRef) (*relation.Relation, error) {
	if r, ok := in.scope[ref.Name]; ok {
		return r, nil
	}
	if r, ok := in.catalog.Lookup(ref.Name); ok && r != nil {
		return r, nil
	}
	return nil, &UnresolvedError{Name: ref.Name, Line: ref.Pos.Line, Column: ref.Pos.Column}
}

func (in *interp) evalSelect(n *parser.SelectExpr) (*relation.Relation, error) {
	input, err := in.eval(n.Input)
	if err != nil {
		return nil, err
	}
	pred, err := compileCond(n.Cond, input)
	if err != nil {
		return nil, err
	}
	return relation.Select(input, pred)
}

func (in *interp) evalBinary(n *parser.BinaryExpr) (*relation.Relation, error) {
	left, err := in.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case parser.OpNaturalJoin:
		return relation.NaturalJoin(left, right), nil
	case parser.OpLeftOuterJoin:
		return relation.LeftOuterJoin(left, right), nil
	case parser.OpRightOuterJoin:
		return relation.RightOuterJoin(left, right), nil
	case parser.OpFullOuterJoin:
		return relation.FullOuterJoin(left, right), nil
	case parser.OpProduct:
		return relation.Product(left, right)
	case parser.OpUnion:
		return relation.Union(left, right)
	case parser.OpIntersect:
		return relation.Intersect(left, right)
	case parser.OpDifference:
		return relation.Difference(left, right)
	default:
		return nil, fmt.Errorf("interpreter: unsupported operator %v", n.Op)
	}
}
