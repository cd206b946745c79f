package interpreter

import (
	"fmt"

	"github.com/tuannm99/novarel/internal/query/parser"
	"github.com/tuannm99/novarel/internal/record"
	"github.com/tuannm99/novarel/internal/relation"
)

// operandFn extracts one comparison operand from a tuple.
type operandFn func(t relation.Tuple) record.Value

// compileCond binds a select condition to the schema of r. Attribute names
// are resolved once, up front, so an unknown attribute fails even when r
// has no tuples.
func compileCond(c parser.Cond, r *relation.Relation) (relation.Predicate, error) {
	switch n := c.(type) {
	case *parser.Logical:
		left, err := compileCond(n.Left, r)
		if err != nil {
			return nil, err
		}
		right, err := compileCond(n.Right, r)
		if err != nil {
			return nil, err
		}
		if n.Op == parser.LogicalAnd {
			return func(t relation.Tuple) (bool, error) {
				ok, err := left(t)
				if err != nil || !ok {
					return false, err
				}
				return right(t)
			}, nil
		}
		return func(t relation.Tuple) (bool, error) {
			ok, err := left(t)
			if err != nil || ok {
				return ok, err
			}
			return right(t)
		}, nil

	case *parser.Comparison:
		return compileComparison(n, r)

	default:
		return nil, fmt.Errorf("interpreter: unsupported condition %T", c)
	}
}

func compileComparison(n *parser.Comparison, r *relation.Relation) (relation.Predicate, error) {
	left, err := compileOperand(n.Left, r)
	if err != nil {
		return nil, err
	}
	right, err := compileOperand(n.Right, r)
	if err != nil {
		return nil, err
	}

	return func(t relation.Tuple) (bool, error) {
		a, b := left(t), right(t)
		if a.IsNull() || b.IsNull() {
			return false, nil
		}

		c, err := record.Compare(a, b)
		if err != nil {
			switch n.Op {
			case parser.CmpEqual:
				return false, nil
			case parser.CmpNotEqual:
				return true, nil
			}
			return false, &ComparisonError{
				Op:     n.Op.String(),
				Left:   a.Kind(),
				Right:  b.Kind(),
				Line:   n.Pos.Line,
				Column: n.Pos.Column,
			}
		}

		switch n.Op {
		case parser.CmpEqual:
			return c == 0, nil
		case parser.CmpNotEqual:
			return c != 0, nil
		case parser.CmpLess:
			return c < 0, nil
		case parser.CmpGreater:
			return c > 0, nil
		case parser.CmpLessEqual:
			return c <= 0, nil
		default:
			return c >= 0, nil
		}
	}, nil
}

func compileOperand(o parser.Operand, r *relation.Relation) (operandFn, error) {
	switch n := o.(type) {
	case *parser.AttrOperand:
		i, ok := r.Index(n.Name)
		if !ok {
			return nil, &relation.UnknownAttributeError{Attribute: n.Name, Schema: r.Schema()}
		}
		return func(t relation.Tuple) record.Value { return t[i] }, nil
	case *parser.ConstOperand:
		v := n.Value
		return func(relation.Tuple) record.Value { return v }, nil
	default:
		return nil, fmt.Errorf("interpreter: unsupported operand %T", o)
	}
}
