package relation

import (
	"github.com/tuannm99/novarel/internal/record"
)

// Predicate decides whether a tuple belongs to a selection. It is bound to
// the schema of the relation it is applied to.
type Predicate func(t Tuple) (bool, error)

// Select keeps the tuples of r for which p holds. The schema is unchanged,
// so a predicate matching nothing yields an empty relation, not an error.
func Select(r *Relation, p Predicate) (*Relation, error) {
	b, err := newBuilder(r.schema)
	if err != nil {
		return nil, err
	}
	for _, t := range r.tuples {
		ok, err := p(t)
		if err != nil {
			return nil, err
		}
		if ok {
			b.add(t)
		}
	}
	return b.build(), nil
}

// Project reduces r to attrs, in the requested order. Tuples that become
// equal after the reduction collapse into one.
func Project(r *Relation, attrs []string) (*Relation, error) {
	schema := make([]string, len(attrs))
	cols := make([]int, len(attrs))
	for i, a := range attrs {
		n := NormalizeAttribute(a)
		j, ok := r.index[n]
		if !ok {
			return nil, &UnknownAttributeError{Attribute: a, Schema: r.Schema()}
		}
		schema[i] = n
		cols[i] = j
	}

	b, err := newBuilder(schema)
	if err != nil {
		return nil, err
	}
	for _, t := range r.tuples {
		out := make(Tuple, len(cols))
		for i, j := range cols {
			out[i] = t[j]
		}
		b.add(out)
	}
	return b.build(), nil
}

// NaturalJoin matches tuples of l and r on every attribute name they share.
// The result schema is l's schema followed by the attributes only r has.
// Relations with no attribute in common produce their Cartesian product.
func NaturalJoin(l, r *Relation) *Relation {
	return join(l, r, false, false)
}

// LeftOuterJoin is NaturalJoin plus every unmatched tuple of l, padded with
// nulls for the attributes only r has.
func LeftOuterJoin(l, r *Relation) *Relation {
	return join(l, r, true, false)
}

// RightOuterJoin is NaturalJoin plus every unmatched tuple of r, padded with
// nulls for the attributes only l has.
func RightOuterJoin(l, r *Relation) *Relation {
	return join(l, r, false, true)
}

// FullOuterJoin keeps unmatched tuples from both sides.
func FullOuterJoin(l, r *Relation) *Relation {
	return join(l, r, true, true)
}

// Product pairs every tuple of l with every tuple of r. Both schemas are
// concatenated, so an attribute present on both sides is a conflict.
func Product(l, r *Relation) (*Relation, error) {
	for _, a := range r.schema {
		if _, ok := l.index[a]; ok {
			return nil, &SchemaConflictError{Attribute: a}
		}
	}
	return join(l, r, false, false), nil
}

// Union returns the tuples in l or r. Both operands must share one schema.
func Union(l, r *Relation) (*Relation, error) {
	if err := ensureCompatible(l, r); err != nil {
		return nil, err
	}
	b, err := newBuilder(l.schema)
	if err != nil {
		return nil, err
	}
	for _, t := range l.tuples {
		b.add(t)
	}
	for _, t := range r.tuples {
		b.add(t)
	}
	return b.build(), nil
}

// Intersect returns the tuples in both l and r.
func Intersect(l, r *Relation) (*Relation, error) {
	return filterBy(l, r, true)
}

// Difference returns the tuples in l that are not in r.
func Difference(l, r *Relation) (*Relation, error) {
	return filterBy(l, r, false)
}

func filterBy(l, r *Relation, keep bool) (*Relation, error) {
	if err := ensureCompatible(l, r); err != nil {
		return nil, err
	}
	b, err := newBuilder(l.schema)
	if err != nil {
		return nil, err
	}
	for _, t := range l.tuples {
		if r.Contains(t) == keep {
			b.add(t)
		}
	}
	return b.build(), nil
}

func ensureCompatible(l, r *Relation) error {
	if !sameSchema(l.schema, r.schema) {
		return &SchemaMismatchError{Left: l.Schema(), Right: r.Schema()}
	}
	return nil
}

// fieldIndex locates one shared attribute: I in the left schema, J in the right.
type fieldIndex struct {
	I int
	J int
}

// attributeMap lists the attributes of h1 also present in h2, in h1 order.
func attributeMap(h1 []string, idx2 map[string]int) []fieldIndex {
	var m []fieldIndex
	for i, a := range h1 {
		if j, ok := idx2[a]; ok {
			m = append(m, fieldIndex{I: i, J: j})
		}
	}
	return m
}

// join is a nested loop join on the shared attributes of l and r.
func join(l, r *Relation, keepLeft, keepRight bool) *Relation {
	shared := attributeMap(l.schema, r.index)

	inShared := make(map[int]bool, len(shared))
	for _, f := range shared {
		inShared[f.J] = true
	}
	var rightOnly []int
	schema := append([]string(nil), l.schema...)
	for j, a := range r.schema {
		if !inShared[j] {
			rightOnly = append(rightOnly, j)
			schema = append(schema, a)
		}
	}

	// schema names are unique by construction: left names plus right names
	// the left side lacks
	b, _ := newBuilder(schema)

	matchedRight := make([]bool, len(r.tuples))
	for _, lt := range l.tuples {
		matched := false
		for j, rt := range r.tuples {
			if !joinable(lt, rt, shared) {
				continue
			}
			matched = true
			matchedRight[j] = true

			out := make(Tuple, 0, len(schema))
			out = append(out, lt...)
			for _, k := range rightOnly {
				out = append(out, rt[k])
			}
			b.add(out)
		}
		if !matched && keepLeft {
			out := make(Tuple, len(schema))
			copy(out, lt)
			// remaining positions stay the zero Value, which is Null
			b.add(out)
		}
	}

	if keepRight {
		for j, rt := range r.tuples {
			if matchedRight[j] {
				continue
			}
			out := make(Tuple, len(schema))
			for _, f := range shared {
				out[f.I] = rt[f.J]
			}
			for i, k := range rightOnly {
				out[len(l.schema)+i] = rt[k]
			}
			b.add(out)
		}
	}
	return b.build()
}

func joinable(lt, rt Tuple, shared []fieldIndex) bool {
	for _, f := range shared {
		if !record.Equal(lt[f.I], rt[f.J]) {
			return false
		}
	}
	return true
}
