// Package relation implements immutable relation values and the relational
// algebra operators over them.
//
// A Relation is a set: tuples are deduplicated on construction and every
// operator returns a fresh Relation without touching its inputs. Attribute
// names are lower-cased and must be unique within a schema. Tuples keep the
// order in which they were first added, so results render predictably.
package relation

import (
	"errors"
	"strings"

	"github.com/tuannm99/novarel/internal/record"
)

var ErrEmptyAttribute = errors.New("relation: empty attribute name")

// Tuple is one row, aligned with its relation's schema.
type Tuple []record.Value

func (t Tuple) clone() Tuple {
	out := make(Tuple, len(t))
	copy(out, t)
	return out
}

// Relation is a named-attribute set of tuples. The zero value is not usable;
// build relations with New or through the operators.
type Relation struct {
	schema []string
	index  map[string]int
	tuples []Tuple
	keys   map[string]struct{}
}

// NormalizeAttribute returns the canonical spelling of an attribute name.
func NormalizeAttribute(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds a relation from a schema and rows. Attribute names are
// normalized; repeated rows collapse into one.
func New(schema []string, tuples ...Tuple) (*Relation, error) {
	norm := make([]string, len(schema))
	for i, a := range schema {
		norm[i] = NormalizeAttribute(a)
		if norm[i] == "" {
			return nil, ErrEmptyAttribute
		}
	}

	b, err := newBuilder(norm)
	if err != nil {
		return nil, err
	}
	for _, t := range tuples {
		if len(t) != len(norm) {
			return nil, &ArityError{Expected: len(norm), Found: len(t)}
		}
		b.add(t.clone())
	}
	return b.build(), nil
}

// Schema returns a copy of the attribute names in order.
func (r *Relation) Schema() []string {
	out := make([]string, len(r.schema))
	copy(out, r.schema)
	return out
}

// Degree is the number of attributes.
func (r *Relation) Degree() int { return len(r.schema) }

// Len is the number of tuples (the cardinality).
func (r *Relation) Len() int { return len(r.tuples) }

// Tuple returns a copy of the i-th tuple in insertion order.
func (r *Relation) Tuple(i int) Tuple { return r.tuples[i].clone() }

// Tuples returns copies of all tuples in insertion order.
func (r *Relation) Tuples() []Tuple {
	out := make([]Tuple, len(r.tuples))
	for i, t := range r.tuples {
		out[i] = t.clone()
	}
	return out
}

// Index returns the position of attr in the schema.
func (r *Relation) Index(attr string) (int, bool) {
	i, ok := r.index[NormalizeAttribute(attr)]
	return i, ok
}

// Contains reports whether t is a member of r.
func (r *Relation) Contains(t Tuple) bool {
	if len(t) != len(r.schema) {
		return false
	}
	_, ok := r.keys[record.Key(t)]
	return ok
}

// Equal reports whether r and o have the same schema (same order) and the
// same set of tuples. Tuple order is ignored.
func (r *Relation) Equal(o *Relation) bool {
	if !sameSchema(r.schema, o.schema) || len(r.keys) != len(o.keys) {
		return false
	}
	for k := range r.keys {
		if _, ok := o.keys[k]; !ok {
			return false
		}
	}
	return true
}

func (r *Relation) String() string {
	var b strings.Builder
	b.WriteString(formatSchema(r.schema))
	b.WriteString(" {")
	for i, t := range r.tuples {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, v := range t {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.String())
		}
		b.WriteByte(')')
	}
	b.WriteByte('}')
	return b.String()
}

// builder accumulates distinct tuples for a new relation. Tuples passed to
// add are owned by the builder afterwards.
type builder struct {
	rel *Relation
	buf []byte
}

func newBuilder(schema []string) (*builder, error) {
	index := make(map[string]int, len(schema))
	for i, a := range schema {
		if _, dup := index[a]; dup {
			return nil, &DuplicateAttributeError{Attribute: a}
		}
		index[a] = i
	}
	return &builder{
		rel: &Relation{
			schema: schema,
			index:  index,
			keys:   make(map[string]struct{}),
		},
	}, nil
}

func (b *builder) add(t Tuple) {
	b.buf = record.AppendKey(b.buf[:0], t)
	if _, seen := b.rel.keys[string(b.buf)]; seen {
		return
	}
	b.rel.keys[string(b.buf)] = struct{}{}
	b.rel.tuples = append(b.rel.tuples, t)
}

func (b *builder) build() *Relation {
	r := b.rel
	b.rel = nil
	return r
}

func sameSchema(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
