package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novarel/internal/record"
)

func employees(t *testing.T) *Relation {
	return mustRel(t, []string{"name", "dept"},
		row("Ana", "Sales"),
		row("Leo", "IT"),
	)
}

func attrEquals(r *Relation, attr string, v record.Value) Predicate {
	i, _ := r.Index(attr)
	return func(t Tuple) (bool, error) {
		return record.Equal(t[i], v), nil
	}
}

func TestSelect_Matches(t *testing.T) {
	emp := employees(t)
	got, err := Select(emp, attrEquals(emp, "dept", record.Text("IT")))
	require.NoError(t, err)

	want := mustRel(t, []string{"name", "dept"}, row("Leo", "IT"))
	assert.True(t, want.Equal(got), "got %s", got)
}

func TestSelect_NoMatchKeepsSchema(t *testing.T) {
	emp := employees(t)
	got, err := Select(emp, attrEquals(emp, "dept", record.Text("HR")))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "dept"}, got.Schema())
	assert.Equal(t, 0, got.Len())
}

func TestSelect_PredicateErrorAborts(t *testing.T) {
	emp := employees(t)
	boom := assert.AnError
	_, err := Select(emp, func(Tuple) (bool, error) { return false, boom })
	require.ErrorIs(t, err, boom)
}

func TestProject_CollapsesDuplicates(t *testing.T) {
	r := mustRel(t, []string{"name", "dept"},
		row("Ana", "Sales"),
		row("Leo", "Sales"),
		row("Eva", "IT"),
	)
	got, err := Project(r, []string{"dept"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dept"}, got.Schema())
	assert.Equal(t, 2, got.Len())
}

func TestProject_OrderAndErrors(t *testing.T) {
	emp := employees(t)

	got, err := Project(emp, []string{"dept", "NAME"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dept", "name"}, got.Schema())
	assert.True(t, got.Contains(row("IT", "Leo")))

	_, err = Project(emp, []string{"salary"})
	var unknown *UnknownAttributeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "salary", unknown.Attribute)
	assert.Equal(t, []string{"name", "dept"}, unknown.Schema)

	_, err = Project(emp, []string{"name", "name"})
	var dup *DuplicateAttributeError
	require.ErrorAs(t, err, &dup)
}

func TestProject_Idempotent(t *testing.T) {
	emp := employees(t)
	once, err := Project(emp, []string{"name"})
	require.NoError(t, err)
	twice, err := Project(once, []string{"name"})
	require.NoError(t, err)
	assert.True(t, once.Equal(twice))
}

func TestSetOperators(t *testing.T) {
	a := mustRel(t, []string{"id"}, row(1), row(2))
	b := mustRel(t, []string{"id"}, row(2), row(3))

	u, err := Union(a, b)
	require.NoError(t, err)
	assert.True(t, mustRel(t, []string{"id"}, row(1), row(2), row(3)).Equal(u))

	i, err := Intersect(a, b)
	require.NoError(t, err)
	assert.True(t, mustRel(t, []string{"id"}, row(2)).Equal(i))

	d, err := Difference(a, b)
	require.NoError(t, err)
	assert.True(t, mustRel(t, []string{"id"}, row(1)).Equal(d))

	d2, err := Difference(b, a)
	require.NoError(t, err)
	assert.True(t, mustRel(t, []string{"id"}, row(3)).Equal(d2))

	u2, err := Union(b, a)
	require.NoError(t, err)
	assert.True(t, u.Equal(u2))

	i2, err := Intersect(b, a)
	require.NoError(t, err)
	assert.True(t, i.Equal(i2))
}

func TestSetOperators_SchemaMismatch(t *testing.T) {
	a := mustRel(t, []string{"id", "name"})
	b := mustRel(t, []string{"name", "id"})
	c := mustRel(t, []string{"id"})

	ops := map[string]func(l, r *Relation) (*Relation, error){
		"union":      Union,
		"intersect":  Intersect,
		"difference": Difference,
	}
	for name, op := range ops {
		for _, other := range []*Relation{b, c} {
			_, err := op(a, other)
			var mm *SchemaMismatchError
			require.ErrorAs(t, err, &mm, name)
			assert.Equal(t, []string{"id", "name"}, mm.Left, name)
			assert.Equal(t, other.Schema(), mm.Right, name)
		}
	}
}

func TestNaturalJoin_SharedAttribute(t *testing.T) {
	emp := mustRel(t, []string{"name", "dept_id"},
		row("Ana", 1),
		row("Leo", 2),
		row("Eva", 3),
	)
	dept := mustRel(t, []string{"dept_id", "title"},
		row(1, "Sales"),
		row(2, "IT"),
		row(4, "HR"),
	)

	got := NaturalJoin(emp, dept)
	want := mustRel(t, []string{"name", "dept_id", "title"},
		row("Ana", 1, "Sales"),
		row("Leo", 2, "IT"),
	)
	assert.True(t, want.Equal(got), "got %s", got)
}

func TestNaturalJoin_NoSharedIsProduct(t *testing.T) {
	a := mustRel(t, []string{"x"}, row(1), row(2))
	b := mustRel(t, []string{"y"}, row("a"), row("b"))

	got := NaturalJoin(a, b)
	assert.Equal(t, []string{"x", "y"}, got.Schema())
	assert.Equal(t, 4, got.Len())

	p, err := Product(a, b)
	require.NoError(t, err)
	assert.True(t, p.Equal(got))
}

func TestNaturalJoin_Commutative(t *testing.T) {
	r := mustRel(t, []string{"a", "b"}, row(1, "x"), row(2, "y"), row(3, "y"))
	s := mustRel(t, []string{"b", "c"}, row("y", 10), row("x", 20), row("z", 30))

	rs := NaturalJoin(r, s)
	sr := NaturalJoin(s, r)

	reordered, err := Project(sr, rs.Schema())
	require.NoError(t, err)
	assert.True(t, rs.Equal(reordered))
	assert.Equal(t, 3, rs.Len())
}

func TestNaturalJoin_NullNeverMatches(t *testing.T) {
	a := mustRel(t, []string{"k", "x"}, row(nil, 1))
	b := mustRel(t, []string{"k", "y"}, row(nil, 2))
	assert.Equal(t, 0, NaturalJoin(a, b).Len())
}

func TestOuterJoins(t *testing.T) {
	emp := mustRel(t, []string{"name", "dept_id"},
		row("Ana", 1),
		row("Eva", 3),
	)
	dept := mustRel(t, []string{"dept_id", "title"},
		row(1, "Sales"),
		row(4, "HR"),
	)
	schema := []string{"name", "dept_id", "title"}

	left := LeftOuterJoin(emp, dept)
	assert.True(t, mustRel(t, schema,
		row("Ana", 1, "Sales"),
		row("Eva", 3, nil),
	).Equal(left), "left: %s", left)

	right := RightOuterJoin(emp, dept)
	assert.True(t, mustRel(t, schema,
		row("Ana", 1, "Sales"),
		row(nil, 4, "HR"),
	).Equal(right), "right: %s", right)

	full := FullOuterJoin(emp, dept)
	assert.True(t, mustRel(t, schema,
		row("Ana", 1, "Sales"),
		row("Eva", 3, nil),
		row(nil, 4, "HR"),
	).Equal(full), "full: %s", full)

	// padding is the null marker, not an empty literal
	for _, tup := range full.Tuples() {
		if v, ok := tup[0].AsText(); ok {
			assert.NotEmpty(t, v)
		}
	}
}

func TestProduct_Conflict(t *testing.T) {
	a := mustRel(t, []string{"id", "name"}, row(1, "a"))
	b := mustRel(t, []string{"name", "age"}, row("b", 3))

	_, err := Product(a, b)
	var conflict *SchemaConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "name", conflict.Attribute)
}

func TestOperators_DoNotMutateInputs(t *testing.T) {
	a := mustRel(t, []string{"id"}, row(1), row(2))
	b := mustRel(t, []string{"id"}, row(2), row(3))
	before := a.String()

	_, err := Union(a, b)
	require.NoError(t, err)
	_ = FullOuterJoin(a, b)
	_, err = Project(a, []string{"id"})
	require.NoError(t, err)

	assert.Equal(t, before, a.String())
	assert.Equal(t, 2, b.Len())
}
