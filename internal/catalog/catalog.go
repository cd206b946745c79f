// Package catalog loads named relations from YAML documents.
//
//	relations:
//	  - name: employee
//	    schema: [name, dept]
//	    tuples:
//	      - [Ana, Sales]
//	      - [Leo, IT]
package catalog

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/tuannm99/novarel/internal/record"
	"github.com/tuannm99/novarel/internal/relation"
)

var (
	ErrInvalidName   = errors.New("catalog: invalid relation name")
	ErrDuplicateName = errors.New("catalog: duplicate relation name")
	ErrNotScalar     = errors.New("catalog: value is not a scalar")
)

var nameRe = regexp.MustCompile(`^[a-z_][a-zA-Z0-9_]*$`)

// Document is the on-disk layout of a catalog file.
type Document struct {
	Relations []RelationDoc `yaml:"relations"`
}

// RelationDoc describes one relation. Cells are kept as nodes so the YAML
// tag decides the value kind.
type RelationDoc struct {
	Name   string        `yaml:"name"`
	Schema []string      `yaml:"schema"`
	Tuples [][]yaml.Node `yaml:"tuples"`
}

// Load reads and parses the catalog file at path.
func Load(path string) (map[string]*relation.Relation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	rels, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rels, nil
}

// Parse decodes a catalog document.
func Parse(data []byte) (map[string]*relation.Relation, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make(map[string]*relation.Relation, len(doc.Relations))
	for _, rd := range doc.Relations {
		if !nameRe.MatchString(rd.Name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, rd.Name)
		}
		if _, ok := out[rd.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, rd.Name)
		}
		rel, err := rd.build()
		if err != nil {
			return nil, fmt.Errorf("relation %s: %w", rd.Name, err)
		}
		out[rd.Name] = rel
	}
	return out, nil
}

func (rd *RelationDoc) build() (*relation.Relation, error) {
	tuples := make([]relation.Tuple, 0, len(rd.Tuples))
	for i, row := range rd.Tuples {
		if len(row) != len(rd.Schema) {
			return nil, fmt.Errorf("tuple %d: %w", i+1,
				&relation.ArityError{Expected: len(rd.Schema), Found: len(row)})
		}
		t := make(relation.Tuple, len(row))
		for j := range row {
			v, err := scalar(&row[j])
			if err != nil {
				return nil, fmt.Errorf("tuple %d, %s: %w", i+1, rd.Schema[j], err)
			}
			t[j] = v
		}
		tuples = append(tuples, t)
	}
	return relation.New(rd.Schema, tuples...)
}

// explicitStr marks scalars the author wrote as strings on purpose.
const explicitStr = yaml.TaggedStyle | yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle |
	yaml.LiteralStyle | yaml.FoldedStyle

// scalar maps a YAML scalar onto a Value: ints and floats keep their kind,
// null is Null, quoted or !!str tagged text stays Text and any other plain
// scalar is classified by record.ParseLiteral.
func scalar(n *yaml.Node) (record.Value, error) {
	if n.Kind != yaml.ScalarNode {
		return record.Value{}, fmt.Errorf("line %d: %w", n.Line, ErrNotScalar)
	}

	tag := n.ShortTag()
	if tag == "!!str" && n.Style&explicitStr != 0 {
		return record.Text(n.Value), nil
	}

	switch tag {
	case "!!null":
		return record.Null(), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return record.Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return record.Int(i), nil
	case "!!float":
		return record.ParseReal(n.Value)
	default:
		return record.ParseLiteral(n.Value), nil
	}
}
