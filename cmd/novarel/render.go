package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tuannm99/novarel/internal/query/interpreter"
	"github.com/tuannm99/novarel/internal/relation"
)

// printResult renders every assigned relation in assignment order.
func printResult(w io.Writer, res *interpreter.Result, nullMarker string) {
	for i, name := range res.Names {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "%s:\n", name)
		printRelation(w, res.Get(name), nullMarker)
	}
}

// printRelation writes r as an aligned text table:
//
//	name | dept
//	-----+-----
//	Leo  | IT
//	(1 rows)
func printRelation(w io.Writer, r *relation.Relation, nullMarker string) {
	cols := r.Schema()

	cells := make([][]string, r.Len())
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = utf8.RuneCountInString(c)
	}
	for i, t := range r.Tuples() {
		row := make([]string, len(cols))
		for j, v := range t {
			if v.IsNull() {
				row[j] = nullMarker
			} else {
				row[j] = v.String()
			}
			if n := utf8.RuneCountInString(row[j]); n > widths[j] {
				widths[j] = n
			}
		}
		cells[i] = row
	}

	printRow := func(values []string) {
		var b strings.Builder
		for i := range cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(padRight(values[i], widths[i]))
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	printRow(cols)

	seps := make([]string, len(cols))
	for i := range cols {
		seps[i] = strings.Repeat("-", widths[i])
	}
	_, _ = fmt.Fprintln(w, strings.Join(seps, "-+-"))

	for _, row := range cells {
		printRow(row)
	}
	_, _ = fmt.Fprintf(w, "(%d rows)\n", r.Len())
}

func padRight(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}
