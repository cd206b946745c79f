package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/tuannm99/novarel/internal/engine"
)

const helpText = `meta commands:
  \q | quit | exit       quit
  \list                  list relations in the session
  \show <name>           print a relation
  \history               print history
  \help                  show help

programs:
  name := expression;    assign the result of an expression
  a statement ends with ';' (multi-line input waits for it)
  % starts a line comment, /* ... */ a block comment`

// shell executes programs and meta commands against one session.
type shell struct {
	sess       *engine.Session
	hist       *History
	out        io.Writer
	nullMarker string
}

// exec runs src and prints its results. Errors are returned unprinted.
func (s *shell) exec(src string) error {
	res, err := s.sess.Exec(src)
	if err != nil {
		return err
	}
	if len(res.Names) == 0 {
		_, _ = fmt.Fprintln(s.out, "OK")
		return nil
	}
	printResult(s.out, res, s.nullMarker)
	return nil
}

// meta handles a backslash command and reports whether the shell should
// exit.
func (s *shell) meta(line string) (quit bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case `\q`, "quit", "exit":
		return true
	case `\help`:
		_, _ = fmt.Fprintln(s.out, helpText)
	case `\history`:
		s.hist.Print(s.out, 50)
	case `\list`:
		names := s.sess.Relations()
		if len(names) == 0 {
			_, _ = fmt.Fprintln(s.out, "(no relations)")
		}
		for _, name := range names {
			r, _ := s.sess.Relation(name)
			_, _ = fmt.Fprintf(s.out, "%s %v (%d rows)\n", name, r.Schema(), r.Len())
		}
	case `\show`:
		if arg == "" {
			_, _ = fmt.Fprintln(s.out, `usage: \show <name>`)
			break
		}
		r, ok := s.sess.Relation(arg)
		if !ok {
			_, _ = fmt.Fprintf(s.out, "relation %q does not exist\n", arg)
			break
		}
		printRelation(s.out, r, s.nullMarker)
	default:
		_, _ = fmt.Fprintf(s.out, "unknown command: %s\n", cmd)
	}
	return false
}

func isMetaCommand(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, `\`) || line == "quit" || line == "exit"
}

// statementComplete reports whether buf ends with a ';' that is outside
// quotes and comments, ignoring trailing whitespace and comments.
func statementComplete(buf string) bool {
	var quote rune
	block, line := false, false
	done := false
	prev := rune(0)

	for _, r := range buf {
		switch {
		case line:
			if r == '\n' {
				line = false
			}
		case block:
			if prev == '*' && r == '/' {
				block = false
				r = 0
			}
		case quote != 0:
			if r == quote || r == '\n' {
				quote = 0
			}
			done = false
		case r == '%':
			line = true
		case prev == '/' && r == '*':
			block = true
			r = 0
		case r == '\'' || r == '"':
			quote = r
			done = false
		case r == ';':
			done = true
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
		case r == '/':
			// may open a block comment
		default:
			done = false
		}
		prev = r
	}
	return done && quote == 0 && !block
}
