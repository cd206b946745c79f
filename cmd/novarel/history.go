package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// History keeps executed programs in its own file, one per line. At most
// max entries are held in memory; max <= 0 keeps everything.
type History struct {
	path  string
	max   int
	lines []string
}

func NewHistory(path string, max int) *History {
	return &History{path: path, max: max}
}

// Load reads the history file. A missing file is an empty history.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}
	data, err := os.ReadFile(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		h.add(line)
	}
	return nil
}

// Append records src in memory and appends it to the history file.
func (h *History) Append(src string) error {
	src = h.add(src)
	if src == "" || h.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = fmt.Fprintln(f, src)
	return err
}

// add stores the one-line form of src, dropping the oldest entries beyond
// max, and returns what was stored.
func (h *History) add(src string) string {
	src = compactOneLine(src)
	if src == "" {
		return ""
	}
	h.lines = append(h.lines, src)
	if h.max > 0 && len(h.lines) > h.max {
		h.lines = append(h.lines[:0], h.lines[len(h.lines)-h.max:]...)
	}
	return src
}

func (h *History) Lines() []string { return h.lines }

// Print writes the last n entries, or all of them when n <= 0.
func (h *History) Print(w io.Writer, n int) {
	if n <= 0 || n > len(h.lines) {
		n = len(h.lines)
	}
	start := len(h.lines) - n
	for i := start; i < len(h.lines); i++ {
		_, _ = fmt.Fprintf(w, "%5d  %s\n", i+1, h.lines[i])
	}
}

// compactOneLine folds a multi-line program onto one line. Whitespace runs
// collapse to a single space; quoted text is left alone.
func compactOneLine(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	var quote rune
	space := false
	for _, r := range s {
		if quote != 0 {
			b.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case ' ', '\t', '\r', '\n':
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		case '\'', '"':
			quote = r
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
