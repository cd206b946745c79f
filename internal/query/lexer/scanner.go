package lexer

// EOFRune is returned by Peek and Advance once the input is exhausted.
const EOFRune rune = -1

// Scanner walks source text one character at a time and tracks the line and
// column of the next character. It never fails.
type Scanner struct {
	src  []rune
	pos  int
	line int
	col  int
}

func NewScanner(src string) *Scanner {
	return &Scanner{src: []rune(src), line: 1, col: 1}
}

// Peek returns the next character without consuming it.
func (s *Scanner) Peek() rune {
	if s.pos >= len(s.src) {
		return EOFRune
	}
	return s.src[s.pos]
}

// Advance consumes and returns the next character.
func (s *Scanner) Advance() rune {
	if s.pos >= len(s.src) {
		return EOFRune
	}
	r := s.src[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *Scanner) AtEnd() bool { return s.pos >= len(s.src) }

// Pos is the line and column of the character Peek would return.
func (s *Scanner) Pos() (line, col int) { return s.line, s.col }
