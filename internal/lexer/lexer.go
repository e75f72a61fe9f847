package lexer

import (
	"fmt"

	"github.com/siilike/pgrow/internal/token"
)

// Mode selects the quoting convention of the literal being scanned.
type Mode int

const (
	// Record bodies use CSV-style quote doubling.
	Record Mode = iota
	// Array bodies use backslash-escaped quotes and may nest braces.
	Array
)

// Error describes malformed input at a byte offset of the body.
type Error struct {
	Pos int
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Pos)
}

// Lexer splits the body of a record or array literal (the text between the
// outer delimiters) into element tokens.
type Lexer struct {
	input string
	mode  Mode
	pos   int
	done  bool
	buf   []byte
}

// New creates and returns a new Lexer over body.
func New(body string, mode Mode) *Lexer {
	return &Lexer{input: body, mode: mode}
}

// NextToken scans the next element. Once the body is exhausted it returns
// an EOF token.
func (l *Lexer) NextToken() (token.Token, error) {
	if l.done {
		return token.Token{Type: token.EOF, Pos: l.pos}, nil
	}
	start := l.pos
	if token.HasNullPrefix(l.input[start:]) {
		// The keyword and the separator after it are skipped without
		// looking at what that separator actually is.
		if start+len(token.Null) >= len(l.input) {
			l.pos = len(l.input)
			l.done = true
		} else {
			l.pos = start + len(token.Null) + 1
		}
		return token.Token{Type: token.NULL, Literal: token.Null, Pos: start}, nil
	}
	return l.readElement(start)
}

func (l *Lexer) readElement(start int) (token.Token, error) {
	in := l.input
	lit := span{in: in, buf: l.buf[:0]}
	depth := 0
	inQuotes := false
	quoted := false

	i := start
	for i < len(in) {
		c := in[i]
		if l.mode == Array && !inQuotes {
			switch c {
			case '{':
				depth++
			case '}':
				depth--
			}
		}

		switch {
		case c == '\\':
			if !inQuotes {
				return token.Token{}, &Error{Pos: i, Msg: "backslash outside quotes"}
			}
			run := countRun(in, i, '\\')
			odd := run%2 == 1
			if odd && i+run >= len(in) {
				return token.Token{}, &Error{Pos: i, Msg: "escape at end of input"}
			}
			if depth > 0 {
				// Nested arrays are copied through and decoded on access.
				if odd {
					run++
				}
				lit.add(i, i+run)
				i += run
				continue
			}
			lit.add(i, i+run/2)
			i += run
			if odd {
				lit.add(i, i+1)
				i++
			}
		case c == '"':
			if depth > 0 {
				inQuotes = !inQuotes
				lit.add(i, i+1)
				i++
				continue
			}
			quoted = true
			if l.mode == Array {
				inQuotes = !inQuotes
				i++
				continue
			}
			run := countRun(in, i, '"')
			j, n := i, run
			if !inQuotes {
				inQuotes = true
				j++
				n--
			}
			lit.add(j, j+n/2)
			if n%2 == 1 {
				inQuotes = false
			}
			i += run
		case c == ',' && !inQuotes && depth <= 0:
			if depth < 0 {
				return token.Token{}, &Error{Pos: i, Msg: "unbalanced braces"}
			}
			l.pos = i + 1
			return l.emit(start, &lit, quoted), nil
		default:
			lit.add(i, i+1)
			i++
		}
	}

	if inQuotes {
		return token.Token{}, &Error{Pos: start, Msg: "unterminated quoted element"}
	}
	if depth != 0 {
		return token.Token{}, &Error{Pos: start, Msg: "unbalanced braces"}
	}
	l.pos = len(in)
	l.done = true
	return l.emit(start, &lit, quoted), nil
}

func (l *Lexer) emit(start int, lit *span, quoted bool) token.Token {
	l.buf = lit.buf
	s := lit.String()
	switch {
	case quoted:
		return token.Token{Type: token.QUOTED, Literal: s, Pos: start}
	case s == "":
		return token.Token{Type: token.NULL, Pos: start}
	default:
		return token.Token{Type: token.UNQUOTED, Literal: s, Pos: start}
	}
}

func countRun(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// span accumulates the decoded literal. As long as every added range
// continues the previous one the literal is a substring of the input;
// the first gap copies it into an owned buffer.
type span struct {
	in         string
	start, end int
	owned      bool
	buf        []byte
}

func (s *span) add(from, to int) {
	if from >= to {
		return
	}
	switch {
	case s.owned:
		s.buf = append(s.buf, s.in[from:to]...)
	case s.start == s.end:
		s.start, s.end = from, to
	case from == s.end:
		s.end = to
	default:
		s.owned = true
		s.buf = append(s.buf[:0], s.in[s.start:s.end]...)
		s.buf = append(s.buf, s.in[from:to]...)
	}
}

func (s *span) String() string {
	if s.owned {
		return string(s.buf)
	}
	return s.in[s.start:s.end]
}
