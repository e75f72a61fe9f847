package formatter

import (
	"strings"

	"github.com/siilike/pgrow/internal/token"
)

// Convention is the quoting convention of a nesting context.
type Convention int

const (
	// Record fields double embedded quotes.
	Record Convention = iota
	// Array elements escape embedded quotes with a backslash.
	Array
)

var (
	recordEscaper = strings.NewReplacer(`\`, `\\`, `"`, `""`)
	arrayEscaper  = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
)

// Escape escapes s for one level of the given convention.
func Escape(s string, c Convention) string {
	if c == Array {
		return arrayEscaper.Replace(s)
	}
	return recordEscaper.Replace(s)
}

// Quote escapes s and wraps it in delimiter quotes.
func Quote(s string, c Convention) string {
	return `"` + Escape(s, c) + `"`
}

// Nest quotes s once per level, innermost level first. Every level doubles
// the number of backslashes a literal backslash needs.
func Nest(s string, levels ...Convention) string {
	for _, c := range levels {
		s = Quote(s, c)
	}
	return s
}

// Element is one field of a record or one entry of an array.
type Element struct {
	Text string
	Null bool
	Raw  bool // written verbatim instead of quoted
}

// Formatter writes a record or array literal.
type Formatter struct {
	b    strings.Builder
	conv Convention
	n    int
}

// New returns a formatter for a literal of the given convention.
func New(c Convention) *Formatter {
	f := &Formatter{conv: c}
	if c == Array {
		f.b.WriteByte('{')
	} else {
		f.b.WriteByte('(')
	}
	return f
}

// Write appends an element.
func (f *Formatter) Write(e Element) {
	if f.n > 0 {
		f.b.WriteByte(',')
	}
	f.n++
	switch {
	case e.Null:
		// Records mark NULL with an empty field.
		if f.conv == Array {
			f.b.WriteString(token.Null)
		}
	case e.Raw:
		f.b.WriteString(e.Text)
	default:
		f.b.WriteString(Quote(e.Text, f.conv))
	}
}

// String closes the literal and returns it.
func (f *Formatter) String() string {
	if f.conv == Array {
		return f.b.String() + "}"
	}
	return f.b.String() + ")"
}
