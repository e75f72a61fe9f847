package token

import "strings"

// Type is the type of a token.
type Type string

// Token represents a single element of a record or array literal body.
type Token struct {
	Type    Type
	Literal string
	Pos     int // byte offset of the element within the body
}

const (
	EOF Type = "EOF" // End of body

	// Elements
	NULL     Type = "NULL"     // empty run or the NULL keyword
	QUOTED   Type = "QUOTED"   // "hello, world"
	UNQUOTED Type = "UNQUOTED" // 42, {1,2}
)

// Null is the keyword marking a NULL element.
const Null = "NULL"

// HasNullPrefix reports whether an unquoted element starting at s is the
// NULL keyword. Only the prefix is checked, so NULLABLE matches as well.
func HasNullPrefix(s string) bool {
	return strings.HasPrefix(s, Null)
}
