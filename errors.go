package pgrow

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLiteral is matched by every *SyntaxError.
	ErrMalformedLiteral = errors.New("pgrow: malformed literal")

	// ErrAlreadyDecoded reports a second decode of the same value. It is a
	// programming error and never caused by input data.
	ErrAlreadyDecoded = errors.New("pgrow: value already decoded")
)

// A SyntaxError describes a record or array literal that violates the grammar.
type SyntaxError struct {
	Literal string // the literal whose body failed to decode
	Offset  int    // byte offset into Literal
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pgrow: malformed literal %q: %s at offset %d", e.Literal, e.Msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformedLiteral }

// A CoercionError represents a scalar whose text does not parse as the
// requested Go type.
type CoercionError struct {
	Target string
	Text   string
	Err    error
}

func (e *CoercionError) Error() string {
	return "pgrow: cannot convert " + fmt.Sprintf("%q", e.Text) + " to " + e.Target + ": " + e.Err.Error()
}

func (e *CoercionError) Unwrap() error { return e.Err }
