package pgrow

import (
	"database/sql"
	"errors"

	"github.com/siilike/pgrow/internal/lexer"
	"github.com/siilike/pgrow/internal/token"
)

// Parse classifies a literal as it is returned for a column value. Text
// wrapped in parentheses is a record, text wrapped in braces is an array and
// anything else is a scalar. The empty forms "", "()" and "{}" return Empty.
//
// Parse does not look inside records and arrays; their children are decoded
// the first time they are requested, which is also when a malformed literal
// is reported.
func Parse(text string) *Value {
	switch text {
	case "", "()", "{}":
		return Empty
	}
	return newValue(text)
}

// ParseNullString is like Parse but returns Null for an invalid ns.
func ParseNullString(ns sql.NullString) *Value {
	if !ns.Valid {
		return Null
	}
	return Parse(ns.String)
}

// newValue classifies text found inside another literal. Unlike Parse, the
// empty forms keep their text: "" is an empty scalar, "{}" an array without
// elements and "()" a record holding a single NULL field.
func newValue(text string) *Value {
	if text == "{}" {
		v := newDecoded(KindArray)
		v.text = text
		return v
	}
	v := &Value{text: text, kind: KindScalar}
	if n := len(text); n >= 2 {
		switch {
		case text[0] == '(' && text[n-1] == ')':
			v.kind = KindRecord
		case text[0] == '{' && text[n-1] == '}':
			v.kind = KindArray
		}
	}
	return v
}

func (v *Value) load() error {
	v.once.Do(func() { v.err = v.decode() })
	return v.err
}

// decode splits a record or array into its children. It must run once.
func (v *Value) decode() error {
	if v.decoded {
		return ErrAlreadyDecoded
	}
	v.decoded = true

	var mode lexer.Mode
	switch v.kind {
	case KindRecord:
		mode = lexer.Record
	case KindArray:
		mode = lexer.Array
	default:
		return nil
	}

	var children []*Value
	l := lexer.New(v.text[1:len(v.text)-1], mode)
	for {
		tok, err := l.NextToken()
		if err != nil {
			var lexErr *lexer.Error
			if errors.As(err, &lexErr) {
				return &SyntaxError{Literal: v.text, Offset: lexErr.Pos + 1, Msg: lexErr.Msg}
			}
			return err
		}
		switch tok.Type {
		case token.EOF:
			v.children = children
			return nil
		case token.NULL:
			children = append(children, Null)
		default:
			children = append(children, newValue(tok.Literal))
		}
	}
}
