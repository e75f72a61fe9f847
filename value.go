package pgrow

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/siilike/pgrow/internal/token"
)

// Kind is the tag of a decoded value.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindRecord
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindRecord:
		return "record"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Value is a node of a decoded literal. Its kind is fixed when the value is
// created; the children of records and arrays are decoded on first access
// and cached. A Value is safe for concurrent use.
type Value struct {
	text string
	kind Kind

	once     sync.Once
	decoded  bool
	children []*Value
	err      error
}

var (
	// Null is the value of SQL NULL at any nesting level.
	Null = newDecoded(KindNull)

	// Empty is the value of an empty literal: "", "()" or "{}". It has kind
	// KindRecord and no children, and stands in for an empty array too.
	// Nested empty forms are not Empty; they keep their text.
	Empty = newDecoded(KindRecord)
)

func newDecoded(k Kind) *Value {
	v := &Value{kind: k, decoded: true}
	v.once.Do(func() {})
	return v
}

// Kind returns the tag of v.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether v is SQL NULL.
func (v *Value) IsNull() bool { return v.kind == KindNull }

// Text returns the text of v and false if v is NULL. For records and
// arrays this is the undecoded literal.
func (v *Value) Text() (string, bool) {
	if v.IsNull() {
		return "", false
	}
	return v.text, true
}

// String returns the text of v, or NULL.
func (v *Value) String() string {
	if v.IsNull() {
		return token.Null
	}
	return v.text
}

// Values returns the children of a record or array in source order.
// Scalars and NULL have no children.
func (v *Value) Values() ([]*Value, error) {
	if err := v.load(); err != nil {
		return nil, err
	}
	return v.children, nil
}

// Len returns the number of children of v.
func (v *Value) Len() (int, error) {
	children, err := v.Values()
	return len(children), err
}

// Field returns the n-th child of v, counting from 1. A position past the
// last child yields Null, the same as a NULL field.
func (v *Value) Field(n int) (*Value, error) {
	children, err := v.Values()
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(children) {
		return Null, nil
	}
	return children[n-1], nil
}

// Equal reports whether v and o are both NULL or have the same text.
func (v *Value) Equal(o *Value) bool {
	if v == o {
		return true
	}
	if v == nil || o == nil {
		return false
	}
	if v.IsNull() || o.IsNull() {
		return v.IsNull() && o.IsNull()
	}
	return v.text == o.text
}

// Hash returns a hash of the text of v, consistent with Equal.
func (v *Value) Hash() uint64 {
	if v.IsNull() {
		return 0
	}
	return xxhash.Sum64String(v.text)
}
