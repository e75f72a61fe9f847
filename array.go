package pgrow

import (
	"cmp"
	"database/sql/driver"
	"fmt"
	"slices"
	"strings"

	"github.com/siilike/pgrow/internal/formatter"
	"github.com/siilike/pgrow/internal/token"
)

// Array builds the literal of an array of composite values, for example to
// bind as a parameter of type typename[].
type Array struct {
	typeName string
	entries  []*Record
}

// NewArray returns an empty array whose elements are of the named composite
// type. The name may be schema qualified.
func NewArray(typeName string) *Array {
	return &Array{typeName: typeName}
}

// Append adds records to the end of a. A nil record is NULL.
func (a *Array) Append(recs ...*Record) *Array {
	a.entries = append(a.entries, recs...)
	return a
}

// AppendNull adds a NULL element.
func (a *Array) AppendNull() *Array {
	a.entries = append(a.entries, nil)
	return a
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// IsEmpty reports whether a has no elements.
func (a *Array) IsEmpty() bool { return a.Len() == 0 }

// TypeName returns the element type name without its schema.
func (a *Array) TypeName() string {
	if i := strings.LastIndexByte(a.typeName, '.'); i >= 0 {
		return a.typeName[i+1:]
	}
	return a.typeName
}

// ArrayTypeName returns the name PostgreSQL gives the array type of the
// element type.
func (a *Array) ArrayTypeName() string { return "_" + a.TypeName() }

// Render returns the literal of a. A nil array renders as NULL and an array
// without elements as {}.
func (a *Array) Render() string {
	if a == nil {
		return token.Null
	}
	f := formatter.New(formatter.Array)
	for _, rec := range a.entries {
		if rec == nil || rec.Len() == 0 {
			f.Write(formatter.Element{Null: true})
			continue
		}
		f.Write(formatter.Element{Text: rec.Render()})
	}
	return f.String()
}

func (a *Array) String() string { return a.Render() }

// Value implements the driver.Valuer interface.
func (a *Array) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return a.Render(), nil
}

// MapArray returns an array holding a (key,value) record for every entry
// of m, ordered by key. Keys and values are written as quoted text.
func MapArray[K cmp.Ordered, V any](typeName string, m map[K]V) *Array {
	a := NewArray(typeName)
	for _, k := range sortedKeys(m) {
		rec := NewRecord()
		rec.SetString(1, fmt.Sprint(k))
		rec.SetString(2, fmt.Sprint(m[k]))
		a.Append(rec)
	}
	return a
}

// MultiMapArray returns an array holding a (key,{values}) record for every
// entry of m, ordered by key.
func MultiMapArray[K cmp.Ordered, V any](typeName string, m map[K][]V) *Array {
	a := NewArray(typeName)
	for _, k := range sortedKeys(m) {
		vs := make([]string, len(m[k]))
		for i, v := range m[k] {
			vs[i] = fmt.Sprint(v)
		}
		rec := NewRecord()
		rec.SetString(1, fmt.Sprint(k))
		rec.SetStrings(2, vs)
		a.Append(rec)
	}
	return a
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
