package pgrow

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/siilike/pgrow/internal/formatter"
	"github.com/siilike/pgrow/internal/token"
)

// Quoting selects how the text of a record field is written.
type Quoting int

const (
	// Raw text is written verbatim. It is meant for numbers and for text
	// that is already quoted for its position.
	Raw Quoting = iota
	// Quoted text is escaped and wrapped in quotes.
	Quoted
)

// TimeLayout is the layout SetTime writes timestamps with.
const TimeLayout = "2006-01-02 15:04:05.999999999Z07:00"

type field struct {
	index   int
	text    string
	null    bool
	quoting Quoting
}

func (f field) element() formatter.Element {
	return formatter.Element{Text: f.text, Null: f.null, Raw: f.quoting == Raw}
}

// Record builds the literal of a composite value. Fields are addressed by
// their position, counting from 1, and are written in ascending position
// order whatever the order they were set in. Setting a position twice
// replaces the earlier field.
//
// A Record is meant to be filled by a single goroutine and rendered once.
type Record struct {
	fields *btree.BTreeG[field]
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: btree.NewG(8, func(a, b field) bool { return a.index < b.index })}
}

func (r *Record) put(idx int, f field) {
	if idx < 1 {
		panic(fmt.Sprintf("pgrow: record field index %d is not positive", idx))
	}
	f.index = idx
	r.fields.ReplaceOrInsert(f)
}

// Len returns the number of fields that have been set.
func (r *Record) Len() int { return r.fields.Len() }

// SetNull sets field idx to NULL.
func (r *Record) SetNull(idx int) { r.put(idx, field{null: true}) }

// SetRaw sets field idx to text written verbatim.
func (r *Record) SetRaw(idx int, text string) { r.put(idx, field{text: text, quoting: Raw}) }

// SetString sets field idx to a quoted string.
func (r *Record) SetString(idx int, s string) { r.put(idx, field{text: s, quoting: Quoted}) }

// SetInt sets field idx to an integer.
func (r *Record) SetInt(idx int, n int64) { r.SetRaw(idx, strconv.FormatInt(n, 10)) }

// SetFloat sets field idx to a floating point number.
func (r *Record) SetFloat(idx int, f float64) { r.SetRaw(idx, formatFloat(f)) }

// SetBool sets field idx to a boolean.
func (r *Record) SetBool(idx int, b bool) { r.SetRaw(idx, formatBool(b)) }

// SetDecimal sets field idx to a decimal number.
func (r *Record) SetDecimal(idx int, d decimal.Decimal) { r.SetRaw(idx, d.String()) }

// SetTime sets field idx to a timestamp written with TimeLayout.
func (r *Record) SetTime(idx int, t time.Time) { r.SetString(idx, t.Format(TimeLayout)) }

// SetRecord sets field idx to a nested composite value. A nil or empty
// record sets NULL.
func (r *Record) SetRecord(idx int, rec *Record) {
	if rec == nil || rec.Len() == 0 {
		r.SetNull(idx)
		return
	}
	r.SetRaw(idx, formatter.Nest(rec.Render(), formatter.Record))
}

// SetRecords sets field idx to an array of composite values. A nil array
// sets NULL.
func (r *Record) SetRecords(idx int, a *Array) {
	if a == nil {
		r.SetNull(idx)
		return
	}
	r.SetRaw(idx, formatter.Nest(a.Render(), formatter.Record))
}

// SetStrings sets field idx to an array of strings. A nil slice sets NULL.
func (r *Record) SetStrings(idx int, ss []string) {
	if ss == nil {
		r.SetNull(idx)
		return
	}
	elems := make([]formatter.Element, len(ss))
	for i, s := range ss {
		elems[i] = formatter.Element{Text: s}
	}
	r.setArray(idx, elems)
}

// SetNullStrings sets field idx to an array of strings that may hold NULLs.
// A nil slice sets NULL.
func (r *Record) SetNullStrings(idx int, ss []sql.NullString) {
	if ss == nil {
		r.SetNull(idx)
		return
	}
	elems := make([]formatter.Element, len(ss))
	for i, s := range ss {
		elems[i] = formatter.Element{Text: s.String, Null: !s.Valid}
	}
	r.setArray(idx, elems)
}

// SetInts sets field idx to an array of integers. A nil slice sets NULL.
func (r *Record) SetInts(idx int, ns []int64) {
	if ns == nil {
		r.SetNull(idx)
		return
	}
	elems := make([]formatter.Element, len(ns))
	for i, n := range ns {
		elems[i] = formatter.Element{Text: strconv.FormatInt(n, 10), Raw: true}
	}
	r.setArray(idx, elems)
}

// SetFloats sets field idx to an array of floating point numbers. A nil
// slice sets NULL.
func (r *Record) SetFloats(idx int, fs []float64) {
	if fs == nil {
		r.SetNull(idx)
		return
	}
	elems := make([]formatter.Element, len(fs))
	for i, f := range fs {
		elems[i] = formatter.Element{Text: formatFloat(f), Raw: true}
	}
	r.setArray(idx, elems)
}

// setArray stores an array of scalars. The array literal sits one level
// deeper than the record, so it is quoted for the record here and stored
// raw: backslashes end up quadrupled and embedded quotes become \\"".
func (r *Record) setArray(idx int, elems []formatter.Element) {
	f := formatter.New(formatter.Array)
	for _, e := range elems {
		f.Write(e)
	}
	r.SetRaw(idx, formatter.Nest(f.String(), formatter.Record))
}

// Set sets field idx from a Go value, choosing quoting from its type:
// numbers and booleans are raw, strings and fmt.Stringers are quoted, nil
// is NULL, slices become nested arrays and *Record and *Array nest as
// composite values.
func (r *Record) Set(idx int, v any) error {
	switch v := v.(type) {
	case nil:
		r.SetNull(idx)
	case string:
		r.SetString(idx, v)
	case int:
		r.SetInt(idx, int64(v))
	case int32:
		r.SetInt(idx, int64(v))
	case int64:
		r.SetInt(idx, v)
	case float32:
		r.SetFloat(idx, float64(v))
	case float64:
		r.SetFloat(idx, v)
	case bool:
		r.SetBool(idx, v)
	case json.Number:
		r.SetRaw(idx, v.String())
	case decimal.Decimal:
		r.SetDecimal(idx, v)
	case time.Time:
		r.SetTime(idx, v)
	case sql.NullString:
		if !v.Valid {
			r.SetNull(idx)
		} else {
			r.SetString(idx, v.String)
		}
	case *Record:
		r.SetRecord(idx, v)
	case *Array:
		r.SetRecords(idx, v)
	case []string:
		r.SetStrings(idx, v)
	case []sql.NullString:
		r.SetNullStrings(idx, v)
	case []int64:
		r.SetInts(idx, v)
	case []float64:
		r.SetFloats(idx, v)
	case []any:
		if v == nil {
			r.SetNull(idx)
			return nil
		}
		elems := make([]formatter.Element, len(v))
		for i, e := range v {
			elem, err := arrayElement(e)
			if err != nil {
				return fmt.Errorf("pgrow: field %d element %d: %w", idx, i, err)
			}
			elems[i] = elem
		}
		r.setArray(idx, elems)
	case fmt.Stringer:
		r.SetString(idx, v.String())
	default:
		return fmt.Errorf("pgrow: unsupported type for record field %d: %T", idx, v)
	}
	return nil
}

func arrayElement(v any) (formatter.Element, error) {
	switch v := v.(type) {
	case nil:
		return formatter.Element{Null: true}, nil
	case string:
		return formatter.Element{Text: v}, nil
	case int:
		return formatter.Element{Text: strconv.Itoa(v), Raw: true}, nil
	case int64:
		return formatter.Element{Text: strconv.FormatInt(v, 10), Raw: true}, nil
	case float64:
		return formatter.Element{Text: formatFloat(v), Raw: true}, nil
	case bool:
		return formatter.Element{Text: formatBool(v), Raw: true}, nil
	case json.Number:
		return formatter.Element{Text: v.String(), Raw: true}, nil
	case fmt.Stringer:
		return formatter.Element{Text: v.String()}, nil
	}
	return formatter.Element{}, fmt.Errorf("unsupported array element type %T", v)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "t"
	}
	return "f"
}

// Render returns the literal of r. A record without fields renders as NULL.
func (r *Record) Render() string {
	if r.Len() == 0 {
		return token.Null
	}
	f := formatter.New(formatter.Record)
	r.fields.Ascend(func(fl field) bool {
		f.Write(fl.element())
		return true
	})
	return f.String()
}

func (r *Record) String() string { return r.Render() }

// Value implements the driver.Valuer interface. A record without fields is
// SQL NULL.
func (r *Record) Value() (driver.Value, error) {
	if r == nil || r.Len() == 0 {
		return nil, nil
	}
	return r.Render(), nil
}
