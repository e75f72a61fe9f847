package pgrow

import (
	"encoding/hex"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	timestampLength = len("2006-01-02 15:04:05")
)

var (
	timeLayouts      = []string{"15:04:05", "15:04"}
	timestampLayouts = []string{"2006-01-02 15:04:05", "2006-01-02 15:04", dateLayout}
)

// The scalar conversions below return the zero value of their type for
// NULL and a *CoercionError for text that does not parse.

// scalar returns the text of a non-NULL value.
func (v *Value) scalar() (string, bool, error) {
	if v.IsNull() {
		return "", false, nil
	}
	if err := v.load(); err != nil {
		return "", false, err
	}
	return v.text, true, nil
}

// Int32 parses v as a base 10 integer.
func (v *Value) Int32() (int32, error) {
	s, ok, err := v.scalar()
	if !ok {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, &CoercionError{Target: "int32", Text: s, Err: err}
	}
	return int32(n), nil
}

// Int64 parses v as a base 10 integer.
func (v *Value) Int64() (int64, error) {
	s, ok, err := v.scalar()
	if !ok {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &CoercionError{Target: "int64", Text: s, Err: err}
	}
	return n, nil
}

// Float64 parses v as a floating point number, including NaN and Infinity.
func (v *Value) Float64() (float64, error) {
	s, ok, err := v.scalar()
	if !ok {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &CoercionError{Target: "float64", Text: s, Err: err}
	}
	return f, nil
}

// Bool parses v as a boolean. PostgreSQL writes booleans as t and f.
func (v *Value) Bool() (bool, error) {
	s, ok, err := v.scalar()
	if !ok {
		return false, err
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, &CoercionError{Target: "bool", Text: s, Err: err}
	}
	return b, nil
}

// Date parses the leading YYYY-MM-DD of v, so a timestamp yields its date.
func (v *Value) Date() (time.Time, error) {
	s, ok, err := v.scalar()
	if !ok {
		return time.Time{}, err
	}
	if len(s) < len(dateLayout) {
		return time.Time{}, &CoercionError{Target: "date", Text: s, Err: errors.New("too short")}
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return time.Time{}, &CoercionError{Target: "date", Text: s, Err: err}
	}
	return t, nil
}

// Time parses v as a time of day, HH:MM with optional seconds and fraction.
func (v *Value) Time() (time.Time, error) {
	s, ok, err := v.scalar()
	if !ok {
		return time.Time{}, err
	}
	t, err := parseAny(timeLayouts, s)
	if err != nil {
		return time.Time{}, &CoercionError{Target: "time", Text: s, Err: err}
	}
	return t, nil
}

// Timestamp parses v as a UTC timestamp. Only the first 19 characters are
// read: fractional seconds and zone offsets are dropped.
func (v *Value) Timestamp() (time.Time, error) {
	s, ok, err := v.scalar()
	if !ok {
		return time.Time{}, err
	}
	in := s
	if len(in) > timestampLength {
		in = in[:timestampLength]
	}
	t, err := parseAny(timestampLayouts, in)
	if err != nil {
		return time.Time{}, &CoercionError{Target: "timestamp", Text: s, Err: err}
	}
	return t, nil
}

func parseAny(layouts []string, s string) (time.Time, error) {
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// BigInt parses v as an arbitrary precision integer; nil for NULL.
func (v *Value) BigInt() (*big.Int, error) {
	s, ok, err := v.scalar()
	if !ok {
		return nil, err
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &CoercionError{Target: "big.Int", Text: s, Err: errors.New("invalid integer")}
	}
	return n, nil
}

// Decimal parses v as an arbitrary precision decimal. The result is not
// valid for NULL.
func (v *Value) Decimal() (decimal.NullDecimal, error) {
	s, ok, err := v.scalar()
	if !ok {
		return decimal.NullDecimal{}, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, &CoercionError{Target: "decimal", Text: s, Err: err}
	}
	return decimal.NewNullDecimal(d), nil
}

// Bytes decodes a bytea value in either the hex (\x...) or the escape
// output format; nil for NULL.
func (v *Value) Bytes() ([]byte, error) {
	s, ok, err := v.scalar()
	if !ok {
		return nil, err
	}
	b, err := decodeBytea(s)
	if err != nil {
		return nil, &CoercionError{Target: "bytea", Text: s, Err: err}
	}
	return b, nil
}

func decodeBytea(s string) ([]byte, error) {
	if hexStr, ok := strings.CutPrefix(s, `\x`); ok {
		return hex.DecodeString(hexStr)
	}

	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b = append(b, c)
			continue
		}
		if i+1 < len(s) && s[i+1] == '\\' {
			b = append(b, '\\')
			i++
			continue
		}
		if i+3 >= len(s) {
			return nil, errors.New("truncated octal escape")
		}
		n, err := strconv.ParseUint(s[i+1:i+4], 8, 8)
		if err != nil {
			return nil, err
		}
		b = append(b, byte(n))
		i += 3
	}
	return b, nil
}
