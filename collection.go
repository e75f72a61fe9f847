package pgrow

import (
	"database/sql"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// collect converts every child of v, preserving order. It returns nil for
// NULL and stops at the first child that fails to convert.
func collect[T any](v *Value, conv func(*Value) (T, error)) ([]T, error) {
	if v.IsNull() {
		return nil, nil
	}
	children, err := v.Values()
	if err != nil {
		return nil, err
	}
	out := make([]T, len(children))
	for i, c := range children {
		if out[i], err = conv(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Strings returns the text of every child. NULL children become "".
func (v *Value) Strings() ([]string, error) {
	return collect(v, func(c *Value) (string, error) {
		s, _ := c.Text()
		return s, nil
	})
}

// NullStrings returns the text of every child, keeping NULLs apart from
// empty strings.
func (v *Value) NullStrings() ([]sql.NullString, error) {
	return collect(v, func(c *Value) (sql.NullString, error) {
		s, ok := c.Text()
		return sql.NullString{String: s, Valid: ok}, nil
	})
}

// Int32s converts every child with Int32.
func (v *Value) Int32s() ([]int32, error) { return collect(v, (*Value).Int32) }

// Int64s converts every child with Int64.
func (v *Value) Int64s() ([]int64, error) { return collect(v, (*Value).Int64) }

// Float64s converts every child with Float64.
func (v *Value) Float64s() ([]float64, error) { return collect(v, (*Value).Float64) }

// Bools converts every child with Bool.
func (v *Value) Bools() ([]bool, error) { return collect(v, (*Value).Bool) }

// Dates converts every child with Date.
func (v *Value) Dates() ([]time.Time, error) { return collect(v, (*Value).Date) }

// Times converts every child with Time.
func (v *Value) Times() ([]time.Time, error) { return collect(v, (*Value).Time) }

// Timestamps converts every child with Timestamp.
func (v *Value) Timestamps() ([]time.Time, error) { return collect(v, (*Value).Timestamp) }

// BigInts converts every child with BigInt.
func (v *Value) BigInts() ([]*big.Int, error) { return collect(v, (*Value).BigInt) }

// ByteSlices converts every child with Bytes.
func (v *Value) ByteSlices() ([][]byte, error) { return collect(v, (*Value).Bytes) }

// Decimals converts every child with Decimal; NULL children are invalid
// NullDecimals.
func (v *Value) Decimals() ([]decimal.NullDecimal, error) {
	return collect(v, (*Value).Decimal)
}
