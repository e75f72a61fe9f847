package pgrow

import (
	"database/sql"
	"database/sql/driver"

	"github.com/pkg/errors"
)

// Scanner returns a sql.Scanner that parses a column value into *dest.
// SQL NULL scans as Null. The literal is only classified while scanning, so
// a malformed literal is reported by the first accessor that decodes it.
//
//	var v *pgrow.Value
//	err := row.Scan(pgrow.Scanner(&v))
func Scanner(dest **Value) sql.Scanner {
	return valueScanner{dest: dest}
}

type valueScanner struct {
	dest **Value
}

func (s valueScanner) Scan(src any) error {
	switch src := src.(type) {
	case string:
		*s.dest = Parse(src)
	case []byte:
		// Drivers may reuse the buffer once Scan returns.
		*s.dest = Parse(string(src))
	case nil:
		*s.dest = Null
	default:
		return errors.Errorf("pgrow: cannot convert %T to a value", src)
	}
	return nil
}

var (
	_ driver.Valuer = (*Record)(nil)
	_ driver.Valuer = (*Array)(nil)
)
