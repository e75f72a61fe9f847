package pgrow_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/siilike/pgrow"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"r"}).
		AddRow(`(1,"a b")`).
		AddRow(nil).
		AddRow([]byte("{x,y}")).
		AddRow("")
	mock.ExpectQuery("SELECT r FROM t").WillReturnRows(rows)

	res, err := db.Query("SELECT r FROM t")
	require.NoError(t, err)
	defer res.Close()

	var got []*pgrow.Value
	for res.Next() {
		var v *pgrow.Value
		require.NoError(t, res.Scan(pgrow.Scanner(&v)))
		got = append(got, v)
	}
	require.NoError(t, res.Err())
	require.Len(t, got, 4)

	require.Equal(t, []string{"1", "a b"}, texts(t, got[0]))
	require.Same(t, pgrow.Null, got[1])
	require.Equal(t, pgrow.KindArray, got[2].Kind())
	require.Equal(t, []string{"x", "y"}, texts(t, got[2]))
	require.Same(t, pgrow.Empty, got[3])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScannerUnsupportedType(t *testing.T) {
	var v *pgrow.Value
	err := pgrow.Scanner(&v).Scan(42)
	require.EqualError(t, err, "pgrow: cannot convert int to a value")
	require.Nil(t, v)
}

func TestValuerParameters(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	rec := pgrow.NewRecord()
	rec.SetInt(1, 1)
	rec.SetString(2, "a")
	arr := pgrow.NewArray("public.item").Append(rec)

	query := "SELECT process($1::" + arr.ArrayTypeName() + ", $2)"
	require.Equal(t, "SELECT process($1::_item, $2)", query)

	mock.ExpectExec(query).
		WithArgs(`{"(1,\"a\")"}`, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = db.Exec(query, arr, pgrow.NewRecord())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
