package pgrow_test

import (
	"strings"
	"testing"

	"github.com/siilike/pgrow"
	"github.com/siilike/pgrow/internal/testutil"
	"github.com/stretchr/testify/require"
)

var quoteHeavy = []string{"", `"`, `\`, `""`, `\\`, `\"`, `a"b`, `c\d`, "NULL", "{}", "()", "a,b", `{"x"}`, `("y")`}

func FuzzParse(f *testing.F) {
	files, err := testutil.Literals()
	if err != nil {
		f.Fatalf("failed to list seed files: %v", err)
	}
	for _, file := range files {
		data, err := testutil.ReadTestData(file)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", file, err)
		}
		f.Add(string(data))
	}
	for _, s := range quoteHeavy {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, text string) {
		// Malformed input must fail with an error, never a panic.
		v := pgrow.Parse(text)
		_, _ = v.Interface(pgrow.MaxDepth(64))
		_, _ = v.Dump(pgrow.MaxDepth(64))
	})
}

func FuzzRecordRoundTrip(f *testing.F) {
	for _, s := range quoteHeavy {
		f.Add(s, strings.Repeat(s, 3))
	}

	f.Fuzz(func(t *testing.T, a, b string) {
		r := pgrow.NewRecord()
		r.SetString(1, a)
		r.SetNull(2)
		r.SetString(3, b)

		v := pgrow.Parse(r.Render())
		require.Equal(t, pgrow.KindRecord, v.Kind())
		require.Equal(t, []string{a, "<nil>", b}, texts(t, v))
	})
}

func FuzzArrayRoundTrip(f *testing.F) {
	for _, s := range quoteHeavy {
		f.Add(s, s+`\`)
	}

	f.Fuzz(func(t *testing.T, a, b string) {
		rec := pgrow.NewRecord()
		rec.SetString(1, a)
		rec.SetString(2, b)
		arr := pgrow.NewArray("item").Append(rec).AppendNull()

		v := pgrow.Parse(arr.Render())
		require.Equal(t, pgrow.KindArray, v.Kind())

		children, err := v.Values()
		require.NoError(t, err)
		require.Len(t, children, 2)
		require.True(t, children[1].IsNull())
		require.Equal(t, []string{a, b}, texts(t, children[0]))
	})
}

func FuzzNestedArrayRoundTrip(f *testing.F) {
	for _, s := range quoteHeavy {
		f.Add(s, `"`+s+`\`, int64(len(s)))
	}

	f.Fuzz(func(t *testing.T, a, b string, n int64) {
		r := pgrow.NewRecord()
		r.SetInts(1, []int64{n, -n})
		r.SetStrings(2, []string{a, b})
		r.SetString(3, a)

		v := pgrow.Parse(r.Render())

		ints, err := field(t, r.Render(), 1).Int64s()
		require.NoError(t, err)
		require.Equal(t, []int64{n, -n}, ints)

		strs, err := field(t, r.Render(), 2).Strings()
		require.NoError(t, err)
		require.Equal(t, []string{a, b}, strs)

		third, err := v.Field(3)
		require.NoError(t, err)
		text, _ := third.Text()
		require.Equal(t, a, text)
	})
}
