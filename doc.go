/*
Package pgrow reads and writes the text form PostgreSQL uses for composite
(row) values and arrays.

Decoding starts from the text of a column:

	v := pgrow.Parse(`(42,"hello ""world""","{1,2,3}")`)
	f, err := v.Field(3)
	if err != nil {
		// malformed literal
	}
	ids, err := f.Int64s() // [1 2 3]

Parse only classifies the literal. The fields of a record and the elements
of an array are split out the first time they are asked for, and every level
of a nested value is decoded on its own, so reading the first field of a
large row does not pay for the rest of it. Values are safe to share between
goroutines once created.

A record field holding an array or another record is always quoted, as
PostgreSQL writes it. SQL NULL is represented by the Null value at every
level and the empty literals "", "()" and "{}" all decode to Empty; nested
inside another literal they keep their text. Scalars carry their text;
Int64, Decimal, Timestamp and the other accessors convert it and return the
zero value for NULL.

Encoding goes the other way. A Record collects fields by position and
renders them in order; an Array holds records and renders an array literal
suitable as a parameter of an array-of-composite type:

	rec := pgrow.NewRecord()
	rec.SetInt(1, 42)
	rec.SetString(2, `say "hi"`)
	rec.SetStrings(3, []string{"a", "b"})

	arr := pgrow.NewArray("public.item").Append(rec)
	_, err := db.Exec("SELECT process($1::"+arr.TypeName()+"[])", arr)

Each nesting level doubles the escaping of the levels inside it; the
encoders apply it so callers pass plain text.
*/
package pgrow
