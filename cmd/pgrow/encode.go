package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/siilike/pgrow"
)

// encodeCommand renders a literal from a JSON document.
type encodeCommand struct {
	cli      *cli
	input    string
	typeName string
}

func (cmd *encodeCommand) readInput() ([]any, error) {
	data := []byte(cmd.input)
	if cmd.input == "" {
		var err error
		if data, err = io.ReadAll(cmd.cli.stdin); err != nil {
			return nil, errors.Wrap(err, "read stdin")
		}
	}
	var doc []any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "input must be a JSON array")
	}
	return doc, nil
}

func (cmd *encodeCommand) runRecord(_ *kingpin.ParseContext) error {
	doc, err := cmd.readInput()
	if err != nil {
		return err
	}
	rec, err := recordFromJSON(doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.cli.stdout, rec.Render())
	return nil
}

func (cmd *encodeCommand) runArray(_ *kingpin.ParseContext) error {
	doc, err := cmd.readInput()
	if err != nil {
		return err
	}
	arr, err := arrayFromJSON(cmd.typeName, doc)
	if err != nil {
		return err
	}
	level.Debug(cmd.cli.logger).Log("msg", "encoded array", "elements", arr.Len(), "type", arr.TypeName(), "array_type", arr.ArrayTypeName())
	fmt.Fprintln(cmd.cli.stdout, arr.Render())
	return nil
}

// recordFromJSON builds a record with one field per element of fields.
// Strings are quoted, numbers and booleans raw and null is NULL. An array
// whose elements are all arrays or null is an array of records; any other
// array is an array of scalars.
func recordFromJSON(fields []any) (*pgrow.Record, error) {
	rec := pgrow.NewRecord()
	for i, f := range fields {
		idx := i + 1
		nested, ok := f.([]any)
		if !ok || !isRecordList(nested) {
			if err := rec.Set(idx, f); err != nil {
				return nil, err
			}
			continue
		}
		arr, err := arrayFromJSON("", nested)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", idx)
		}
		rec.SetRecords(idx, arr)
	}
	return rec, nil
}

func arrayFromJSON(typeName string, elems []any) (*pgrow.Array, error) {
	arr := pgrow.NewArray(typeName)
	for i, e := range elems {
		if e == nil {
			arr.AppendNull()
			continue
		}
		fields, ok := e.([]any)
		if !ok {
			return nil, errors.Errorf("element %d: expected a JSON array, got %T", i, e)
		}
		rec, err := recordFromJSON(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		arr.Append(rec)
	}
	return arr, nil
}

func isRecordList(elems []any) bool {
	seen := false
	for _, e := range elems {
		switch e.(type) {
		case nil:
		case []any:
			seen = true
		default:
			return false
		}
	}
	return seen
}

func addEncodeCommand(app *kingpin.Application, c *cli) {
	encode := app.Command("encode", "Encode JSON into a literal.")

	recCmd := &encodeCommand{cli: c}
	record := encode.Command("record", "Encode a JSON array into a record literal.").Action(recCmd.runRecord)
	record.Arg("json", "JSON array of fields. Read from stdin when omitted.").StringVar(&recCmd.input)

	arrCmd := &encodeCommand{cli: c}
	array := encode.Command("array", "Encode a JSON array of arrays into an array of records literal.").Action(arrCmd.runArray)
	array.Flag("type", "Element type name, optionally schema qualified.").Default("record").StringVar(&arrCmd.typeName)
	array.Arg("json", "JSON array of records. Read from stdin when omitted.").StringVar(&arrCmd.input)
}
