package main

import (
	"bufio"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/siilike/pgrow"
)

// decodeCommand prints the decoded tree of each literal.
type decodeCommand struct {
	cli      *cli
	literals []string
	format   string
}

func (cmd *decodeCommand) run(_ *kingpin.ParseContext) error {
	literals := cmd.literals
	if len(literals) == 0 {
		var err error
		if literals, err = readLines(cmd.cli); err != nil {
			return err
		}
	}

	failed := 0
	for _, lit := range literals {
		out, err := cmd.decode(lit)
		if err != nil {
			level.Error(cmd.cli.logger).Log("msg", "failed to decode literal", "literal", lit, "err", err)
			failed++
			continue
		}
		fmt.Fprintln(cmd.cli.stdout, out)
	}
	level.Debug(cmd.cli.logger).Log("msg", "decoded literals", "total", len(literals), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d literals failed to decode", failed, len(literals))
	}
	return nil
}

func (cmd *decodeCommand) decode(lit string) (string, error) {
	v := pgrow.Parse(lit)
	if cmd.format == "tree" {
		out, err := v.Dump(cmd.cli.options()...)
		// Dump ends every node with a newline and Fprintln adds one more.
		if len(out) > 0 {
			out = out[:len(out)-1]
		}
		return out, err
	}
	tree, err := v.Interface(cmd.cli.options()...)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(tree)
	if err != nil {
		return "", errors.Wrap(err, "marshal decoded tree")
	}
	return string(b), nil
}

func readLines(c *cli) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(c.stdin)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read literals from stdin")
	}
	return lines, nil
}

func addDecodeCommand(app *kingpin.Application, c *cli) {
	cmd := &decodeCommand{cli: c}
	decode := app.Command("decode", "Decode literals into JSON or a tree dump. Reads one literal per line from stdin when none are given.").Action(cmd.run)
	decode.Flag("format", "Output format.").Default("json").EnumVar(&cmd.format, "json", "tree")
	decode.Arg("literal", "Literals to decode.").StringsVar(&cmd.literals)
}
