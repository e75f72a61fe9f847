package pgrow

import (
	"fmt"
	"strconv"
	"strings"
)

// walkState tracks the remaining depth of a walk over a decoded tree.
type walkState struct {
	depth int
}

func (ws *walkState) enter() error {
	ws.depth--
	if ws.depth < 0 {
		return fmt.Errorf("pgrow: reached max recursion depth")
	}
	return nil
}

func (ws *walkState) leave() { ws.depth++ }

// Interface decodes the whole tree into nil (NULL), string (scalar) and
// []any (record or array) values.
func (v *Value) Interface(opts ...Option) (any, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	ws := &walkState{depth: o.maxDepth}
	return ws.toInterface(v)
}

func (ws *walkState) toInterface(v *Value) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindScalar:
		return v.text, nil
	}

	if err := ws.enter(); err != nil {
		return nil, err
	}
	defer ws.leave()

	children, err := v.Values()
	if err != nil {
		return nil, err
	}
	out := make([]any, len(children))
	for i, c := range children {
		if out[i], err = ws.toInterface(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Dump decodes the whole tree and returns an indented description of it,
// one node per line.
func (v *Value) Dump(opts ...Option) (string, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	ws := &walkState{depth: o.maxDepth}
	if err := ws.dump(&b, v, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (ws *walkState) dump(b *strings.Builder, v *Value, indent int) error {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(v.Kind().String())
	if v.Kind() == KindScalar {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(v.text))
	}
	b.WriteByte('\n')
	if v.Kind() == KindNull || v.Kind() == KindScalar {
		return nil
	}

	if err := ws.enter(); err != nil {
		return err
	}
	defer ws.leave()

	children, err := v.Values()
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := ws.dump(b, c, indent+1); err != nil {
			return err
		}
	}
	return nil
}
