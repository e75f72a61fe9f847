package pgrow

import "fmt"

const defaultMaxDepth = 1000

// Option configures the operations that walk a whole tree, such as
// Interface and Dump.
type Option func(*options) error

type options struct {
	maxDepth int
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MaxDepth returns an Option that limits how deep a walk descends into
// nested records and arrays. This guards against stack exhaustion on
// adversarial input.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("pgrow: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
