package lang

import "github.com/ardnew/wmd/log"

// DefaultMaxDepth is the default limit on expression nesting accepted by the
// parser.
const DefaultMaxDepth = 256

// Option configures a [Lexer], [Parser], or [Interpreter].
type Option func(*options)

type options struct {
	logger   log.Logger
	maxDepth int
	env      *Environment
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger used for trace output.
// The zero [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMaxDepth sets the maximum expression nesting depth accepted by the
// parser. Values less than 1 restore [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}

// WithEnvironment sets the global scope of an [Interpreter], allowing
// bindings to be shared or pre-populated.
func WithEnvironment(env *Environment) Option {
	return func(o *options) { o.env = env }
}
