package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/wmd/lang"
	"github.com/ardnew/wmd/log"
)

// outputKind distinguishes evaluation results from diagnostics.
type outputKind int

const (
	outputValue outputKind = iota
	outputError
)

// output is one line printed in response to evaluated input.
type output struct {
	text string
	kind outputKind
}

// Session evaluates input against a persistent interpreter, so bindings made
// with let remain visible to later input.
type Session struct {
	interp *lang.Interpreter
	logger log.Logger
	diag   lang.Collector
}

// NewSession returns a session with an empty global scope.
func NewSession(logger log.Logger) *Session {
	return &Session{
		interp: lang.NewInterpreter(lang.WithLogger(logger)),
		logger: logger,
	}
}

// Eval runs src and returns, in order, the value of each expression statement
// and every diagnostic reported. Statements are not executed if src has
// syntax errors.
func (s *Session) Eval(ctx context.Context, src string) []output {
	var (
		out  []output
		seen int
	)

	s.diag.Reset()

	drain := func() {
		d := s.diag.Diagnostics()
		for _, diag := range d[seen:] {
			out = append(out, output{text: diag.String(), kind: outputError})
		}

		seen = len(d)
	}

	err := lang.Run(ctx, src, &s.diag, s.interp,
		func(stmt lang.Stmt, value lang.Literal, err error) bool {
			if err != nil {
				drain()

				return true
			}

			if _, ok := stmt.(*lang.ExprStmt); ok {
				out = append(out, output{text: value.String(), kind: outputValue})
			}

			return true
		},
		lang.WithLogger(s.logger),
	)

	drain()

	s.logger.TraceContext(ctx, "session eval",
		slog.Int("outputs", len(out)),
		slog.Bool("failed", err != nil),
	)

	return out
}

// Load runs src without printing values, writing each diagnostic to w.
// It reports whether src ran without errors.
func (s *Session) Load(ctx context.Context, src string, w io.Writer) bool {
	ok := true

	for _, o := range s.Eval(ctx, src) {
		if o.kind == outputError {
			ok = false

			fmt.Fprintln(w, o.text)
		}
	}

	return ok
}

// Names returns the bound global names in sorted order.
func (s *Session) Names() []string {
	return s.interp.Globals().Names()
}

// Vars returns "name = value" for every global binding, sorted by name.
func (s *Session) Vars() []string {
	globals := s.interp.Globals()

	vars := make([]string, 0, globals.Len())

	for name, v := range globals.All() {
		vars = append(vars, name+" = "+v.String())
	}

	return vars
}

// Reset discards every global binding.
func (s *Session) Reset() {
	s.interp.Reset()
}
