package lang

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrFilterCompile and ErrFilterEval classify token filter failures.
var (
	ErrFilterCompile = NewError("invalid token filter")
	ErrFilterEval    = NewError("token filter failed")
)

// TokenFilter is a compiled boolean predicate over tokens.
//
// The expression sees the variables type (string), lexeme (string),
// line (int), and literal (the token's literal payload or nil), e.g.
//
//	type == "Quantity" && line > 2
type TokenFilter struct {
	source  string
	program *vm.Program
}

// CompileTokenFilter compiles source as a [TokenFilter].
func CompileTokenFilter(source string) (*TokenFilter, error) {
	program, err := expr.Compile(source,
		expr.Env(filterEnv(Token{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return &TokenFilter{source: source, program: program}, nil
}

// Match reports whether t satisfies the filter.
func (f *TokenFilter) Match(t Token) (bool, error) {
	out, err := expr.Run(f.program, filterEnv(t))
	if err != nil {
		return false, ErrFilterEval.Wrap(err).
			With(slog.String("source", f.source), slog.Any("token", t))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Filter returns the tokens in ts that satisfy f, in order.
func (f *TokenFilter) Filter(ts Tokens) (Tokens, error) {
	var out Tokens

	for _, t := range ts {
		ok, err := f.Match(t)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, t)
		}
	}

	return out, nil
}

func filterEnv(t Token) map[string]any {
	return map[string]any{
		"type":    t.Type.String(),
		"lexeme":  t.Lexeme,
		"line":    t.Line,
		"literal": NativeValue(t.Literal),
	}
}
