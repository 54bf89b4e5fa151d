package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/wmd/lang"
	"github.com/ardnew/wmd/log"
	"github.com/ardnew/wmd/pkg"
)

// formatter is implemented by [lang.Tokens] and [lang.Program].
type formatter interface {
	Format(ctx context.Context, w io.Writer) error
	FormatJSON(ctx context.Context, w io.Writer, indent int) error
	FormatYAML(ctx context.Context, w io.Writer, indent int) error
}

// Output format names accepted by the tokens and ast commands. The native
// format is "text" for tokens and "sexpr" for syntax trees.
const (
	formatText  = "text"
	formatSExpr = "sexpr"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// write renders f to w in the named format.
func write(
	ctx context.Context,
	w io.Writer,
	f formatter,
	format string,
	indent int,
) error {
	switch format {
	case formatText, formatSExpr:
		if err := f.Format(ctx, w); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

	case formatJSON:
		if err := f.FormatJSON(ctx, w, indent); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

	case formatYAML:
		if err := f.FormatYAML(ctx, w, indent); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

	default:
		return pkg.ErrInvalidFormat.Wrapf("%q", format)
	}

	return nil
}

// readSource reads the single source identified by name, which may be "-"
// for stdin.
func readSource(ctx context.Context, name string) (string, error) {
	srcs := newSourceFiles()

	if err := srcs.add(searchPathFrom(ctx), name); err != nil {
		return "", err
	}
	defer srcs.Close()

	var (
		src string
		err error
	)

	for name, reader := range srcs.All() {
		src, err = lang.ReadSource(reader)
		if err != nil {
			return "", readError(name, err)
		}
	}

	return src, nil
}

// readError wraps a failure reading the named source.
func readError(name string, err error) error {
	if name == stdinSource {
		return pkg.ErrReadStdin.Wrap(err)
	}

	return pkg.ErrReadInput.Wrap(fmt.Errorf("%s: %w", name, err))
}

// Tokens prints the token stream of a source.
type Tokens struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})."                                  short:"f"`
	Filter string `                                     help:"Print only tokens for which this expression is true."         placeholder:"EXPR"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output (0 for compact)." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the tokens command.
//
// Tokens are printed even when the source has lexical errors, which are
// reported on stderr.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var filter *lang.TokenFilter

	if t.Filter != "" {
		filter, err = lang.CompileTokenFilter(t.Filter)
		if err != nil {
			return ErrTokenFilter.With(slog.String("filter", t.Filter)).Wrap(err)
		}
	}

	src, err := readSource(ctx, t.Source)
	if err != nil {
		return err
	}

	stdout, stderr := outputs(ctx)

	tokens, scanErr := lang.Scan(src, lang.NewWriterReporter(stderr),
		lang.WithLogger(log.Default()))

	list := lang.Tokens(tokens)
	if filter != nil {
		list, err = filter.Filter(list)
		if err != nil {
			return ErrTokenFilter.With(slog.String("filter", t.Filter)).Wrap(err)
		}
	}

	if err := write(ctx, stdout, list, t.Format, t.Indent); err != nil {
		return err
	}

	if scanErr != nil {
		return pkg.ErrProgram.Wrapf("%s", t.Source)
	}

	return nil
}

// AST prints the syntax tree of a source.
type AST struct {
	Format string `default:"sexpr" enum:"sexpr,json,yaml" help:"Output format (${enum})."                                  short:"f"`
	Indent int    `default:"2"                            help:"Indent width for JSON and YAML output (0 for compact)." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the ast command.
//
// Nothing is printed if the source has lexical or syntax errors.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(ctx, a.Source)
	if err != nil {
		return err
	}

	stdout, stderr := outputs(ctx)

	stmts, err := lang.Parse(src, lang.NewWriterReporter(stderr),
		lang.WithLogger(log.Default()))
	if err != nil {
		return pkg.ErrProgram.Wrapf("%s", a.Source)
	}

	return write(ctx, stdout, lang.Program(stmts), a.Format, a.Indent)
}
