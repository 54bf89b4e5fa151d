package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/wmd/lang"
	"github.com/ardnew/wmd/log"
	"github.com/ardnew/wmd/pkg"
)

// Run evaluates programs and prints the value of each expression statement.
type Run struct {
	Files []string `arg:"" help:"Source file(s) or '-' for stdin." name:"file" optional:""`
}

// Run executes the run command.
//
// Sources given with the global --source flag are evaluated first, followed
// by the command's arguments, all sharing one interpreter so that bindings
// made by earlier sources are visible to later ones. With no sources at all,
// the program is read from stdin.
//
// A source with any syntax error runs none of its statements, not even the
// well-formed ones; its diagnostics are printed and the next source runs.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	srcs, err := openSources(ctx, r.Files...)
	if err != nil {
		return err
	}
	defer srcs.Close()

	stdout, stderr := outputs(ctx)

	var (
		logger   = log.Default()
		reporter = lang.NewWriterReporter(stderr)
		interp   = lang.NewInterpreter(lang.WithLogger(logger))
		failed   []error
	)

	for name, reader := range srcs.All() {
		src, err := lang.ReadSource(reader)
		if err != nil {
			return readError(name, err)
		}

		logger.DebugContext(ctx, "run source",
			slog.String("source", name),
			slog.Int("bytes", len(src)),
		)

		var werr error

		err = lang.Run(ctx, src, reporter, interp,
			func(stmt lang.Stmt, value lang.Literal, err error) bool {
				if _, ok := stmt.(*lang.ExprStmt); !ok || err != nil {
					return true
				}

				_, werr = fmt.Fprintln(stdout, value.String())

				return werr == nil
			},
			lang.WithLogger(logger),
		)
		if werr != nil {
			return ErrWriteOutput.Wrap(werr)
		}

		if err != nil {
			failed = append(failed, fmt.Errorf("%s", name))
		}
	}

	if len(failed) > 0 {
		return pkg.ErrProgram.Wrap(failed...)
	}

	return nil
}
