package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// YieldFunc receives the outcome of each executed statement. Returning false
// stops execution.
type YieldFunc func(stmt Stmt, value Literal, err error) bool

// Run scans, parses, and executes src with in, reporting every diagnostic to
// r and passing each statement's outcome to yield (which may be nil).
//
// If scanning or parsing fails, no statement is executed and the syntax
// errors are returned. This holds for every statement in src, including the
// well-formed ones before or after the error: "let ; let x = 1;" binds
// nothing. Otherwise every statement runs in order; a runtime
// error is reported and yielded but does not stop later statements. The
// returned error joins all errors encountered, plus the context's cause if
// ctx is canceled between statements.
func Run(
	ctx context.Context,
	src string,
	r Reporter,
	in *Interpreter,
	yield YieldFunc,
	opts ...Option,
) error {
	if r == nil {
		r = discard{}
	}

	if yield == nil {
		yield = func(Stmt, Literal, error) bool { return true }
	}

	stmts, err := Parse(src, r, opts...)
	if err != nil {
		return err
	}

	var errs []error

	for i, stmt := range stmts {
		if ctx.Err() != nil {
			errs = append(errs, context.Cause(ctx))

			break
		}

		value, err := in.Execute(stmt)
		if err != nil {
			var re *RuntimeError
			if errors.As(err, &re) {
				re.Report(r)
			}

			in.logger.TraceContext(ctx, "statement failed",
				slog.Int("index", i),
				slog.Any("error", err),
			)

			errs = append(errs, err)
		}

		if !yield(stmt, value, err) {
			break
		}
	}

	return errors.Join(errs...)
}

// ReadSource reads all of src for use with [Parse] or [Run].
func ReadSource(src io.Reader) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", ErrReadInput.Wrap(err)
	}

	return string(data), nil
}
