package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/wmd/cli/cmd/repl"
	"github.com/ardnew/wmd/lang"
	"github.com/ardnew/wmd/log"
	"github.com/ardnew/wmd/pkg"
)

// Repl starts an interactive session.
type Repl struct {
	Line bool `help:"Use the line editor instead of the full-screen interface." short:"l"`
}

// Run executes the repl command.
//
// Sources given with the global --source flag are loaded into the session
// before the first prompt. The full-screen interface is used only when both
// stdin and stdout are terminals.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache directory undefined")
	}

	logger := log.Default()
	session := repl.NewSession(logger)

	stdout, stderr := outputs(ctx)

	if srcs := sourceFilesFrom(ctx); srcs != nil {
		defer srcs.Close()

		for name, reader := range srcs.All() {
			// Stdin is the session's input.
			if name == stdinSource {
				continue
			}

			src, err := lang.ReadSource(reader)
			if err != nil {
				return pkg.ErrReadInput.Wrap(err)
			}

			if !session.Load(ctx, src, stderr) {
				return pkg.ErrProgram.Wrapf("%s", name)
			}

			logger.DebugContext(ctx, "repl loaded source",
				slog.String("source", name),
			)
		}
	}

	if r.Line || !repl.IsTerminal() {
		err = repl.RunLine(ctx, session, cacheDir, logger, os.Stdin, stdout)
	} else {
		err = repl.Run(ctx, session, cacheDir, logger)
	}

	if err != nil {
		return ErrInteractive.Wrap(err)
	}

	return nil
}
