package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/ardnew/wmd/log"
)

// ctrlPrefix introduces a control command in line mode, e.g. ":vars".
const ctrlPrefix = ":"

// IsTerminal reports whether both stdin and stdout are terminals, which the
// full-screen REPL requires.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

// lineCompleter implements [readline.AutoCompleter] over the language
// keywords, the session's bindings, and the control commands.
type lineCompleter struct{ session *Session }

// Do implements [readline.AutoCompleter].
func (c lineCompleter) Do(line []rune, pos int) ([][]rune, int) {
	input := string(line[:pos])

	candidates := evalCandidates(c.session)

	if rest, ok := strings.CutPrefix(input, ctrlPrefix); ok &&
		!strings.ContainsAny(rest, " \t") {
		input, candidates = rest, ctrlCommands
	}

	suffixes, length := prefixCompletions(input, len(input), candidates)

	out := make([][]rune, len(suffixes))
	for i, s := range suffixes {
		out[i] = []rune(s)
	}

	return out, length
}

// RunLine starts a line-oriented REPL reading from in and writing to out,
// evaluating input in s. It works with or without a terminal, and shares its
// history file in cacheDir with the full-screen REPL.
func RunLine(
	ctx context.Context,
	s *Session,
	cacheDir string,
	logger log.Logger,
	in io.ReadCloser,
	out io.Writer,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && in == os.Stdin

	logger.TraceContext(
		ctx,
		"repl line start",
		slog.String("cache_dir", cacheDir),
		slog.Bool("interactive", interactive),
	)

	history := loadHistory(ctx, cacheDir, logger)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 evalPrompt,
		AutoComplete:           lineCompleter{session: s},
		InterruptPrompt:        "^C",
		EOFPrompt:              ctrlPrefix + "quit",
		DisableAutoSaveHistory: true,
		Stdin:                  in,
		Stdout:                 out,
		Stderr:                 out,
		FuncIsTerminal:         func() bool { return interactive },
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for _, entry := range history.Entries() {
		line := entry.Line
		if entry.Mode == modeCtrl {
			line = ctrlPrefix + line
		}

		_ = rl.SaveHistory(line)
	}

	if interactive {
		fmt.Fprintf(out, "Type %shelp for commands, %squit to exit\n",
			ctrlPrefix, ctrlPrefix)
	}

	var buffer string

	for ctx.Err() == nil {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}

			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		_ = rl.SaveHistory(line)

		command, isCtrl := strings.CutPrefix(line, ctrlPrefix)
		if !isCtrl {
			if err := history.Add(line, modeEval); err != nil {
				logger.DebugContext(ctx, "repl history write", slog.Any("error", err))
			}

			writeOutputs(out, s.Eval(ctx, line))

			continue
		}

		if err := history.Add(command, modeCtrl); err != nil {
			logger.DebugContext(ctx, "repl history write", slog.Any("error", err))
		}

		switch kind, name, _ := parseCommand(command); kind {
		case cmdQuit:
			return nil

		case cmdHelp:
			fmt.Fprint(out, helpMessage(ctrlPrefix, false))

		case cmdVars:
			for _, v := range s.Vars() {
				fmt.Fprintln(out, "  "+v)
			}

		case cmdClear:
			s.Reset()
			readline.ClearScreen(out)

		case cmdEdit:
			buffer = editLine(ctx, s, logger, buffer, out)

		default:
			fmt.Fprintf(out, "Unknown command: %s (try '%shelp')\n",
				name, ctrlPrefix)
		}
	}

	return context.Cause(ctx)
}

// editLine runs the edit loop on the process's terminal and evaluates the
// result, returning the buffer to start from on the next edit.
func editLine(
	ctx context.Context,
	s *Session,
	logger log.Logger,
	buffer string,
	out io.Writer,
) string {
	cmd := &editCommand{
		ctx:    ctx,
		logger: logger,
		buffer: buffer,
	}
	cmd.SetStdin(os.Stdin)
	cmd.SetStdout(out)
	cmd.SetStderr(out)

	switch err := cmd.Run(); {
	case errors.Is(err, ErrEditDeclined):
		fmt.Fprintln(out, "edit discarded")

	case err != nil:
		fmt.Fprintln(out, "error: "+err.Error())

	case cmd.source == "":
		fmt.Fprintln(out, "edit cancelled")

	default:
		writeOutputs(out, s.Eval(ctx, cmd.source))

		return cmd.source
	}

	return buffer
}

// writeOutputs writes each output line unstyled.
func writeOutputs(w io.Writer, outs []output) {
	for _, o := range outs {
		fmt.Fprintln(w, o.text)
	}
}
