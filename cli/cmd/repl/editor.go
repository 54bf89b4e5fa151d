package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/wmd/lang"
	"github.com/ardnew/wmd/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the edit-parse-retry loop.
// It writes the buffer to a temp file, opens the user's editor, and parses
// the result. On syntax errors the user is prompted to re-edit; declining
// discards the edit.
type editCommand struct {
	ctx    context.Context
	logger log.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	buffer string // initial editor content
	source string // edited program, set when it parses cleanly
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. The edited program is left in
// c.source only if it parses without errors; an empty file leaves c.source
// empty. If the user declines to re-edit, it returns [ErrEditDeclined].
func (c *editCommand) Run() error {
	ctx := c.ctx
	content := c.buffer

	// Create a single temp file for the entire loop.
	f, err := os.CreateTemp(os.TempDir(), "wmd-repl-*.wmd")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		// Write current content to temp file.
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		content = string(data)

		// An empty buffer cancels the edit.
		if strings.TrimSpace(content) == "" {
			return nil
		}

		var diag lang.Collector

		_, parseErr := lang.Parse(content, &diag, lang.WithLogger(c.logger))

		c.logger.TraceContext(
			ctx,
			"editor parse attempt",
			slog.Int("content_length", len(content)),
			slog.Int("diagnostics", diag.Len()),
		)

		if parseErr == nil {
			c.source = content

			return nil
		}

		// Show errors and prompt.
		fmt.Fprintln(c.stderr)

		for _, d := range diag.Diagnostics() {
			fmt.Fprintln(c.stderr, d.String())
		}

		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}

	if editor == "" {
		editor = defaultEditor
	}

	// Allow editors configured with arguments, e.g. "code --wait".
	args := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
