package repl

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// editResult reports how an edit session ended.
type editResult struct {
	source string // empty if the edit was cancelled
	err    error
}

func (m model) key(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctx, "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			return m.quit()
		}

		m.input.SetValue("")
		m.comp.cycling = false
		m.detour.active = false
		m.histPos = m.history.Len()
		m.refresh(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			return m.quit()
		}

		return m, nil

	case tea.KeyEnter:
		m.detour.active = false

		if m.comp.cycling && len(m.comp.matches) > 0 {
			// Keep the selected candidate without running the line.
			m.comp.cycling = false
			m.refresh(true)

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		if msg.Alt {
			return m.browseCommands(-1), nil
		}

		return m.browse(-1), nil

	case tea.KeyDown:
		if msg.Alt {
			return m.browseCommands(1), nil
		}

		return m.browse(1), nil

	case tea.KeyShiftUp:
		return m.browseMode(-1), nil

	case tea.KeyShiftDown:
		return m.browseMode(1), nil

	case tea.KeyEsc:
		if m.comp.cycling {
			m.comp.cycling = false
			m.setField(m.comp.origin)
			m.refresh(false)

			return m, nil
		}

		m.detour.active = false

		return m.setMode(m.mode.other()), nil

	case tea.KeyRunes, tea.KeySpace:
		if msg.String() == " " {
			m.comp.cycling = false
		}

		return m.typed(msg, true)
	}

	// Deletion and cursor movement never complete automatically.
	m.comp.cycling = false
	m.detour.active = false

	return m.typed(msg, false)
}

// typed passes msg to the input line and recomputes completions.
func (m model) typed(msg tea.KeyMsg, confirm bool) (model, tea.Cmd) {
	var cmd tea.Cmd

	m.histPos = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh(confirm)

	return m, cmd
}

func (m model) quit() (model, tea.Cmd) {
	m.done = true

	return m, tea.Quit
}

// cycle selects the candidate step places away from the current one,
// wrapping at either end, and substitutes it for the word being completed.
// A sole candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.comp.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(m.comp.matches[0].Str)
		m.comp = completion{selected: -1}

		return m

	case m.comp.cycling:
		m.comp.selected = (m.comp.selected + step + n) % n

	default:
		m.comp.cycling = true
		m.comp.origin = field{text: m.input.Value(), cursor: m.input.Position()}

		m.comp.selected = 0
		if step < 0 {
			m.comp.selected = n - 1
		}
	}

	m.replaceWord(m.comp.matches[m.comp.selected].Str)

	return m
}

// replaceWord substitutes s for the word being completed and places the
// cursor after it.
func (m *model) replaceWord(s string) {
	line := m.input.Value()
	end := m.comp.start + len(s)

	m.input.SetValue(line[:m.comp.start] + s + line[m.comp.end:])
	m.input.SetCursor(end)

	m.comp.end = end
}

// refresh recomputes the completion candidates for the word at the cursor.
// With confirm set, a word that already equals its only candidate clears
// the candidate bar.
func (m *model) refresh(confirm bool) {
	candidates := ctrlCommands
	if m.mode == modeEval {
		candidates = evalCandidates(m.session)
	}

	m.comp.matches, m.comp.start, m.comp.end = completions(
		m.input.Value(), m.input.Position(), candidates)

	if !m.comp.cycling {
		m.comp.selected = -1
	}

	if confirm && len(m.comp.matches) == 1 &&
		m.input.Value()[m.comp.start:m.comp.end] == m.comp.matches[0].Str {
		m.comp = completion{selected: -1}
	}
}

// edit opens the last edited program in the user's editor.
func (m model) edit() tea.Cmd {
	c := &editCommand{ctx: m.ctx, logger: m.logger, buffer: m.buffer}

	return tea.Exec(c, func(err error) tea.Msg {
		return editResult{source: c.source, err: err}
	})
}

// edited evaluates the program returned by the editor.
func (m model) edited(r editResult) (model, tea.Cmd) {
	switch {
	case errors.Is(r.err, ErrEditDeclined):
		return m, tea.Println(theme.hint.Render("edit discarded"))

	case r.err != nil:
		return m, tea.Println(theme.err.Render("error: " + r.err.Error()))

	case r.source == "":
		return m, tea.Println(theme.hint.Render("edit cancelled"))
	}

	m.buffer = r.source
	outs := m.session.Eval(m.ctx, r.source)

	m.logger.TraceContext(m.ctx, "repl edit complete",
		slog.Int("length", len(r.source)),
		slog.Int("outputs", len(outs)),
	)

	if len(outs) == 0 {
		return m, tea.Println(theme.hint.Render("(no values)"))
	}

	return m, tea.Println(theme.outputs(outs))
}
