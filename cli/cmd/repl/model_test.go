package repl

import (
	"path/filepath"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/wmd/log"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	return newModel(t.Context(), newTestSession(), h, log.Logger{})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each key to m in order.
func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		m, _ = m.key(k)
	}

	return m
}

func TestModelSubmitEval(t *testing.T) {
	m := press(newTestModel(t), runes("let rest = 30s;"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}

	if !slices.Contains(m.session.Names(), "rest") {
		t.Errorf("session names = %v, want rest bound", m.session.Names())
	}

	e, err := m.history.Entry(0)
	if err != nil || e != (HistoryEntry{Line: "let rest = 30s;", Mode: modeEval}) {
		t.Errorf("history entry = %+v, %v", e, err)
	}

	if m.histPos != 1 {
		t.Errorf("histPos = %d, want 1", m.histPos)
	}
}

func TestModelToggleModeKeepsInput(t *testing.T) {
	m := press(newTestModel(t), runes("1 +"), tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("after Esc: mode = %v input = %q", m.mode, m.input.Value())
	}

	m = press(m, runes("va"), tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != modeEval || m.input.Value() != "1 +" {
		t.Errorf("after second Esc: mode = %v input = %q", m.mode, m.input.Value())
	}

	if m = press(m, tea.KeyMsg{Type: tea.KeyEsc}); m.input.Value() != "va" {
		t.Errorf("command input = %q, want %q", m.input.Value(), "va")
	}
}

func TestModelCycleAndCancel(t *testing.T) {
	m := press(newTestModel(t), runes("x + e"))

	if len(m.comp.matches) < 2 {
		t.Fatalf("matches = %v, want several candidates for %q", m.comp.matches, "e")
	}

	first := m.comp.matches[0].Str

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})

	if !m.comp.cycling || m.input.Value() != "x + "+first {
		t.Errorf("after Tab: cycling = %v input = %q", m.comp.cycling, m.input.Value())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyShiftTab})

	if m.comp.selected != 0 || m.input.Value() != "x + "+first {
		t.Errorf("Tab, Shift-Tab: selected = %d input = %q", m.comp.selected, m.input.Value())
	}

	// Shift-Tab wraps to the last candidate.
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})

	if last := len(m.comp.matches) - 1; m.comp.selected != last {
		t.Errorf("Shift-Tab at first selected = %d, want %d", m.comp.selected, last)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.comp.cycling || m.input.Value() != "x + e" || m.mode != modeEval {
		t.Errorf("after Esc: cycling = %v input = %q mode = %v",
			m.comp.cycling, m.input.Value(), m.mode)
	}
}

func TestModelSoleCandidate(t *testing.T) {
	m := press(newTestModel(t), runes("whi"), tea.KeyMsg{Type: tea.KeyTab})

	if m.input.Value() != "while" || len(m.comp.matches) != 0 {
		t.Errorf("input = %q matches = %v", m.input.Value(), m.comp.matches)
	}
}

func TestModelBrowseHistory(t *testing.T) {
	m := newTestModel(t)

	for _, e := range []HistoryEntry{
		{Line: "1;", Mode: modeEval},
		{Line: "vars", Mode: modeCtrl},
		{Line: "2;", Mode: modeEval},
	} {
		if err := m.history.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m.histPos = m.history.Len()

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m = press(m, up)
	if m.input.Value() != "2;" || m.histPos != 2 {
		t.Errorf("Up: input = %q pos = %d", m.input.Value(), m.histPos)
	}

	m = press(m, up)
	if m.input.Value() != "vars" || m.mode != modeCtrl {
		t.Errorf("Up: input = %q mode = %v, want the command entry", m.input.Value(), m.mode)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftUp})
	if m.histPos != 1 {
		t.Errorf("Shift-Up in command mode moved to %d, want to stay at 1", m.histPos)
	}

	m = press(m, up, up)
	if m.input.Value() != "1;" || m.histPos != 0 {
		t.Errorf("Up at oldest: input = %q pos = %d", m.input.Value(), m.histPos)
	}

	m = press(m, down, down, down)
	if m.input.Value() != "" || m.histPos != 3 {
		t.Errorf("Down past newest: input = %q pos = %d", m.input.Value(), m.histPos)
	}
}

func TestModelBrowseCommandsRestores(t *testing.T) {
	m := newTestModel(t)

	if err := m.history.Add("help", modeCtrl); err != nil {
		t.Fatal(err)
	}

	m.histPos = m.history.Len()
	m = press(m, runes("draft"))

	altUp := tea.KeyMsg{Type: tea.KeyUp, Alt: true}

	m = press(m, altUp)
	if m.mode != modeCtrl || m.input.Value() != "help" {
		t.Fatalf("Alt-Up: mode = %v input = %q", m.mode, m.input.Value())
	}

	m = press(m, altUp)
	if m.mode != modeEval || m.input.Value() != "draft" || m.detour.active {
		t.Errorf("Alt-Up past oldest: mode = %v input = %q", m.mode, m.input.Value())
	}
}

func TestModelCommands(t *testing.T) {
	m := press(newTestModel(t),
		runes("let a = 1;"), tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyEsc},
		runes("clear"), tea.KeyMsg{Type: tea.KeyEnter},
	)

	if names := m.session.Names(); slices.Contains(names, "a") {
		t.Errorf("clear left bindings: %v", names)
	}

	m = press(m, runes("quit"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.done || m.View() != "" {
		t.Error("quit should end the model")
	}
}

func TestModelCtrlC(t *testing.T) {
	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}

	m := press(newTestModel(t), runes("1 + 2"), ctrlC)
	if m.done || m.input.Value() != "" {
		t.Errorf("Ctrl-C on input: done = %v input = %q", m.done, m.input.Value())
	}

	if m = press(m, ctrlC); !m.done {
		t.Error("Ctrl-C on an empty line should quit")
	}
}

func TestModelEdited(t *testing.T) {
	m, _ := newTestModel(t).edited(editResult{source: "let z = 2x;"})

	if m.buffer != "let z = 2x;" || !slices.Contains(m.session.Names(), "z") {
		t.Errorf("buffer = %q names = %v", m.buffer, m.session.Names())
	}

	m, _ = m.edited(editResult{err: ErrEditDeclined})
	if m.buffer != "let z = 2x;" {
		t.Errorf("declined edit changed buffer to %q", m.buffer)
	}
}
