package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistoryWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, e := range []struct {
		line string
		mode inputMode
	}{
		{"let a = 1;", modeEval},
		{"vars", modeCtrl},
		{"a + 1;", modeEval},
		{"a + 1;", modeEval}, // repeated last entry is skipped
		{"   ", modeEval},    // blank entries are skipped
	} {
		if err := h.Add(e.line, e.mode); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "E:let a = 1;\nC:vars\nE:a + 1;\n"; string(data) != want {
		t.Errorf("history file = %q, want %q", data, want)
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	if loaded.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", loaded.Len())
	}

	entry, err := loaded.Entry(1)
	if err != nil {
		t.Fatal(err)
	}

	if entry.Line != "vars" || entry.Mode != modeCtrl {
		t.Errorf("Entry(1) = %+v", entry)
	}
}

func TestHistoryDuplicateMovesToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	for _, line := range []string{"1;", "2;", "1;"} {
		if err := h.Add(line, modeEval); err != nil {
			t.Fatal(err)
		}
	}

	// The same text in another mode is a distinct entry.
	if err := h.Add("2;", modeCtrl); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "E:2;\nE:1;\nC:2;\n"; string(data) != want {
		t.Errorf("history file = %q, want %q", data, want)
	}
}

func TestHistoryLoad_UnprefixedAndMissing(t *testing.T) {
	dir := t.TempDir()

	if err := NewHistory(filepath.Join(dir, "absent")).Load(); err != nil {
		t.Errorf("Load() of a missing file = %v, want nil", err)
	}

	path := filepath.Join(dir, baseHistory)
	if err := os.WriteFile(path, []byte("legacy;\n\nC:quit\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	entries := h.Entries()
	if len(entries) != 2 ||
		entries[0] != (HistoryEntry{Line: "legacy;", Mode: modeEval}) ||
		entries[1] != (HistoryEntry{Line: "quit", Mode: modeCtrl}) {
		t.Errorf("Entries() = %+v", entries)
	}

	if _, err := h.Entry(2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(2) error = %v, want ErrOutOfBounds", err)
	}
}
