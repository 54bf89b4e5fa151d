package repl

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/wmd/log"
)

func newTestSession() *Session {
	return NewSession(log.Logger{})
}

func texts(outs []output) []string {
	s := make([]string, len(outs))
	for i, o := range outs {
		s[i] = o.text
	}

	return s
}

func TestSessionEval(t *testing.T) {
	s := newTestSession()

	outs := s.Eval(t.Context(), `let n = 3; n * 2; "n=" + n;`)

	want := []string{"6", "n=3"}
	if got := texts(outs); !slices.Equal(got, want) {
		t.Errorf("Eval() = %q, want %q", got, want)
	}

	for _, o := range outs {
		if o.kind != outputValue {
			t.Errorf("output %q kind = %v, want value", o.text, o.kind)
		}
	}
}

func TestSessionEval_BindingsPersist(t *testing.T) {
	s := newTestSession()

	if outs := s.Eval(t.Context(), "let rest = 30s;"); len(outs) != 0 {
		t.Fatalf("let produced output: %q", texts(outs))
	}

	got := texts(s.Eval(t.Context(), "rest == 30s;"))
	if !slices.Equal(got, []string{"true"}) {
		t.Errorf("Eval() = %q, want [true]", got)
	}
}

func TestSessionEval_RuntimeErrorInterleaved(t *testing.T) {
	s := newTestSession()

	outs := s.Eval(t.Context(), "1;\n-\"x\";\n2;")

	if len(outs) != 3 {
		t.Fatalf("Eval() = %q, want 3 outputs", texts(outs))
	}

	if outs[0].text != "1" || outs[2].text != "2" {
		t.Errorf("values = %q", texts(outs))
	}

	if outs[1].kind != outputError ||
		!strings.HasPrefix(outs[1].text, "[line 2] Error at '-'") {
		t.Errorf("diagnostic = %+v", outs[1])
	}
}

func TestSessionEval_SyntaxErrorSkipsExecution(t *testing.T) {
	s := newTestSession()

	outs := s.Eval(t.Context(), "let a = 1; a +;")

	if len(outs) != 1 || outs[0].kind != outputError {
		t.Fatalf("Eval() = %+v, want one diagnostic", outs)
	}

	if names := s.Names(); len(names) != 0 {
		t.Errorf("Names() = %q, want none bound", names)
	}

	// Diagnostics from a previous input are not repeated.
	if got := texts(s.Eval(t.Context(), "1;")); !slices.Equal(got, []string{"1"}) {
		t.Errorf("Eval() after error = %q", got)
	}
}

func TestSessionVarsAndReset(t *testing.T) {
	s := newTestSession()
	s.Eval(t.Context(), `let b = [1, "x"]; let a = 50%;`)

	want := []string{`a = 50%`, `b = [1, "x"]`}
	if got := s.Vars(); !slices.Equal(got, want) {
		t.Errorf("Vars() = %q, want %q", got, want)
	}

	if got := s.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %q", got)
	}

	s.Reset()

	if got := s.Vars(); len(got) != 0 {
		t.Errorf("Vars() after Reset = %q, want none", got)
	}
}

func TestSessionLoad(t *testing.T) {
	s := newTestSession()

	var w bytes.Buffer

	if !s.Load(t.Context(), "let x = 2; x;", &w) {
		t.Errorf("Load() = false for a valid program")
	}

	if w.Len() != 0 {
		t.Errorf("Load() wrote %q, want nothing", w.String())
	}

	if s.Load(t.Context(), "missing;", &w) {
		t.Errorf("Load() = true for a failing program")
	}

	if !strings.Contains(w.String(), "undefined variable") {
		t.Errorf("Load() diagnostics = %q", w.String())
	}
}
