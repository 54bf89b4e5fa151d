package log

import (
	"bytes"
	"log/slog"
	"testing"
)

// A bytes.Buffer is not a terminal, so the renderer emits no color codes.
func TestPrettyText(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
		want string
	}{
		{
			name: "padded_level",
			log:  func(l Logger) { l.Info("ready") },
			want: "INFO  ready\n",
		},
		{
			name: "attrs",
			log: func(l Logger) {
				l.Warn("eval", slog.String("value", "30s"), slog.Int("line", 2),
					slog.Bool("ok", true))
			},
			want: "WARN  eval value=30s line=2 ok=true\n",
		},
		{
			name: "group",
			log: func(l Logger) {
				l.Error("failed", slog.Group("source", slog.String("name", "a.wmd")))
			},
			want: "ERROR failed source.name=a.wmd\n",
		},
		{
			name: "with_group",
			log: func(l Logger) {
				l.With(slog.String("run", "1")).Logger.WithGroup("stage").
					Warn("done", "n", 3)
			},
			want: "WARN  done run=1 stage.n=3\n",
		},
		{
			name: "trace",
			log:  func(l Logger) { l.Trace("token") },
			want: "TRACE token\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(LevelTrace), WithTimeLayout("none")))

			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrettyTextTime(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("2006")).Warn("x")

	if out := buf.String(); len(out) != len("2026 WARN  x\n") || out[4:] != " WARN  x\n" {
		t.Errorf("output = %q", out)
	}
}

func TestIndentWriterPassesInvalidJSON(t *testing.T) {
	var buf bytes.Buffer

	if _, err := newIndentWriter(&buf).Write([]byte("not json\n")); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "not json\n" {
		t.Errorf("output = %q", buf.String())
	}
}
