package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func captureDefault(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	t.Cleanup(setDefault(plain(&buf, opts...)))

	return &buf
}

func TestPackageFunctions(t *testing.T) {
	buf := captureDefault(t, WithLevel(LevelTrace))

	type ctxKey struct{}

	ctx := context.WithValue(context.Background(), ctxKey{}, "x")

	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"Trace", func() { Trace("m") }, "level=TRACE msg=m\n"},
		{"TraceContext", func() { TraceContext(ctx, "m") }, "level=TRACE msg=m\n"},
		{"Debug", func() { Debug("m", slog.Int("n", 1)) }, "level=DEBUG msg=m n=1\n"},
		{"DebugContext", func() { DebugContext(ctx, "m") }, "level=DEBUG msg=m\n"},
		{"Info", func() { Info("m") }, "level=INFO msg=m\n"},
		{"InfoContext", func() { InfoContext(ctx, "m") }, "level=INFO msg=m\n"},
		{"Warn", func() { Warn("m") }, "level=WARN msg=m\n"},
		{"WarnContext", func() { WarnContext(ctx, "m") }, "level=WARN msg=m\n"},
		{"Error", func() { Error("m") }, "level=ERROR msg=m\n"},
		{"ErrorContext", func() { ErrorContext(ctx, "m") }, "level=ERROR msg=m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPackageWith(t *testing.T) {
	buf := captureDefault(t)

	With(slog.String("k", "v")).Warn("m")

	if want := "level=WARN msg=m k=v\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPackageCaller(t *testing.T) {
	buf := captureDefault(t, WithCaller(true))

	Warn("here")

	if !strings.Contains(buf.String(), "pkg_test.go:") {
		t.Errorf("output = %q, want this file as the source", buf.String())
	}
}

func TestConfig(t *testing.T) {
	buf := captureDefault(t)

	Info("before")
	Config(WithLevel(LevelInfo))
	Info("after")

	if want := "level=INFO msg=after\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	if Default().Level() != LevelInfo {
		t.Errorf("Default().Level() = %v", Default().Level())
	}
}

func TestConfigConcurrent(t *testing.T) {
	captureDefault(t)

	var wg sync.WaitGroup

	for i := range 4 {
		wg.Go(func() {
			for range 25 {
				if i%2 == 0 {
					Config(WithLevel(LevelDebug))
				} else {
					Debug("m")
				}
			}
		})
	}

	wg.Wait()
}
