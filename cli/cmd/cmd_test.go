package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/wmd/pkg"
)

// readAll drains every source in s, returning the names in order and the
// concatenated content.
func readAll(t *testing.T, s *sourceFiles) (names []string, content string) {
	t.Helper()

	var sb strings.Builder

	for name, r := range s.All() {
		data, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("reading source %s: %v", name, err)
		}

		names = append(names, name)
		sb.Write(data)
	}

	return names, sb.String()
}

// withSources is WithSourceFiles that fails the test on error.
func withSources(t *testing.T, sources ...string) *sourceFiles {
	t.Helper()

	ctx, err := WithSourceFiles(context.Background(), sources)
	if err != nil {
		t.Fatalf("WithSourceFiles(%v) error: %v", sources, err)
	}

	s := sourceFilesFrom(ctx)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// pipeStdin replaces os.Stdin with a pipe that yields content.
func pipeStdin(t *testing.T, content string) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	old := os.Stdin
	os.Stdin = r

	t.Cleanup(func() {
		os.Stdin = old
		_ = r.Close()
	})

	go func() {
		defer w.Close()

		_, _ = io.WriteString(w, content)
	}()
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// TestWithSourceFilesEmpty tests that an empty source list stores nothing.
func TestWithSourceFilesEmpty(t *testing.T) {
	for _, sources := range [][]string{nil, {}} {
		s := withSources(t, sources...)

		if s != nil {
			t.Errorf("WithSourceFiles(%#v) should store nil sources", sources)
		}

		if !s.IsZero() {
			t.Error("nil sources should be zero")
		}

		if names, _ := readAll(t, s); len(names) != 0 {
			t.Errorf("nil sources yielded %v", names)
		}
	}
}

// TestWithSourceFilesOrder tests that files are yielded in the order given.
func TestWithSourceFilesOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, filepath.Join(dir, "first.wmd"), "1;")
	second := writeFile(t, filepath.Join(dir, "second.wmd"), "2;")

	names, content := readAll(t, withSources(t, second, first))

	if len(names) != 2 || names[0] != second || names[1] != first {
		t.Errorf("names = %v, want [%s %s]", names, second, first)
	}

	if content != "2;1;" {
		t.Errorf("content = %q, want %q", content, "2;1;")
	}
}

// TestWithSourceFilesDuplicates tests deduplication of the same file named by
// repeated, relative, and symlinked paths.
func TestWithSourceFilesDuplicates(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, filepath.Join(dir, "target.wmd"), "once;")

	link := filepath.Join(dir, "link.wmd")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	names, content := readAll(t, withSources(t, target, "target.wmd", link, target))

	if len(names) != 1 {
		t.Errorf("names = %v, want a single source", names)
	}

	if content != "once;" {
		t.Errorf("content = %q, want %q (file should only be read once)",
			content, "once;")
	}
}

// TestWithSourceFilesStdinLast tests that stdin is read after all files, and
// that repeated "-" collapse into one stdin source.
func TestWithSourceFilesStdinLast(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "file.wmd"), "file;")

	pipeStdin(t, "stdin;")

	s := withSources(t, "-", file, "-")

	if s.Stdin() == nil {
		t.Error("Stdin() = nil, want os.Stdin")
	}

	names, content := readAll(t, s)

	if len(names) != 2 || names[1] != stdinSource {
		t.Errorf("names = %v, want stdin last", names)
	}

	if content != "file;stdin;" {
		t.Errorf("content = %q, want %q (stdin should be last)",
			content, "file;stdin;")
	}
}

// TestWithSourceFilesNotFound tests that a missing source is an error.
func TestWithSourceFilesNotFound(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "exists.wmd"), "1;")

	ctx, err := WithSourceFiles(context.Background(), []string{
		file,
		"/nonexistent/path/file.wmd",
	})

	if !errors.Is(err, pkg.ErrSourceNotFound) {
		t.Errorf("WithSourceFiles() error = %v, want ErrSourceNotFound", err)
	}

	if sourceFilesFrom(ctx) != nil {
		t.Error("failed WithSourceFiles should not store sources")
	}
}

// TestWithSourceFilesSearchPath tests that sources resolve through the
// search path stored in the context.
func TestWithSourceFilesSearchPath(t *testing.T) {
	t.Setenv(PathVar, "")

	lib := t.TempDir()
	writeFile(t, filepath.Join(lib, "units.wmd"), "let rest = 30s;")

	t.Chdir(t.TempDir())

	ctx := WithSearchPath(context.Background(), []string{lib})

	ctx, err := WithSourceFiles(ctx, []string{"units"})
	if err != nil {
		t.Fatalf("WithSourceFiles() error: %v", err)
	}

	s := sourceFilesFrom(ctx)
	defer s.Close()

	names, content := readAll(t, s)

	if want := filepath.Join(lib, "units.wmd"); len(names) != 1 ||
		names[0] != want {
		t.Errorf("names = %v, want [%s]", names, want)
	}

	if content != "let rest = 30s;" {
		t.Errorf("content = %q", content)
	}
}

// TestOpenSources tests combining context sources with command arguments.
func TestOpenSources(t *testing.T) {
	dir := t.TempDir()
	pre := writeFile(t, filepath.Join(dir, "pre.wmd"), "pre;")
	arg := writeFile(t, filepath.Join(dir, "arg.wmd"), "arg;")

	t.Run("context_then_args", func(t *testing.T) {
		ctx, err := WithSourceFiles(context.Background(), []string{pre})
		if err != nil {
			t.Fatal(err)
		}

		s, err := openSources(ctx, arg, pre)
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()

		if _, content := readAll(t, s); content != "pre;arg;" {
			t.Errorf("content = %q, want %q", content, "pre;arg;")
		}
	})

	t.Run("defaults_to_stdin", func(t *testing.T) {
		pipeStdin(t, "in;")

		s, err := openSources(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()

		names, content := readAll(t, s)
		if len(names) != 1 || names[0] != stdinSource || content != "in;" {
			t.Errorf("names = %v content = %q, want stdin only", names, content)
		}
	})
}
