package cmd

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// outputs returns the writers configured on the kong application stored in
// ctx, or the process's standard streams if there is none.
func outputs(ctx context.Context) (stdout, stderr io.Writer) {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Stdout, ktx.Stderr
	}

	return os.Stdout, os.Stderr
}

type (
	sourceFilesKey struct{}
	searchPathKey  struct{}

	sourceFile struct {
		file *os.File
		name string
	}

	// sourceFiles is an ordered set of program inputs. Regular files are
	// read in the order given; stdin, if requested, is always read last.
	sourceFiles struct {
		seen     map[fileKey]struct{}
		stdin    *fileKey
		files    []sourceFile
		hasStdin bool
	}
)

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

func newSourceFiles() *sourceFiles {
	s := &sourceFiles{seen: make(map[fileKey]struct{})}

	if info, err := os.Stdin.Stat(); err == nil {
		if key, ok := makeFileKey(info); ok {
			s.stdin = &key
		}
	}

	return s
}

// IsZero reports whether there are no sources, including stdin.
func (s *sourceFiles) IsZero() bool {
	return s == nil || (len(s.files) == 0 && !s.hasStdin)
}

// Stdin returns os.Stdin if stdin was included as a source, or nil otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s != nil && s.hasStdin {
		return os.Stdin
	}

	return nil
}

// All yields the name and reader of each source in evaluation order.
func (s *sourceFiles) All() iter.Seq2[string, io.Reader] {
	return func(yield func(string, io.Reader) bool) {
		if s == nil {
			return
		}

		for _, f := range s.files {
			if !yield(f.name, f.file) {
				return
			}
		}

		if s.hasStdin {
			yield(stdinSource, os.Stdin)
		}
	}
}

// Close closes every opened source file.
func (s *sourceFiles) Close() error {
	if s == nil {
		return nil
	}

	var errs []error

	for _, f := range s.files {
		errs = append(errs, f.file.Close())
	}

	s.files = nil

	return errors.Join(errs...)
}

// add resolves each name against path and opens it unless the same file was
// already added. All occurrences of "-" collapse into a single stdin source.
func (s *sourceFiles) add(path []string, names ...string) error {
	for _, name := range names {
		if name == stdinSource {
			s.hasStdin = true

			continue
		}

		resolved, err := resolveSource(name, path)
		if err != nil {
			return err
		}

		if err := s.open(resolved); err != nil {
			return err
		}
	}

	return nil
}

// open opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
func (s *sourceFiles) open(path string) error {
	wrap := func(err error) error {
		return ErrOpenSource.With(slog.String("file", path)).Wrap(err)
	}

	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return wrap(err)
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return wrap(err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return wrap(err)
	}

	if key, ok := makeFileKey(info); ok {
		// Stdin named as a file (e.g., /dev/stdin) is read last like "-".
		if s.stdin != nil && key == *s.stdin {
			s.hasStdin = true

			return nil
		}

		if _, exists := s.seen[key]; exists {
			return nil
		}

		s.seen[key] = struct{}{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return wrap(err)
	}

	s.files = append(s.files, sourceFile{file: file, name: path})

	return nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}

// WithSearchPath returns a new context.Context containing the source search
// path formed by prefixing dirs onto the directories listed in $WMD_PATH.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, SearchPath(dirs...))
}

// searchPathFrom retrieves the search path stored in ctx by [WithSearchPath],
// or the directories listed in $WMD_PATH if none was stored.
func searchPathFrom(ctx context.Context) []string {
	if path, ok := ctx.Value(searchPathKey{}).([]string); ok {
		return path
	}

	return SearchPath()
}

// WithSourceFiles returns a new context.Context containing the given source
// files, resolved against the search path stored in ctx.
//
// The sources are deduplicated by resolving symlinks and comparing device/
// inode pairs. All occurrences of "-" are replaced with a single stdin source
// that is read after all regular files.
func WithSourceFiles(
	ctx context.Context,
	sources []string,
) (context.Context, error) {
	if len(sources) == 0 {
		return context.WithValue(ctx, sourceFilesKey{}, (*sourceFiles)(nil)), nil
	}

	srcs := newSourceFiles()

	if err := srcs.add(searchPathFrom(ctx), sources...); err != nil {
		return ctx, errors.Join(err, srcs.Close())
	}

	return context.WithValue(ctx, sourceFilesKey{}, srcs), nil
}

// sourceFilesFrom retrieves the sources stored in ctx by [WithSourceFiles].
// Returns nil if no sources were stored.
func sourceFilesFrom(ctx context.Context) *sourceFiles {
	s, _ := ctx.Value(sourceFilesKey{}).(*sourceFiles)

	return s
}

// openSources returns the sources stored in ctx followed by names. If both
// are empty, the result reads stdin.
func openSources(ctx context.Context, names ...string) (*sourceFiles, error) {
	srcs := sourceFilesFrom(ctx)
	if srcs == nil {
		srcs = newSourceFiles()
	}

	if err := srcs.add(searchPathFrom(ctx), names...); err != nil {
		return nil, errors.Join(err, srcs.Close())
	}

	if srcs.IsZero() {
		srcs.hasStdin = true
	}

	return srcs, nil
}
