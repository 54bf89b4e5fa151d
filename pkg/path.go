package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Prefix is the directory name under the user config and cache directories.
// It is the executable's base name without extension or leading dots, or
// [Name] when run from a debugger build such as "__debug_bin1234".
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	return prefixOf(exe)
})

func prefixOf(exe string) string {
	// Leading dots go first so a dotfile name is not taken as an extension.
	base := strings.TrimLeft(filepath.Base(exe), ".")
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if rest, ok := strings.CutPrefix(base, "__debug_bin"); ok &&
		strings.Trim(rest, "0123456789") == "" {
		return Name
	}

	if base == "" {
		return Name
	}

	return base
}

// ConfigDir returns the directory holding the configuration file.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir returns [Prefix] below the directory reported by base. If base
// fails, hidden is used below the home directory, then the working
// directory.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
