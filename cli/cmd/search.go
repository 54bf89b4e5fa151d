package cmd

import (
	"os"
	"path/filepath"

	"github.com/ardnew/mung"

	"github.com/ardnew/wmd/pkg"
)

const (
	// PathVar is the environment variable listing directories searched for
	// source files that are not found relative to the working directory.
	PathVar = "WMD_PATH"

	// SourceExt is the file extension tried when a source name has none.
	SourceExt = ".wmd"
)

// SearchPath returns dirs prefixed onto the directories listed in $WMD_PATH.
// Entries that are not existing directories are removed.
func SearchPath(dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathVar)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	return filepath.SplitList(list)
}

// resolveSource returns the path of the source file identified by name.
//
// A name that exists relative to the working directory (or is absolute) is
// used as given. Otherwise each directory in path is searched in order for
// name and, if name has no extension, name with [SourceExt] appended.
func resolveSource(name string, path []string) (string, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+SourceExt)
	}

	for _, c := range candidates {
		if isSource(c) {
			return c, nil
		}
	}

	if !filepath.IsAbs(name) {
		for _, dir := range path {
			for _, c := range candidates {
				if p := filepath.Join(dir, c); isSource(p) {
					return p, nil
				}
			}
		}
	}

	return "", pkg.ErrSourceNotFound.Wrapf("%s", name)
}

func isDir(name string) bool {
	info, err := os.Stat(name)

	return err == nil && info.IsDir()
}

func isSource(name string) bool {
	info, err := os.Stat(name)

	return err == nil && !info.IsDir()
}
