package pkg

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		exe  string
		want string
	}{
		{"/usr/local/bin/wmd", "wmd"},
		{"wmd.exe", "wmd"},
		{"/tmp/.hidden", "hidden"},
		{"/tmp/..wmd.exe", "wmd"},
		{"/tmp/__debug_bin1234", Name},
		{"/tmp/__debug_bin", Name},
		{"/tmp/__debug_binary", "__debug_binary"},
		{"...", Name},
	}

	for _, tt := range tests {
		if got := prefixOf(tt.exe); got != tt.want {
			t.Errorf("prefixOf(%q) = %q, want %q", tt.exe, got, tt.want)
		}
	}
}

func TestUserDir(t *testing.T) {
	base := t.TempDir()

	got := userDir(func() (string, error) { return base, nil }, ".config")
	if want := filepath.Join(base, Prefix()); got != want {
		t.Errorf("userDir() = %q, want %q", got, want)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	got = userDir(func() (string, error) { return "", errors.New("unset") }, ".cache")
	if want := filepath.Join(home, ".cache", Prefix()); got != want {
		t.Errorf("userDir() fallback = %q, want %q", got, want)
	}
}
