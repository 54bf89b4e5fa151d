package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}

	return val
}

func TestResolve_FlatAndNested(t *testing.T) {
	config := `
log_level: debug
log:
  format: text
  pretty: false
path:
  - /opt/wmd
  - lib
pprof-dir: /tmp/prof
`

	r, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"log-pretty", false},
		{"path", "/opt/wmd,lib"},
		{"pprof-dir", "/tmp/prof"},
		{"source", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := resolveFlag(t, r, tt.flag); got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_NumbersAsStrings(t *testing.T) {
	r, err := resolve(strings.NewReader("indent: 4\nratio: 0.5\nneg: -3\n"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	for flag, want := range map[string]string{
		"indent": "4",
		"ratio":  "0.5",
		"neg":    "-3",
	} {
		if got := resolveFlag(t, r, flag); got != want {
			t.Errorf("Resolve(%q) = %#v, want %q", flag, got, want)
		}
	}
}

func TestResolve_EmptyAndMalformed(t *testing.T) {
	for name, config := range map[string]string{
		"empty":     "",
		"malformed": "log: [unterminated\n",
	} {
		t.Run(name, func(t *testing.T) {
			r, err := resolve(strings.NewReader(config))
			if err != nil {
				t.Fatalf("resolve(%s) returned error: %v", name, err)
			}

			if got := resolveFlag(t, r, "log-level"); got != nil {
				t.Errorf("Resolve(log-level) = %#v, want nil", got)
			}
		})
	}
}

func TestResolve_AppliesToKong(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("log:\n  level: warn\nname: from-config\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var cli struct {
		Log struct {
			Level string `default:"info"`
		} `embed:"" prefix:"log-"`
		Name string `default:"default"`
	}

	parser, err := kong.New(&cli, kong.Configuration(resolve, path))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--name=flag"}); err != nil {
		t.Fatal(err)
	}

	if cli.Log.Level != "warn" {
		t.Errorf("log level = %q, want %q from config", cli.Log.Level, "warn")
	}

	if cli.Name != "flag" {
		t.Errorf("name = %q, want command line to override config", cli.Name)
	}
}
