// Package cli contains the command line interface for wmd.
//
// # Usage
//
// Without a command, wmd runs the named source files:
//
//	wmd script.wmd
//	echo 'let t = 30s; "rest " + t;' | wmd -
//
// Other commands inspect sources or start an interactive session:
//
//	wmd tokens --format=json script.wmd
//	wmd ast script.wmd
//	wmd repl
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user's
// configuration directory (e.g., ~/.config/wmd). The YAML loader ([resolve])
// accepts hyphenated, underscored, or nested keys:
//
//	log:
//	  level: debug
//	path:
//	  - ~/lib/wmd
//
// Run "wmd init" to write the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o wmd .
//
// Then --pprof-mode selects a profile (cpu, heap, allocs, ...) written under
// --pprof-dir, which defaults to ~/.cache/wmd/pprof.
package cli
