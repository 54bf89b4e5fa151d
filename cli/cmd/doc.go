// Package cmd provides the subcommands of wmd: run, repl, tokens, ast, and
// init.
//
// Source names given to any command are resolved first relative to the
// working directory and then against the search path, which is the list of
// --path directories prefixed onto $WMD_PATH. A name without an extension
// also matches the same name with the ".wmd" extension. The name "-" reads
// stdin.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
