// Package log wraps [log/slog] with functional-option configuration, a trace
// level below debug, and styled terminal output.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Debug("parsed", slog.Int("statements", 3))
//
// Logging methods take [slog.Attr] values rather than alternating key/value
// arguments. Each level has a context-aware variant; the others use
// [DefaultContextProvider].
//
// # Default logger
//
// The package-level functions ([Debug], [Warn], ...) write through a default
// logger that starts on stderr at [DefaultLevel]. [Config] reconfigures it
// and is safe to call while other goroutines log.
//
// # Pretty output
//
// With [WithPretty] (the default), text records render as one colored line
// and JSON records are indented across lines. Color is only emitted when the
// output is a terminal.
package log
