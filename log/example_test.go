package log_test

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/wmd/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelInfo),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Debug("hidden")
	logger.Info("evaluated", slog.String("value", "30s"))

	// Output:
	// level=INFO msg=evaluated value=30s
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithPretty(false)).
		With(slog.String("source", "main.wmd"))

	logger.Warn("runtime error", slog.Int("line", 2))

	// Output:
	// {"level":"WARN","msg":"runtime error","source":"main.wmd","line":2}
}

func ExampleLogger_Wrap() {
	base := log.Make(os.Stdout, log.WithTimeLayout("none"), log.WithPretty(false))
	trace := base.Wrap(log.WithLevel(log.LevelTrace))

	base.Trace("dropped")
	trace.Trace("scanned", slog.Int("tokens", 7))

	// Output:
	// level=TRACE msg=scanned tokens=7
}

func ExampleParseLevel() {
	fmt.Println(log.ParseLevel("TRACE"))
	fmt.Println(log.ParseLevel("bogus"))

	// Output:
	// trace
	// warn
}
