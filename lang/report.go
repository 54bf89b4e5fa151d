package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ardnew/wmd/log"
)

// Reporter receives diagnostics from the [Lexer] and [Parser].
// Reporting is fire-and-forget: callers never inspect what the sink does.
type Reporter interface {
	Report(line int, where, msg string)
}

// ReportError reports msg at line with no location detail.
func ReportError(r Reporter, line int, msg string) {
	r.Report(line, "", msg)
}

// ReportToken reports msg at tok, naming its lexeme or the end of input.
func ReportToken(r Reporter, tok Token, msg string) {
	r.Report(tok.Line, tokenWhere(tok), msg)
}

func tokenWhere(tok Token) string {
	if tok.Type == TokenEOF {
		return " at end"
	}

	return " at '" + tok.Lexeme + "'"
}

// Diagnostic is a single reported message.
type Diagnostic struct {
	Line    int
	Where   string
	Message string
}

// String returns the diagnostic in the canonical one-line format.
func (d Diagnostic) String() string {
	return formatDiagnostic(d.Line, d.Where, d.Message)
}

// WriterReporter writes each diagnostic as a line to an [io.Writer].
type WriterReporter struct {
	mu *sync.Mutex
	w  io.Writer
}

// NewWriterReporter returns a Reporter writing to w.
// A nil w discards diagnostics.
func NewWriterReporter(w io.Writer) WriterReporter {
	if w == nil {
		w = io.Discard
	}

	return WriterReporter{mu: &sync.Mutex{}, w: w}
}

// Report implements [Reporter].
func (r WriterReporter) Report(line int, where, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintln(r.w, formatDiagnostic(line, where, msg))
}

// Collector records diagnostics in the order reported.
type Collector struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

// Report implements [Reporter].
func (c *Collector) Report(line int, where, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.diagnostics = append(c.diagnostics, Diagnostic{
		Line:    line,
		Where:   where,
		Message: msg,
	})
}

// Diagnostics returns a copy of the recorded diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)

	return out
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.diagnostics)
}

// Reset discards all recorded diagnostics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.diagnostics = nil
}

// LogReporter logs each diagnostic at Warn level.
type LogReporter struct {
	Logger  log.Logger
	Context context.Context
}

// Report implements [Reporter].
func (r LogReporter) Report(line int, where, msg string) {
	ctx := r.Context
	if ctx == nil {
		ctx = log.DefaultContextProvider()
	}

	r.Logger.WarnContext(ctx, "diagnostic",
		slog.Int("line", line),
		slog.String("where", where),
		slog.String("message", msg),
	)
}

// Reporters fans each diagnostic out to every reporter in rs.
type Reporters []Reporter

// Report implements [Reporter].
func (rs Reporters) Report(line int, where, msg string) {
	for _, r := range rs {
		if r != nil {
			r.Report(line, where, msg)
		}
	}
}

// discard is the Reporter used when none is supplied.
type discard struct{}

func (discard) Report(int, string, string) {}
