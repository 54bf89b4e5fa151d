package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles colors the parts of a text record. Styles come from a
// renderer bound to the output, so color is dropped when the output is not a
// terminal.
type prettyStyles struct {
	time, key, message, str, number, source lipgloss.Style

	trueValue, falseValue lipgloss.Style

	trace, debug, info, warn, error lipgloss.Style
}

func makePrettyStyles(w io.Writer) prettyStyles {
	r := lipgloss.NewRenderer(w)

	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return prettyStyles{
		time:       fg("8"),
		key:        fg("8"),
		message:    r.NewStyle().Bold(true),
		str:        fg("6"),
		number:     fg("3"),
		source:     fg("8").Italic(true),
		trueValue:  fg("2"),
		falseValue: fg("1"),
		trace:      fg("5"),
		debug:      fg("4"),
		info:       fg("2"),
		warn:       fg("3").Bold(true),
		error:      fg("1").Bold(true),
	}
}

func (s prettyStyles) level(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return s.error
	case level >= slog.LevelWarn:
		return s.warn
	case level >= slog.LevelInfo:
		return s.info
	case level >= slog.LevelDebug:
		return s.debug
	default:
		return s.trace
	}
}

// prettyHandler writes each record as a single colored line:
//
//	TIME LEVEL source message key=value ...
//
// Attributes added with WithAttrs are kept; groups prefix keys with dots.
type prettyHandler struct {
	opts   slog.HandlerOptions
	styles prettyStyles
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	prefix string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		styles: makePrettyStyles(w),
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if t := h.replace(slog.Time(slog.TimeKey, r.Time)); t.Key != "" {
			buf.WriteString(h.styles.time.Render(t.Value.String()))
			buf.WriteByte(' ')
		}
	}

	label := levelLabel(r.Level)
	buf.WriteString(h.styles.level(r.Level).Render(label))

	if pad := 5 - len(label); pad > 0 {
		buf.WriteString(strings.Repeat(" ", pad))
	}

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			buf.WriteByte(' ')
			buf.WriteString(h.styles.source.Render(
				src.File + ":" + strconv.Itoa(src.Line)))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.message.Render(r.Message))

	for _, a := range h.attrs {
		h.writeAttr(&buf, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, group, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.renderValue(a.Value))
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		return h.styles.number.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.styles.trueValue.Render("true")
		}

		return h.styles.falseValue.Render("false")

	case slog.KindTime:
		return h.styles.time.Render(v.Time().Format(DefaultTimeLayout))

	default:
		return h.styles.str.Render(v.String())
	}
}

// indentWriter re-indents each JSON record written to it. It relies on
// [slog.JSONHandler] writing exactly one record per Write call.
type indentWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func newIndentWriter(w io.Writer) indentWriter {
	return indentWriter{mu: &sync.Mutex{}, w: w}
}

func (iw indentWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer

	if err := json.Indent(&buf, bytes.TrimSpace(p), "", "  "); err != nil {
		buf.Reset()
		buf.Write(bytes.TrimSpace(p))
	}

	buf.WriteByte('\n')

	iw.mu.Lock()
	defer iw.mu.Unlock()

	if _, err := iw.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}

	return len(p), nil
}
