package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" debug ", LevelDebug},
		{"info", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"info+2", Level(2)},
		{"verbose", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" JSON", FormatJSON},
		{"text", FormatText},
		{"xml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelsAndFormats(t *testing.T) {
	if got := Levels(); !slices.Equal(got,
		[]string{"trace", "debug", "info", "warn", "error"}) {
		t.Errorf("Levels() = %v", got)
	}

	if got := Formats(); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestOptions_ReturnCopies(t *testing.T) {
	base := makeConfig(nil)

	changed := apply(base,
		WithLevel(LevelError),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
	)

	if base.level != DefaultLevel || base.format != DefaultFormat ||
		base.caller != DefaultCaller || base.pretty != DefaultPretty {
		t.Errorf("options modified the original config: %+v", base)
	}

	if changed.level != LevelError || changed.format != FormatJSON ||
		!changed.caller || changed.pretty {
		t.Errorf("options not applied: %+v", changed)
	}
}

func TestMakeFormatTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 6, 7000, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-09T14:05:06Z"},
		{"rfc-3339-nano", "2024-03-09T14:05:06.000007Z"},
		{"Kitchen", "2:05PM"},
		{"DateTime", "2024-03-09 14:05:06"},
		{"2006/01/02", "2024/03/09"},
		{"none", ""},
		{"", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		if got := makeFormatTime(tt.layout)(ts); got != tt.want {
			t.Errorf("makeFormatTime(%q) = %q, want %q", tt.layout, got, tt.want)
		}
	}
}

func BenchmarkFormatTime(b *testing.B) {
	format := makeFormatTime(DefaultTimeLayout)
	ts := time.Now()

	for b.Loop() {
		_ = format(ts)
	}
}
