package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Program is a parsed statement sequence.
type Program []Stmt

// Tokens is a scanned token sequence.
type Tokens []Token

// ToMap returns a structural representation of the token.
func (t Token) ToMap() map[string]any {
	m := map[string]any{
		"type":   t.Type.String(),
		"lexeme": t.Lexeme,
		"line":   t.Line,
	}

	if t.Literal != nil {
		m["literal"] = NativeValue(t.Literal)
	}

	return m
}

// ToMap returns a structural representation of each token.
func (ts Tokens) ToMap() []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = t.ToMap()
	}

	return out
}

// ToMap returns a structural representation of each statement.
func (p Program) ToMap() []any {
	out := make([]any, len(p))
	for i, s := range p {
		out[i] = s.ToMap()
	}

	return out
}

// Format writes one token per line.
func (ts Tokens) Format(_ context.Context, w io.Writer) error {
	for _, t := range ts {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}

	return nil
}

// Format writes each statement as an S-expression on its own line.
func (p Program) Format(_ context.Context, w io.Writer) error {
	for _, s := range p {
		if _, err := fmt.Fprintln(w, s.String()); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the tokens as a JSON array.
func (ts Tokens) FormatJSON(ctx context.Context, w io.Writer, indent int) error {
	return formatJSON(ctx, w, ts.ToMap(), indent)
}

// FormatYAML writes the tokens as a YAML sequence.
func (ts Tokens) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	return formatYAML(ctx, w, ts.ToMap(), indent)
}

// FormatJSON writes the statements as a JSON array.
func (p Program) FormatJSON(ctx context.Context, w io.Writer, indent int) error {
	return formatJSON(ctx, w, p.ToMap(), indent)
}

// FormatYAML writes the statements as a YAML sequence.
func (p Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	return formatYAML(ctx, w, p.ToMap(), indent)
}

func formatJSON(_ context.Context, w io.Writer, v any, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

func formatYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
