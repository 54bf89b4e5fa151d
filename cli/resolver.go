package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/wmd/log"
)

// resolve is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The YAML document is converted as follows:
//   - Top-level keys name flags, with hyphens or underscores
//     (e.g., "log-level" or "log_level")
//   - Nested mappings are flattened by joining keys with hyphens, so
//     {log: {level: debug}} sets --log-level
//   - Sequences are joined with commas for slice flags
//   - Scalars are passed to kong in their string form
//
// Example config file:
//
//	log:
//	  level: debug
//	  pretty: false
//	path:
//	  - ~/lib/wmd
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-pretty=false
//	--path=~/lib/wmd
//
// Command-line flags override config file values. An empty file is an empty
// configuration; a malformed file is logged and ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring malformed configuration",
				slog.Any("error", err),
			)
		}

		return config{}, nil
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for flattened YAML configs.
type config map[string]any

// flatten adds each leaf of m to c, keyed by its hyphen-joined path.
func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		name := key
		if prefix != "" {
			name = prefix + "-" + key
		}

		name = strings.ReplaceAll(name, "_", "-")

		if nested, ok := value.(map[string]any); ok {
			c.flatten(name, nested)

			continue
		}

		c[name] = scalar(value)
	}
}

// scalar converts a decoded YAML value into the string form kong parses.
// Kong requires numbers as strings for parsing.
func scalar(value any) any {
	switch v := value.(type) {
	case nil, string, bool:
		return v

	case int:
		return strconv.Itoa(v)

	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(scalar(item))
		}

		return strings.Join(items, ",")

	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Keys were normalized to hyphens when flattened.
	if value, ok := c[strings.ReplaceAll(flag.Name, "_", "-")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
