// Package observability provides structured logging and OpenTelemetry
// metrics for dictionaries.
package observability

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/iku50/dict/config"
)

const attrComponent = "component"

// NewLogger builds a text or JSON slog logger from the logging settings.
// Every record carries component=dict.
func NewLogger(cfg config.LoggingConfig, out io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, fmt.Errorf("logger level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler

	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "text", "":
		handler = slog.NewTextHandler(out, opts)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidLogFormat, cfg.Format)
	}

	return slog.New(handler).With(slog.String(attrComponent, "dict")), nil
}
