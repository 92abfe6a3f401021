package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	applogging "github.com/andrescamacho/mediator-go/internal/application/logging"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/config"
)

// SlogLogger adapts a *slog.Logger to the application Logger interface
type SlogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

// NewSlogLogger builds a logger from the logging configuration
func NewSlogLogger(cfg config.LoggingConfig) (*SlogLogger, error) {
	var out io.Writer
	var closer io.Closer

	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "", "stderr":
		out = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.FilePath, err)
		}
		out = f
		closer = f
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	logger, err := newSlog(out, cfg)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	return &SlogLogger{logger: logger, closer: closer}, nil
}

// NewSlogLoggerFromWriter builds a logger writing to w, mostly for tests
func NewSlogLoggerFromWriter(w io.Writer, cfg config.LoggingConfig) (*SlogLogger, error) {
	logger, err := newSlog(w, cfg)
	if err != nil {
		return nil, err
	}
	return &SlogLogger{logger: logger}, nil
}

func newSlog(w io.Writer, cfg config.LoggingConfig) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", cfg.Format)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log implements the application Logger interface
func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, metadata[k]))
	}

	l.logger.LogAttrs(context.Background(), parseLevel(level), message, attrs...)
}

// Close releases the log file, if any
func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

var _ applogging.Logger = (*SlogLogger)(nil)
