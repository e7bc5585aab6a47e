package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrInvalidFormat is returned for an unknown output format.
var ErrInvalidFormat = errors.New("logger: invalid format")

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config selects the level and encoding of the stdout handler.
type Config struct {
	Level  string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`
	Format string `env:"FOLIO_LOG_FORMAT" envDefault:"json"`
}

// Handler builds the base handler for cfg writing to w.
func (cfg Config) Handler(w io.Writer) (slog.Handler, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("logger: level %q: %w", cfg.Level, err)
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	case FormatText:
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}
}

// New returns a JSON logger on stdout at info level.
func New(extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(WithExtractors(h, extractors...))
}

// NewWithConfig is New with a configurable level and format.
func NewWithConfig(cfg Config, w io.Writer, extractors ...ContextExtractor) (*slog.Logger, error) {
	h, err := cfg.Handler(w)
	if err != nil {
		return nil, err
	}
	return slog.New(WithExtractors(h, extractors...)), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
