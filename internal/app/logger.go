package app

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/langnav/internal/config"
)

// NewLogger builds the process logger from cfg, writes to w and installs it
// as the slog default.
//
// The json format renders durations as strings ("1.5s"). The text format
// adds the source position.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: format == "text",
	}

	var handler slog.Handler
	switch format {
	case "json":
		opts.ReplaceAttr = durationAsString
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(slog.String("app", "langnav"))
	slog.SetDefault(logger)
	return logger
}

// parseLevel accepts slog level names with optional offsets ("warn+2").
// Anything else is info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func durationAsString(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindDuration {
		return slog.String(a.Key, a.Value.Duration().Round(time.Microsecond).String())
	}
	return a
}
