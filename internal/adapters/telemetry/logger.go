package telemetry

import (
	"io"
	"log/slog"
)

// SetupLogger installs the default slog logger.
// JSON output is used in production; text output everywhere else.
// Source locations are added only at debug level.
func SetupLogger(w io.Writer, json bool, level slog.Level) {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
