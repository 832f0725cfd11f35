package log

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog.Logger and makes it the default.
// Actions log to stdout so lines interleave correctly with workflow commands.
func Setup(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
