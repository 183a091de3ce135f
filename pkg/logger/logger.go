package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide logger. Usable before Init for early startup and
// tests; Init replaces it with the configured handler.
var Log = slog.Default()

// Init sets up the global JSON logger. Debug level outside release mode.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("GIN_MODE") != "release" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}
