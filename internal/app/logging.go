package app

import (
	"log/slog"
	"os"
	"strings"
)

// SetupLogger installs a JSON slog handler at the configured level as the default.
func SetupLogger(level, env string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})).With(
		slog.String("app", "hris-attendance"),
		slog.String("env", env),
	)
	slog.SetDefault(logger)
	return logger
}
