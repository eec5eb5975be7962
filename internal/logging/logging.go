// Package logging configures structured logging for landx.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the default slog logger. Logs go to stderr so that
// command output on stdout (tables, JSON) stays machine-readable.
// Dev mode uses human-readable text at debug level; otherwise JSON at info.
func Setup(devMode bool) {
	if devMode {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		return
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
