package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/SKyletoft/lang-experiment/pkg/driver"
)

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "":
		return slog.LevelWarn, fmt.Errorf("--log-level expects a value")
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level '%s' (expected debug, info, warn or error)", value)
	}
}

// resolveLogLevel prefers the flag, then LANG_LOG, then the manifest.
func resolveLogLevel(opts globalOptions, manifest *driver.Manifest) (slog.Level, error) {
	if opts.logLevel != "" {
		return parseLogLevel(opts.logLevel)
	}
	if env := strings.TrimSpace(os.Getenv("LANG_LOG")); env != "" {
		level, err := parseLogLevel(env)
		if err != nil {
			return level, fmt.Errorf("LANG_LOG: %w", err)
		}
		return level, nil
	}
	if manifest != nil && manifest.Settings.LogLevel != "" {
		return parseLogLevel(manifest.Settings.LogLevel)
	}
	return slog.LevelWarn, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
