// Package logging wires the core's single structured-logging surface.
//
// Every core package accepts a *zap.SugaredLogger via constructor injection
// instead of reaching for a global. New builds a warn-level logger unless
// KOPI_LOG names another level, matching the RUST_LOG-style contract described in
// spec.md §6: components log at Debug on entry/exit of fallible work, Warn
// on recoverable races, and leave Error-level display to the command
// entrypoint.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a process-wide logger from the KOPI_LOG environment variable
// (one of "debug", "info", "warn", "error"; default "warn"). CI and NO_COLOR
// downgrade to a plain, non-colorized encoder.
func New() *zap.SugaredLogger {
	level := zapcore.WarnLevel
	switch strings.ToLower(os.Getenv("KOPI_LOG")) {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		// zap's own production config never fails to build in practice;
		// fall back to a discard logger rather than panic on a logging path.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't want core packages writing to stderr.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
