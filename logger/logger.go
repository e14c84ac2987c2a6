// Package logger provides the process-wide structured logger.
//
// Log output goes to a rotating file rather than stdout, so the chat
// transcript on the terminal stays clean.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It discards everything until Init is
// called, which keeps library code and tests free of nil checks.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init configures the global logger to write JSON records to the given
// file path with rotation. An empty path keeps the discard logger.
func Init(logLevel, path string) {
	if path == "" {
		return
	}

	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	Logger = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
