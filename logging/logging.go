package logging

import (
	"io"
	"log/slog"
	"os"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LevelTrace is the slog level used for TraceLevel messages
const LevelTrace = slog.LevelDebug - 4

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// ParseLogLevel translates a string representation back to a log level enum.
// Unknown strings map to InfoLevel.
func ParseLogLevel(s string) int {
	switch s {
	case "TRACE", "trace":
		return TraceLevel
	case "DEBUG", "debug":
		return DebugLevel
	case "WARN", "warn", "WARNING", "warning":
		return WarnLevel
	case "ERROR", "error":
		return ErrorLevel
	case "FATAL", "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// ToSlogLevel translates a log level enum to the equivalent slog.Level
func ToSlogLevel(level int) slog.Level {
	switch level {
	case TraceLevel:
		return LevelTrace
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	default:
		// fatal messages are logged as errors, exiting is up to the caller
		return slog.LevelError
	}
}

// New produces a text logger writing messages at or above level to w
func New(w io.Writer, level int) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ToSlogLevel(level)}))
}

var defaultLogger = New(os.Stderr, WarnLevel)

// Default returns the logger used by tables and containers which were not given one
func Default() *slog.Logger {
	return defaultLogger
}

// Discard returns a logger which drops every message
func Discard() *slog.Logger {
	return New(io.Discard, FatalLevel)
}
