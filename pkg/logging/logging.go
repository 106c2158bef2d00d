package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Level defines the severity of a log entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes Level satisfy fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Entry is the structured log entry delivered to the dashboard in TUI mode.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Subsystem string
	Message   string
	Err       error
}

var (
	defaultLogger *slog.Logger
	tuiChannel    chan Entry
	tuiMode       bool
)

const tuiChannelBufferSize = 2048

// InitForCLI initializes logging for CLI mode. Entries at or above
// filterLevel are written as slog text to the given writer.
//
// When serving MCP over stdio the writer must be os.Stderr: stdout
// carries the JSON-RPC stream and any log line on it corrupts framing.
func InitForCLI(filterLevel Level, output io.Writer) {
	tuiMode = false
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: filterLevel.slogLevel(),
	})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// InitForTUI initializes logging for dashboard mode. Entries are sent to
// the returned buffered channel, which the dashboard drains.
func InitForTUI(filterLevel Level) <-chan Entry {
	tuiMode = true
	tuiChannel = make(chan Entry, tuiChannelBufferSize)
	// Fallback handler for anything logged before the dashboard attaches.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: filterLevel.slogLevel(),
	})
	defaultLogger = slog.New(handler)
	return tuiChannel
}

func logInternal(level Level, subsystem string, err error, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	if tuiMode {
		if tuiChannel != nil {
			// Buffered send; only blocks if the dashboard stops draining.
			tuiChannel <- Entry{
				Timestamp: time.Now(),
				Level:     level,
				Subsystem: subsystem,
				Message:   msg,
				Err:       err,
			}
		}
		return
	}

	if defaultLogger == nil {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", level, subsystem, msg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  error: %v\n", err)
		}
		return
	}

	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	defaultLogger.LogAttrs(context.Background(), level.slogLevel(), msg, attrs...)
}

// Debug logs a debug message for the given subsystem.
func Debug(subsystem string, format string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, format, args...)
}

// Info logs an informational message for the given subsystem.
func Info(subsystem string, format string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, format, args...)
}

// Warn logs a warning message for the given subsystem.
func Warn(subsystem string, format string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, format, args...)
}

// Error logs an error with an accompanying message for the given subsystem.
func Error(subsystem string, err error, format string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, format, args...)
}
