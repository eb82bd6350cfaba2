// Package logger provides leveled logging for the boardpack CLI.
// Errors are always written. Debug, info and warning messages are written
// only in verbose mode, enabled by the --verbose flag, to help users follow
// the extraction and agenda pipeline.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	level             = new(slog.LevelVar)
	log     *slog.Logger
)

func init() {
	level.Set(slog.LevelError)
	log = newLogger(output)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelError)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = newLogger(w)
}

// Logger returns the underlying structured logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...any) {
	emit(slog.LevelDebug, format, args...)
}

// Info logs a formatted message at info level.
func Info(format string, args ...any) {
	emit(slog.LevelInfo, format, args...)
}

// Warn logs a formatted message at warning level.
func Warn(format string, args ...any) {
	emit(slog.LevelWarn, format, args...)
}

// Error logs a formatted message. Errors are written even without --verbose.
func Error(format string, args ...any) {
	emit(slog.LevelError, format, args...)
}

// Section marks the start of a pipeline stage.
func Section(name string) {
	Logger().Info("stage", "section", name)
}

func emit(lvl slog.Level, format string, args ...any) {
	l := Logger()
	if !l.Enabled(context.Background(), lvl) {
		return
	}
	l.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}
