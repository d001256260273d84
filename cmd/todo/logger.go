package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/davidroman0O/gohooks"
)

// ConsoleLogger adapts a slog.Logger to gohooks.Logger.
type ConsoleLogger struct {
	logger *slog.Logger
}

var _ gohooks.Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger creates a logger writing text records to out. Debug
// records are only written when verbose is set.
func NewConsoleLogger(out io.Writer, verbose bool) *ConsoleLogger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: logLevel,
	})
	return &ConsoleLogger{logger: slog.New(handler)}
}

func (l *ConsoleLogger) log(level slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	l.logger.Log(ctx, level, fmt.Sprintf(format, args...))
}

// Debug implements gohooks.Logger.
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	l.log(slog.LevelDebug, format, args...)
}

// Info implements gohooks.Logger.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.log(slog.LevelInfo, format, args...)
}

// Warn implements gohooks.Logger.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.log(slog.LevelWarn, format, args...)
}

// Error implements gohooks.Logger.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.log(slog.LevelError, format, args...)
}
