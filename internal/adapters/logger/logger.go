// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/zerr"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	out    io.Writer
	level  slog.Level
}

// New creates a Logger writing human-readable text to stderr.
func New() *Logger {
	l := &Logger{out: os.Stderr, level: slog.LevelInfo}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	l.logger = slog.New(slog.NewTextHandler(l.out, &slog.HandlerOptions{Level: l.level}))
}

// SetOutput redirects the logger, e.g. to a file or a test buffer.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.rebuild()
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its zerr metadata as attributes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	zerr.Log(context.Background(), l.logger, err)
}
