// Package logger writes structured logs to a rotating file. The terminal
// belongs to the UI, so nothing is ever written to stdout or stderr.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var (
	mu     sync.Mutex
	level  = new(slog.LevelVar)
	base   *slog.Logger
	file   *lumberjack.Logger
	opened string
)

// DefaultLogPath returns the log file used when Init is never called.
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), "decoy-debug.log")
}

// SetDebug switches between debug and info level. It can be called before
// or after Init.
func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Init opens path as the log file. Later calls are no-ops until Close or
// Reset.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if base != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	openLocked(path)
	return nil
}

func openLocked(path string) {
	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	opened = path
	base = slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	base.Info("logger initialized", "path", path, "level", level.Level())
}

// get returns the root logger, opening the default file on first use.
func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		openLocked(DefaultLogPath())
	}
	return base
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
	}
	file = nil
	base = nil
}

// Reset closes the log file and restores the info level, for tests.
func Reset() {
	Close()
	mu.Lock()
	opened = ""
	mu.Unlock()
	level.Set(slog.LevelInfo)
}

// Path returns the file being written, or "" before the first log line.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return opened
}

// Get returns the root logger.
func Get() *slog.Logger {
	return get()
}

// WithComponent returns a logger tagged with component.
//
//	log := logger.WithComponent("api")
//	log.Info("request sent", "path", "/ingest")
func WithComponent(component string) *slog.Logger {
	return get().With(slog.String("component", component))
}

// WithSession returns a logger tagged with the backend session ID.
func WithSession(sessionID string) *slog.Logger {
	return get().With(slog.String("sessionID", sessionID))
}
