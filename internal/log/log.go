// ABOUTME: Leveled logging wrapper around a zap SugaredLogger writing to stderr
// ABOUTME: Global level via SetLevel; Init switches between development and production configs

package log

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level constants matching zap levels.
const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(LevelInfo)
	logger = mustBuild(false)
)

func mustBuild(debug bool) *zap.SugaredLogger {
	l, err := build(debug)
	if err != nil {
		panic("log: build logger: " + err.Error())
	}
	return l
}

func build(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}
	cfg.Encoding = "console"
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// Init rebuilds the global logger. debug selects zap's development config
// and lowers the level to debug.
func Init(debug bool) error {
	l, err := build(debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	if debug {
		level.SetLevel(LevelDebug)
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// SetLogger replaces the global logger. Used by tests to capture output.
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLevel sets the global log level.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// GetLevel returns the current log level.
func GetLevel() zapcore.Level {
	return level.Level()
}

// ParseLevel maps a LOG_LEVEL style string to a level. Unknown values yield info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Sync flushes buffered entries.
func Sync() {
	_ = current().Sync()
}

// With returns a logger carrying the given key/value pairs.
func With(keysAndValues ...any) *zap.SugaredLogger {
	return current().With(keysAndValues...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	current().Infof(format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	current().Errorf(format, args...)
}
