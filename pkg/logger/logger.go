package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents logging verbosity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a config string into a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled file logger with printf-style methods.
// When the file path is empty it writes to stdout.
type Logger struct {
	mu    sync.Mutex
	level Level
	file  *os.File
	out   *log.Logger
}

// New creates a logger writing to the given file at the given level
func New(filePath string, level string) (*Logger, error) {
	l := &Logger{
		level: ParseLevel(level),
	}

	if filePath == "" {
		l.out = log.New(os.Stdout, "", log.LstdFlags)
		return l, nil
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: failed to open log file %s: %w", filePath, err)
	}

	l.file = f
	l.out = log.New(f, "", log.LstdFlags)
	return l, nil
}

// Close releases the underlying log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) print(level Level, tag string, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("%s %s", tag, fmt.Sprintf(format, v...))
}

// Debug logs a debug-level message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.print(LevelDebug, "[DEBUG]", format, v...)
}

// Info logs an info-level message
func (l *Logger) Info(format string, v ...interface{}) {
	l.print(LevelInfo, "[INFO]", format, v...)
}

// Warn logs a warning-level message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.print(LevelWarn, "[WARN]", format, v...)
}

// Error logs an error-level message
func (l *Logger) Error(format string, v ...interface{}) {
	l.print(LevelError, "[ERROR]", format, v...)
}

// Fatal logs an error-level message and terminates the process
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.print(LevelError, "[FATAL]", format, v...)
	if l.file != nil {
		_ = l.file.Close()
	}
	os.Exit(1)
}
