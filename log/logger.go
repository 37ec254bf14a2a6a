package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// LogLevel represents logging severity
type LogLevel int

const (
	// LogLevelDebug for detailed debugging information
	LogLevelDebug LogLevel = iota
	// LogLevelInfo for general informational messages
	LogLevelInfo
	// LogLevelWarn for warning messages
	LogLevelWarn
	// LogLevelError for error messages
	LogLevelError
	// LogLevelNone disables all logging
	LogLevelNone
)

// Logger is the logging interface accepted by every clickflow package.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// NoOpLogger is a logger that doesn't log anything
type NoOpLogger struct{}

// Debug does nothing
func (l *NoOpLogger) Debug(format string, v ...any) {}

// Info does nothing
func (l *NoOpLogger) Info(format string, v ...any) {}

// Warn does nothing
func (l *NoOpLogger) Warn(format string, v ...any) {}

// Error does nothing
func (l *NoOpLogger) Error(format string, v ...any) {}

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// ParseLevel converts a configuration level name to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "none", "off", "disable":
		return LogLevelNone, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

var (
	mu            sync.RWMutex
	defaultLogger Logger = NewWriterLogger(os.Stderr, LogLevelInfo)
)

// SetDefaultLogger sets the package-level logger
func SetDefaultLogger(logger Logger) {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
}

// GetDefaultLogger returns the current package-level logger
func GetDefaultLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Setup replaces the package-level logger with a golog-backed logger writing
// to out at the given level.
func Setup(out io.Writer, level LogLevel) {
	SetDefaultLogger(NewWriterLogger(out, level))
}

// Component returns a logger that prefixes messages with "[name] " and
// forwards them to the package-level logger current at call time.
func Component(name string) Logger {
	return &componentLogger{prefix: "[" + name + "] "}
}

type componentLogger struct {
	prefix string
}

func (c *componentLogger) Debug(format string, v ...any) {
	GetDefaultLogger().Debug(c.prefix+format, v...)
}

func (c *componentLogger) Info(format string, v ...any) {
	GetDefaultLogger().Info(c.prefix+format, v...)
}

func (c *componentLogger) Warn(format string, v ...any) {
	GetDefaultLogger().Warn(c.prefix+format, v...)
}

func (c *componentLogger) Error(format string, v ...any) {
	GetDefaultLogger().Error(c.prefix+format, v...)
}

// Debug logs a debug message using the package-level logger
func Debug(format string, v ...any) {
	GetDefaultLogger().Debug(format, v...)
}

// Info logs an informational message using the package-level logger
func Info(format string, v ...any) {
	GetDefaultLogger().Info(format, v...)
}

// Warn logs a warning message using the package-level logger
func Warn(format string, v ...any) {
	GetDefaultLogger().Warn(format, v...)
}

// Error logs an error message using the package-level logger
func Error(format string, v ...any) {
	GetDefaultLogger().Error(format, v...)
}
