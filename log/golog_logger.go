package log

import (
	"io"

	"github.com/kataras/golog"
)

// gologLevels maps each LogLevel to the golog level name it enables.
var gologLevels = map[LogLevel]string{
	LogLevelDebug: "debug",
	LogLevelInfo:  "info",
	LogLevelWarn:  "warn",
	LogLevelError: "error",
	LogLevelNone:  "disable",
}

// GologLogger is the default Logger, backed by a kataras/golog instance.
// The wrapper and the golog instance share one threshold.
type GologLogger struct {
	logger *golog.Logger
	level  LogLevel
}

var _ Logger = (*GologLogger)(nil)

// NewGologLogger wraps an existing golog.Logger at info level.
func NewGologLogger(logger *golog.Logger) *GologLogger {
	l := &GologLogger{logger: logger}
	l.SetLevel(LogLevelInfo)
	return l
}

// NewWriterLogger creates a golog-backed logger that writes to out.
func NewWriterLogger(out io.Writer, level LogLevel) *GologLogger {
	g := golog.New()
	g.SetOutput(out)
	g.SetPrefix("[clickflow] ")
	l := &GologLogger{logger: g}
	l.SetLevel(level)
	return l
}

func (l *GologLogger) enabled(level LogLevel) bool {
	return l.level != LogLevelNone && level >= l.level
}

func (l *GologLogger) Debug(format string, v ...any) {
	if l.enabled(LogLevelDebug) {
		l.logger.Debugf(format, v...)
	}
}

func (l *GologLogger) Info(format string, v ...any) {
	if l.enabled(LogLevelInfo) {
		l.logger.Infof(format, v...)
	}
}

func (l *GologLogger) Warn(format string, v ...any) {
	if l.enabled(LogLevelWarn) {
		l.logger.Warnf(format, v...)
	}
}

func (l *GologLogger) Error(format string, v ...any) {
	if l.enabled(LogLevelError) {
		l.logger.Errorf(format, v...)
	}
}

// SetLevel changes the threshold of the wrapper and of the golog instance.
// Unknown levels fall back to info.
func (l *GologLogger) SetLevel(level LogLevel) {
	name, ok := gologLevels[level]
	if !ok {
		level, name = LogLevelInfo, "info"
	}
	l.level = level
	l.logger.SetLevel(name)
}

// GetLevel returns the current threshold.
func (l *GologLogger) GetLevel() LogLevel {
	return l.level
}
