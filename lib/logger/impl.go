package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// --------------------------------------------------------------------------
// Leveled Logger Implementation
// --------------------------------------------------------------------------

// pdictLogger implements the ILogger interface with custom formatting
type pdictLogger struct {
	name   string
	level  atomic.Int32
	logger *log.Logger
}

func (l *pdictLogger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

func (l *pdictLogger) enabled(level LogLevel) bool {
	return LogLevel(l.level.Load()) >= level
}

func (l *pdictLogger) Debugf(format string, args ...interface{}) {
	if l.enabled(DEBUG) {
		l.log("DEBUG", format, args...)
	}
}

func (l *pdictLogger) Infof(format string, args ...interface{}) {
	if l.enabled(INFO) {
		l.log("INFO", format, args...)
	}
}

func (l *pdictLogger) Warningf(format string, args ...interface{}) {
	if l.enabled(WARNING) {
		l.log("WARN", format, args...)
	}
}

func (l *pdictLogger) Errorf(format string, args ...interface{}) {
	if l.enabled(ERROR) {
		l.log("ERROR", format, args...)
	}
}

func (l *pdictLogger) Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *pdictLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// NewLogger creates a logger with an explicit level and output destination.
// It is mainly useful for tests that want to capture log output.
func NewLogger(name string, level LogLevel, out io.Writer) ILogger {
	l := &pdictLogger{
		name:   name,
		logger: log.New(out, "", log.Ldate|log.Ltime),
	}
	l.level.Store(int32(level))
	return l
}

// CreateLogger creates a logger for the given package name that writes to
// stdout at INFO level. Most packages of this module obtain their logger
// through this factory.
func CreateLogger(pkgName string) ILogger {
	return NewLogger(pkgName, INFO, os.Stdout)
}
