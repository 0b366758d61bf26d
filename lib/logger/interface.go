package logger

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Log Levels
// --------------------------------------------------------------------------

// LogLevel controls the verbosity of a logger. Higher levels include all
// lower ones, so a logger at INFO also emits WARNING and ERROR messages.
type LogLevel int32

const (
	CRITICAL LogLevel = iota // 0: Only panics.
	ERROR                    // 1: Errors.
	WARNING                  // 2: Warnings and errors.
	INFO                     // 3: Informational messages and above (default).
	DEBUG                    // 4: Everything.
)

// String returns the canonical name of the level.
func (l LogLevel) String() string {
	switch l {
	case CRITICAL:
		return "critical"
	case ERROR:
		return "error"
	case WARNING:
		return "warning"
	case INFO:
		return "info"
	case DEBUG:
		return "debug"
	default:
		return fmt.Sprintf("LogLevel(%d)", int32(l))
	}
}

// ParseLevel converts a string level (e.g. from an environment variable)
// to a LogLevel. It accepts the names returned by String plus the common
// abbreviation "warn".
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "critical":
		return CRITICAL, nil
	case "error":
		return ERROR, nil
	case "warning", "warn":
		return WARNING, nil
	case "info":
		return INFO, nil
	case "debug":
		return DEBUG, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error, critical", level)
	}
}

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// ILogger is the leveled logging interface used by all packages of this
// module. Implementations must be safe for concurrent use.
type ILogger interface {
	// SetLevel changes the verbosity of the logger.
	SetLevel(level LogLevel)
	// Debugf logs a message at DEBUG level.
	Debugf(format string, args ...interface{})
	// Infof logs a message at INFO level.
	Infof(format string, args ...interface{})
	// Warningf logs a message at WARNING level.
	Warningf(format string, args ...interface{})
	// Errorf logs a message at ERROR level.
	Errorf(format string, args ...interface{})
	// Panicf formats the message and panics with it.
	Panicf(format string, args ...interface{})
}
