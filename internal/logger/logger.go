// Package logger provides leveled logging for the knowledge-base CLI.
//
// Package-level functions write through a shared logrus logger. Info and
// above are printed by default; --verbose enables debug messages and
// section headers, and the query command lowers output to errors only so
// that stdout stays machine-readable.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Format selects the log line encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	mu  sync.RWMutex
	std = newStd()
)

func newStd() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(textFormatter())
	l.SetLevel(logrus.InfoLevel)
	return l
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		DisableTimestamp:       false,
		FullTimestamp:          true,
		TimestampFormat:        "15:04:05",
		DisableLevelTruncation: true,
	}
}

func jsonFormatter() logrus.Formatter {
	return &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	}
}

func base() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	if v {
		base().SetLevel(logrus.DebugLevel)
		return
	}
	base().SetLevel(logrus.InfoLevel)
}

// IsVerbose returns true if debug logging is enabled.
func IsVerbose() bool {
	return base().IsLevelEnabled(logrus.DebugLevel)
}

// SetQuiet restricts output to errors.
func SetQuiet() {
	base().SetLevel(logrus.ErrorLevel)
}

// SetLevel parses and applies a level name (debug, info, warn, error).
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	base().SetLevel(lvl)
	return nil
}

// SetFormat switches between text and JSON output.
func SetFormat(f Format) error {
	switch f {
	case FormatText, "":
		base().SetFormatter(textFormatter())
	case FormatJSON:
		base().SetFormatter(jsonFormatter())
	default:
		return fmt.Errorf("unknown log format %q", f)
	}
	return nil
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	base().SetOutput(w)
}

// Reset restores the default level, format and output.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	std = newStd()
}

// Debug logs a message at debug level.
func Debug(format string, args ...any) {
	base().Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	l := base()
	if l.IsLevelEnabled(logrus.DebugLevel) {
		fmt.Fprintf(l.Out, "\n=== %s ===\n", name)
	}
}

// Info logs a message at info level.
func Info(format string, args ...any) {
	base().Infof(format, args...)
}

// Warn logs a message at warning level.
func Warn(format string, args ...any) {
	base().Warnf(format, args...)
}

// Error logs a message at error level.
func Error(format string, args ...any) {
	base().Errorf(format, args...)
}

// Logger is a logger carrying structured fields, such as a run ID.
// The zero value is not usable; create one with New.
type Logger struct {
	entry *logrus.Entry
}

// New returns a Logger writing through the shared logger with the given field.
func New(key string, value any) *Logger {
	return &Logger{entry: logrus.NewEntry(base()).WithField(key, value)}
}

// With returns a copy of l with an additional field.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// Debug logs a message at debug level.
func (l *Logger) Debug(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.entry.Infof(format, args...)
}

// Warn logs a message at warning level.
func (l *Logger) Warn(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.entry.Errorf(format, args...)
}
