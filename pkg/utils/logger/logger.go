// The package logger defines a simple logger with DEBUG, INFO, WARN and ERROR prints.
package logger

import (
	"io"
	"log"
)

type Aggregate struct {
	DebugLogger *log.Logger
	InfoLogger  *log.Logger
	WarnLogger  *log.Logger
	ErrorLogger *log.Logger
}

// New() returns an initialized Logger. DEBUG prints are discarded until EnableDebug() is called.
func New(out io.Writer) *Aggregate {
	return &Aggregate{
		DebugLogger: log.New(io.Discard, "DEBUG: ", log.LstdFlags|log.Lmicroseconds),
		InfoLogger:  log.New(out, "INFO: ", log.LstdFlags),
		WarnLogger:  log.New(out, "WARN: ", log.LstdFlags),
		ErrorLogger: log.New(out, "ERROR: ", log.LstdFlags),
	}
}

// Discard() returns a Logger that prints nothing. Useful in tests.
func Discard() *Aggregate {
	return New(io.Discard)
}

// EnableDebug() makes DEBUG prints go to the same writer as INFO prints.
func (l *Aggregate) EnableDebug() {
	l.DebugLogger.SetOutput(l.InfoLogger.Writer())
}

// Debug() prints a DEBUG log
func (l *Aggregate) Debug(s string, v ...interface{}) {
	l.DebugLogger.Printf(s, v...)
}

// Info() prints an INFO log
func (l *Aggregate) Info(s string, v ...interface{}) {
	l.InfoLogger.Printf(s, v...)
}

// Warn() prints an WARN log
func (l *Aggregate) Warn(s string, v ...interface{}) {
	l.WarnLogger.Printf(s, v...)
}

// Error() prints an ERROR log
func (l *Aggregate) Error(s string, v ...interface{}) {
	l.ErrorLogger.Printf(s, v...)
}
