package senios

import (
	"os"

	"github.com/charmbracelet/log"
)

var pkgLogger Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "senios"})

// Logger is satisfied by *log.Logger from github.com/charmbracelet/log.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// Replaces the package logger. Adapters in this module log through the
// same logger (see [CurrentLogger]).
func SetLogger(logger Logger) {
	pkgLogger = logger
}

// Returns the logger installed with [SetLogger].
func CurrentLogger() Logger {
	return pkgLogger
}
