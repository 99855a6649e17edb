// Package log provides the logging interface used across the emulator
// core. Components never import logrus directly; they take a Logger so
// that tests can substitute NewNullLogger and stay silent.
package log

import "github.com/sirupsen/logrus"

// Logger is the logging interface satisfied by every component that
// needs to report diagnostics.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a logrus-backed Logger with a plain, non-coloured
// formatter, matching the MMU's own logger construction in the teacher
// this package is modelled on.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
	}
	return l
}

// NewLeveled returns a logrus-backed Logger at the given level. The
// name is parsed by logrus.ParseLevel ("debug", "info", "warn",
// "error", and logrus's other level names); an unrecognized name falls
// back to "info".
func NewLeveled(level string) Logger {
	l := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
	}
	return l
}
