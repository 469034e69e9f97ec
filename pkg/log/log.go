// Package log defines the logging interface the emulator
// components write to, and a default implementation backed
// by logrus.
package log

import (
	"github.com/sirupsen/logrus"
)

// Logger is the interface components log through.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger writing to stderr at info level.
func New() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// NewWithLevel returns a Logger at the named logrus level,
// falling back to info when the name doesn't parse.
func NewWithLevel(level string) Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return l
}
