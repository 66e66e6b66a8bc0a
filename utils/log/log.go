// Package log provides a logging backend, based around the go-logging package.
package log

import (
	"fmt"
	"io"

	"gopkg.in/op/go-logging.v1"
)

// Backend is a log backend.
type Backend struct {
	w       io.Writer
	backend logging.LeveledBackend
}

// GetLogger returns a per-module logger that writes to the backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	l := logging.MustGetLogger(module)
	l.SetBackend(b.backend)
	return l
}

// New initializes a logging backend writing on w at the given level.
// If disable is true, everything is discarded.
func New(w io.Writer, level string, disable bool) (*Backend, error) {
	b := new(Backend)

	lvl, err := logLevelFromString(level)
	if err != nil {
		return nil, err
	}

	if disable || w == nil {
		b.w = io.Discard
	} else {
		b.w = w
	}

	logFmt := logging.MustStringFormatter("%{time:15:04:05.000} %{level:.4s} %{module}: %{message}")
	base := logging.NewLogBackend(b.w, "", 0)
	formatted := logging.NewBackendFormatter(base, logFmt)
	b.backend = logging.AddModuleLevel(formatted)
	b.backend.SetLevel(lvl, "")
	return b, nil
}

// Discard returns a backend that drops every record.
func Discard() *Backend {
	b, err := New(nil, "ERROR", true)
	if err != nil {
		panic(err)
	}
	return b
}

func logLevelFromString(l string) (logging.Level, error) {
	switch l {
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING":
		return logging.WARNING, nil
	case "NOTICE":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	default:
		return logging.CRITICAL, fmt.Errorf("log: invalid level: '%v'", l)
	}
}
