package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger writing to path, or discarding everything when
// path is empty. The screen belongs to the UI, so logs never go to stderr.
// The returned close function releases the file.
func NewLogger(path string, debug bool) (*logrus.Logger, func() error, error) {
	if path == "" {
		return DiscardLogger(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log := newLogger(f)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log, f.Close, nil
}

// DiscardLogger returns a logger with no output.
func DiscardLogger() *logrus.Logger {
	return newLogger(io.Discard)
}

func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
	log.SetLevel(logrus.InfoLevel)
	return log
}
