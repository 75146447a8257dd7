// Package logging configures the harness loggers.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

var (
	base       = newBase()
	driverLog  = logrus.New()
	quietOnce  sync.Once
	quietState bool
	quietMu    sync.RWMutex
)

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// New returns the harness logger with its level set from a level string.
func New(level string) (*logrus.Logger, error) {
	if level == "" {
		return base, nil
	}
	pl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	base.SetLevel(pl)
	return base, nil
}

// Logger returns the harness logger.
func Logger() *logrus.Logger {
	return base
}

// WithCategory returns an entry tagged with a category field, the same
// shape k6-style loggers use.
func WithCategory(category string) *logrus.Entry {
	return base.WithField("category", category)
}

// Driver returns the entry used for browser driver chatter.
func Driver() *logrus.Entry {
	return driverLog.WithField("category", "driver")
}

// QuietDriver lowers driver verbosity to errors for the rest of the process.
// Only the first call has an effect; there is no reset.
func QuietDriver() {
	quietOnce.Do(func() {
		driverLog.SetOutput(base.Out)
		driverLog.SetFormatter(base.Formatter)
		driverLog.SetLevel(logrus.ErrorLevel)

		quietMu.Lock()
		quietState = true
		quietMu.Unlock()
	})
}

// Quiet reports whether QuietDriver has run.
func Quiet() bool {
	quietMu.RLock()
	defer quietMu.RUnlock()
	return quietState
}

// driverWriters pipes the driver's stdout and stderr into the driver logger.
// The pair is created once; logrus writers each hold a goroutine.
var (
	writersOnce  sync.Once
	driverStdout io.Writer
	driverStderr io.Writer
)

func driverWriters() (io.Writer, io.Writer) {
	writersOnce.Do(func() {
		driverStdout = driverLog.WriterLevel(logrus.InfoLevel)
		driverStderr = driverLog.WriterLevel(logrus.ErrorLevel)
	})
	return driverStdout, driverStderr
}

// RunOptions returns the playwright driver options matching the current
// verbosity. A Logger is always set so playwright leaves the standard
// library's log output alone.
func RunOptions() *playwright.RunOptions {
	stdout, stderr := driverWriters()

	level := slog.LevelInfo
	if Quiet() {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return &playwright.RunOptions{
		Verbose: !Quiet(),
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
	}
}
