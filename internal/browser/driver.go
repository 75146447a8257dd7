// Package browser starts browser sessions and exposes them through a small
// driver interface used by the test fixture and the failure reporter.
package browser

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrSessionClosed is returned by every Driver method once Quit has run.
var ErrSessionClosed = errors.New("browser session closed")

// Log channel names
const (
	LogBrowser = "browser"
	LogDriver  = "driver"
)

// Driver is the handle of one running browser session.
type Driver interface {
	Navigate(url string) error
	Click(selector string) error
	Fill(selector, value string) error
	Text(selector string) (string, error)
	URL() string

	SetImplicitWait(d time.Duration) error
	SetWindowSize(width, height int) error
	SetWindowPosition(x, y int) error

	// LogTypes lists the log channels the session collects.
	LogTypes() []string
	// Log returns and clears the buffered entries of one channel.
	Log(kind string) ([]LogEntry, error)
	// Screenshot captures the current page as PNG.
	Screenshot() ([]byte, error)

	Quit() error
}

// Launcher starts browser sessions.
type Launcher interface {
	Launch(opts LaunchOptions) (Driver, error)
}

// LogEntry is a single buffered log line.
type LogEntry struct {
	Timestamp time.Time
	Level     string
	Message   string
}

func (e LogEntry) String() string {
	return fmt.Sprintf("%s [%s] %s", e.Timestamp.UTC().Format(time.RFC3339Nano), strings.ToUpper(e.Level), e.Message)
}

// FormatLog renders entries one per line.
func FormatLog(entries []LogEntry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.String())
	}
	return b.String()
}
