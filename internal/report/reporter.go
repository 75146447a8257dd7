package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/adyen/uitests/internal/browser"
	"github.com/adyen/uitests/internal/logging"
)

// Item identifies the running test and the session attached to it.
// A nil Driver means no session is attached.
type Item struct {
	Name   string
	Driver browser.Driver
}

// Reporter attaches browser diagnostics to a sink when a phase fails.
type Reporter struct {
	sink Sink
	log  *logrus.Entry
}

// NewReporter returns a reporter writing to sink. A nil sink disables
// attachments entirely.
func NewReporter(sink Sink) *Reporter {
	return &Reporter{
		sink: sink,
		log:  logging.WithCategory("report"),
	}
}

// Enabled reports whether a sink is configured.
func (r *Reporter) Enabled() bool {
	return r != nil && r.sink != nil
}

// Sink returns the configured sink, or nil.
func (r *Reporter) Sink() Sink {
	if r == nil {
		return nil
	}
	return r.sink
}

// Report collects diagnostics for one phase of item. Nothing happens unless
// the outcome is a failure, a sink is configured and a driver is attached.
//
// Every non-empty log channel is attached as text named "<Channel> logs".
// A PNG screenshot named "screenshot_<test>" follows, except in teardown.
// Retrieval errors are returned as-is; attachments written before the error
// are kept.
func (r *Reporter) Report(item Item, phase Phase, o Outcome) error {
	if !IsFailure(o) || !r.Enabled() || item.Driver == nil {
		return nil
	}

	d := item.Driver
	log := r.log.WithFields(logrus.Fields{"test": item.Name, "phase": phase})

	for _, kind := range d.LogTypes() {
		entries, err := d.Log(kind)
		if err != nil {
			return fmt.Errorf("failed to read %s logs: %w", kind, err)
		}
		if len(entries) == 0 {
			continue
		}

		name := titleCase(kind) + " logs"
		if err := r.sink.Attach(item.Name, name, AttachmentText, []byte(browser.FormatLog(entries))); err != nil {
			return err
		}
		log.WithField("entries", len(entries)).Debugf("attached %s", name)
	}

	if phase == PhaseTeardown {
		return nil
	}

	png, err := d.Screenshot()
	if err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err := r.sink.Attach(item.Name, "screenshot_"+item.Name, AttachmentPNG, png); err != nil {
		return err
	}
	log.Debug("attached screenshot")

	return nil
}

// titleCase upper-cases the first letter of every word and lower-cases the
// rest, so "browser" becomes "Browser" and "client_perf" becomes
// "Client_Perf".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if prevLetter {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
