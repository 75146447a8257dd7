//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adyen/uitests/internal/config"
	"github.com/adyen/uitests/internal/fixture"
	"github.com/adyen/uitests/internal/report"
)

// failingT stands in for a test whose body failed; cleanups run on finish
type failingT struct {
	name     string
	cleanups []func()
	errors   []string
}

func (f *failingT) Name() string { return f.name }
func (f *failingT) Helper() {}
func (f *failingT) Cleanup(fn func()) { f.cleanups = append(f.cleanups, fn) }
func (f *failingT) Failed() bool { return true }
func (f *failingT) Skipped() bool { return false }
func (f *failingT) Logf(string, ...any) {}
func (f *failingT) Fatalf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}
func (f *failingT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

// finish runs the registered cleanups once, last first
func (f *failingT) finish() {
	cleanups := f.cleanups
	f.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

type allureResult struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Attachments []struct {
		Name   string `json:"name"`
		Source string `json:"source"`
		Type   string `json:"type"`
	} `json:"attachments"`
}

// TestFailureLeavesDiagnostics tests what a failing UI test leaves behind
// Feature: Failure diagnostics
//
//	Scenario: A test fails on a page with console errors
//	  Given allure results are written to a fresh directory
//	  When a test on the broken page fails
//	  Then its result is recorded as failed
//	  And browser logs, driver logs and a screenshot are attached
//	  And the browser is closed
func TestFailureLeavesDiagnostics(t *testing.T) {
	// Given allure results are written to a fresh directory
	dir := t.TempDir()
	sink, err := report.NewSink(config.ReportConfig{ResultsDir: dir})
	if err != nil {
		t.Fatalf("Failed to open allure results: %v", err)
	}
	failing := fixture.NewSuite(launcher, fixture.Config{
		Browser:  browserConfig,
		API:      appConfig,
		Reporter: report.NewReporter(sink),
	})

	// When a test on the broken page fails
	ft := &failingT{name: "TestBrokenPage"}
	f, err := failing.Start(ft)
	if err != nil {
		t.Fatalf("Failed to start browser: %v", err)
	}
	t.Cleanup(ft.finish)
	if err := f.Driver.Open("/broken"); err != nil {
		t.Fatalf("Failed to navigate to broken page: %v", err)
	}
	if _, err := f.Driver.TextOf(".catalog-title"); err != nil {
		t.Fatalf("Page did not render: %v", err)
	}
	ft.finish()

	if len(ft.errors) > 0 {
		t.Fatalf("Teardown reported errors: %v", ft.errors)
	}

	// Then its result is recorded as failed
	results, err := filepath.Glob(filepath.Join(dir, "*-result.json"))
	if err != nil || len(results) != 1 {
		t.Fatalf("Expected one result file, got %v (%v)", results, err)
	}
	data, err := os.ReadFile(results[0])
	if err != nil {
		t.Fatalf("Failed to read result: %v", err)
	}
	var result allureResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}
	if result.Status != string(report.StatusFailed) {
		t.Errorf("Expected status failed, got %q", result.Status)
	}

	// And browser logs, driver logs and a screenshot are attached
	attached := make(map[string]string)
	for _, a := range result.Attachments {
		attached[a.Name] = a.Source
	}
	for _, name := range []string{"Browser logs", "Driver logs", "screenshot_TestBrokenPage"} {
		source, ok := attached[name]
		if !ok {
			t.Errorf("Expected attachment %q, got %v", name, attached)
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, source))
		if err != nil || len(content) == 0 {
			t.Errorf("Attachment %q is missing or empty: %v", name, err)
		}
	}

	logs, err := os.ReadFile(filepath.Join(dir, attached["Browser logs"]))
	if err == nil && !strings.Contains(string(logs), "about to fail") {
		t.Errorf("Expected console error in browser logs, got %q", logs)
	}
	png, err := os.ReadFile(filepath.Join(dir, attached["screenshot_TestBrokenPage"]))
	if err == nil && (len(png) < 4 || string(png[1:4]) != "PNG") {
		t.Errorf("Expected PNG screenshot, got %d bytes", len(png))
	}

	// And the browser is closed
	if failing.Active() != 0 {
		t.Errorf("Expected no active fixtures, got %d", failing.Active())
	}
	if f.Driver.Driver.URL() != "" {
		t.Error("Expected browser session to be closed")
	}
}
