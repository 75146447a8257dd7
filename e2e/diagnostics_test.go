//go:build e2e

package e2e

import (
	"strings"
	"testing"

	"github.com/adyen/uitests/internal/browser"
	"github.com/adyen/uitests/internal/fixture"
)

// TestBrowserLogsAreCollected checks that console output and uncaught errors
// land in the browser and driver channels
func TestBrowserLogsAreCollected(t *testing.T) {
	f := suite.New(t)

	if err := f.Driver.Open("/broken"); err != nil {
		t.Fatalf("Failed to navigate to broken page: %v", err)
	}
	if _, err := f.Driver.TextOf(".catalog-title"); err != nil {
		t.Fatalf("Page did not render: %v", err)
	}

	d := f.Driver.Driver
	console, err := d.Log(browser.LogBrowser)
	if err != nil {
		t.Fatalf("Failed to read browser logs: %v", err)
	}
	if !strings.Contains(browser.FormatLog(console), "about to fail") {
		t.Errorf("Expected console error in browser logs, got %v", console)
	}

	pageErrors, err := d.Log(browser.LogDriver)
	if err != nil {
		t.Fatalf("Failed to read driver logs: %v", err)
	}
	if !strings.Contains(browser.FormatLog(pageErrors), "undefinedFunction") {
		t.Errorf("Expected uncaught error in driver logs, got %v", pageErrors)
	}
}

// TestScreenshotIsPNG checks the screenshot attached on failure
func TestScreenshotIsPNG(t *testing.T) {
	f := suite.New(t)

	if err := f.Driver.Open("/"); err != nil {
		t.Fatalf("Failed to navigate to homepage: %v", err)
	}

	png, err := f.Driver.Driver.Screenshot()
	if err != nil {
		t.Fatalf("Failed to capture screenshot: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("Expected PNG data, got %d bytes", len(png))
	}
}

// TestRegistryLookup checks that the running fixture is reachable by test name
func TestRegistryLookup(t *testing.T) {
	f := suite.New(t)

	got, ok := suite.Lookup(t.Name())
	if !ok || got != f {
		t.Fatalf("Expected fixture registered under %q", t.Name())
	}
}

// TestNoTeardownKeepsBrowser checks that a no_teardown session survives its
// test; it is closed here so the run does not leak a process
func TestNoTeardownKeepsBrowser(t *testing.T) {
	var d browser.Driver

	t.Run("inspect", func(t *testing.T) {
		f := suite.New(t, fixture.NoTeardown())
		d = f.Driver.Driver
		if err := f.Driver.Open("/"); err != nil {
			t.Fatalf("Failed to navigate to homepage: %v", err)
		}
	})

	if d == nil {
		t.Fatal("subtest did not start a browser")
	}
	if d.URL() == "" {
		t.Error("Expected session to remain open after its test")
	}
	if err := d.Quit(); err != nil {
		t.Errorf("Failed to close kept session: %v", err)
	}
}
