// Package fixture gives each UI test its own browser session and reports
// diagnostics when the test fails.
//
// A suite is built once in TestMain; every test then calls New:
//
//	func TestCatalog(t *testing.T) {
//		f := suite.New(t)
//		if err := f.Driver.Open("/"); err != nil {
//			t.Fatal(err)
//		}
//	}
//
// The browser is closed by t.Cleanup once the test and its other cleanups
// have run, unless the test was marked with NoTeardown.
package fixture

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/adyen/uitests/internal/api"
	"github.com/adyen/uitests/internal/browser"
	"github.com/adyen/uitests/internal/config"
	"github.com/adyen/uitests/internal/logging"
	"github.com/adyen/uitests/internal/report"
)

// T is the part of testing.TB the fixture uses.
type T interface {
	Name() string
	Helper()
	Cleanup(func())
	Failed() bool
	Skipped() bool
	Logf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Config holds everything a suite needs besides the launcher.
type Config struct {
	Browser  config.BrowserConfig
	API      *config.APIConfig
	Reporter *report.Reporter
}

// Suite creates fixtures and tracks the ones currently running.
type Suite struct {
	launcher browser.Launcher
	cfg      Config
	log      *logrus.Entry

	mu     sync.Mutex
	active map[string]*Fixture
}

// NewSuite returns a suite launching browsers through l.
func NewSuite(l browser.Launcher, cfg Config) *Suite {
	if cfg.API == nil {
		cfg.API = &config.APIConfig{BaseURL: "http://localhost:8080"}
	}
	if cfg.Reporter == nil {
		cfg.Reporter = report.NewReporter(nil)
	}

	return &Suite{
		launcher: l,
		cfg:      cfg,
		log:      logging.WithCategory("fixture"),
		active:   make(map[string]*Fixture),
	}
}

// Fixture is the per-test browser session and API helper.
type Fixture struct {
	Driver *browser.WebDriver
	API    *api.Client

	name    string
	markers markers
}

// Name returns the test the fixture belongs to.
func (f *Fixture) Name() string {
	return f.name
}

// KeepsSession reports whether the session survives the test.
func (f *Fixture) KeepsSession() bool {
	return f.markers.noTeardown
}

// ExpectsFailure reports whether the test is an expected failure.
func (f *Fixture) ExpectsFailure() bool {
	return f.markers.xfail
}

// New starts a browser for t and fails the test if that is not possible.
func (s *Suite) New(t T, ms ...Marker) *Fixture {
	t.Helper()

	f, err := s.Start(t, ms...)
	if err != nil {
		t.Fatalf("browser setup failed: %v", err)
		return nil
	}
	return f
}

// Start starts a browser for t and registers its teardown with t.Cleanup.
// Launch errors are recorded as a broken setup and returned; there is no
// retry.
func (s *Suite) Start(t T, ms ...Marker) (*Fixture, error) {
	logging.QuietDriver()

	m := applyMarkers(ms)
	name := t.Name()
	log := s.log.WithField("test", name)

	if sink := s.cfg.Reporter.Sink(); sink != nil {
		sink.Start(name)
	}

	opts := browser.NewLaunchOptions(s.cfg.Browser.Headless)
	opts.Channel = s.cfg.Browser.Channel
	opts.ExecutablePath = s.cfg.Browser.ExecutablePath

	d, err := s.launcher.Launch(opts)
	if err != nil {
		s.setupFailed(name, err)
		return nil, err
	}

	if err := s.configure(d); err != nil {
		if !m.noTeardown {
			_ = d.Quit() // Ignore errors, setup already failed
		}
		s.setupFailed(name, err)
		return nil, err
	}

	f := &Fixture{
		Driver:  browser.NewWebDriver(d, s.cfg.API.BaseURL),
		API:     api.NewClient(s.cfg.API),
		name:    name,
		markers: m,
	}

	s.mu.Lock()
	s.active[name] = f
	s.mu.Unlock()

	t.Cleanup(func() { s.teardown(t, f) })

	log.WithField("headless", opts.Headless).Debug("browser ready")
	return f, nil
}

// configure applies the fixed session geometry.
func (s *Suite) configure(d browser.Driver) error {
	c := s.cfg.Browser
	if err := d.SetImplicitWait(c.ImplicitWait); err != nil {
		return fmt.Errorf("failed to set implicit wait: %w", err)
	}
	if err := d.SetWindowSize(c.WindowWidth, c.WindowHeight); err != nil {
		return fmt.Errorf("failed to set window size: %w", err)
	}
	if err := d.SetWindowPosition(c.WindowX, c.WindowY); err != nil {
		return fmt.Errorf("failed to set window position: %w", err)
	}
	return nil
}

// setupFailed reports a setup error. No driver is attached yet, so nothing
// beyond the result itself is recorded.
func (s *Suite) setupFailed(name string, err error) {
	outcome := report.Outcome{Failed: true, Message: err.Error()}
	if rerr := s.cfg.Reporter.Report(report.Item{Name: name}, report.PhaseSetup, outcome); rerr != nil {
		s.log.WithError(rerr).Error("failed to collect setup diagnostics")
	}
	s.finish(name, report.StatusOf(report.PhaseSetup, outcome), outcome.Message)
}

// teardown runs after the test body: it reports the call phase, closes the
// session unless NoTeardown was given and records the final result.
func (s *Suite) teardown(t T, f *Fixture) {
	log := s.log.WithField("test", f.name)
	item := report.Item{Name: f.name, Driver: f.Driver.Driver}

	call := report.Outcome{
		Failed:   t.Failed(),
		Skipped:  t.Skipped(),
		WasXFail: f.markers.xfail,
	}
	if err := s.cfg.Reporter.Report(item, report.PhaseCall, call); err != nil {
		log.WithError(err).Error("failed to collect diagnostics")
		t.Logf("failed to collect diagnostics: %v", err)
	}

	status, message := callStatus(call, f.markers)

	if f.markers.noTeardown {
		log.Warn("no_teardown: leaving browser running")
	} else if err := f.Driver.Driver.Quit(); err != nil {
		t.Errorf("failed to close browser: %v", err)

		down := report.Outcome{Failed: true, WasXFail: f.markers.xfail, Message: err.Error()}
		if rerr := s.cfg.Reporter.Report(item, report.PhaseTeardown, down); rerr != nil {
			log.WithError(rerr).Error("failed to collect teardown diagnostics")
		}
		if status != report.StatusFailed {
			status, message = report.StatusOf(report.PhaseTeardown, down), down.Message
		}
	}

	s.mu.Lock()
	delete(s.active, f.name)
	s.mu.Unlock()

	s.finish(f.name, status, message)
}

func callStatus(o report.Outcome, m markers) (report.Status, string) {
	if o.Passed() {
		return report.StatusPassed, ""
	}
	if o.Failed && o.WasXFail {
		return report.StatusSkipped, "expected failure: " + m.xfailReason
	}
	status := report.StatusOf(report.PhaseCall, o)
	if status == report.StatusFailed {
		return status, "test failed"
	}
	return status, ""
}

func (s *Suite) finish(name string, status report.Status, message string) {
	sink := s.cfg.Reporter.Sink()
	if sink == nil {
		return
	}
	if err := sink.Finish(name, status, message); err != nil {
		s.log.WithError(err).WithField("test", name).Error("failed to write result")
	}
}

// Lookup returns the fixture of a running test. Consumers that only know the
// test name use it instead of having the fixture passed in.
func (s *Suite) Lookup(name string) (*Fixture, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.active[name]
	return f, ok
}

// Active returns the number of fixtures whose teardown has not run.
func (s *Suite) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
