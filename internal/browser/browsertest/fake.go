// Package browsertest provides in-memory Driver and Launcher fakes.
package browsertest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/adyen/uitests/internal/browser"
)

// PNG is the screenshot payload returned by FakeDriver.
var PNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// FakeDriver records the calls made on a session.
type FakeDriver struct {
	mu sync.Mutex

	Pages        map[string]map[string]string // url -> selector -> text
	Logs         map[string][]browser.LogEntry
	Types        []string
	ScreenshotFn func() ([]byte, error)
	LogFn        func(kind string) ([]browser.LogEntry, error)
	QuitErr      error

	CurrentURL   string
	ImplicitWait time.Duration
	Width        int
	Height       int
	X, Y         int
	Filled       map[string]string
	Clicked      []string
	Quits        int
	Screenshots  int
	closed       bool
}

// NewFakeDriver returns a driver with the browser and driver log channels.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{
		Pages:  make(map[string]map[string]string),
		Logs:   make(map[string][]browser.LogEntry),
		Types:  []string{browser.LogBrowser, browser.LogDriver},
		Filled: make(map[string]string),
		X:      -1,
		Y:      -1,
	}
}

// AddLog appends an entry to a channel.
func (d *FakeDriver) AddLog(kind, level, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Logs[kind] = append(d.Logs[kind], browser.LogEntry{
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     level,
		Message:   message,
	})
}

// Closed reports whether Quit succeeded at least once.
func (d *FakeDriver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *FakeDriver) Navigate(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return browser.ErrSessionClosed
	}
	d.CurrentURL = url
	return nil
}

func (d *FakeDriver) Click(selector string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return browser.ErrSessionClosed
	}
	d.Clicked = append(d.Clicked, selector)
	return nil
}

func (d *FakeDriver) Fill(selector, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return browser.ErrSessionClosed
	}
	d.Filled[selector] = value
	return nil
}

func (d *FakeDriver) Text(selector string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return "", browser.ErrSessionClosed
	}
	text, ok := d.Pages[d.CurrentURL][selector]
	if !ok {
		return "", fmt.Errorf("no element matching %s", selector)
	}
	return text, nil
}

func (d *FakeDriver) URL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.CurrentURL
}

func (d *FakeDriver) SetImplicitWait(wait time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ImplicitWait = wait
	return nil
}

func (d *FakeDriver) SetWindowSize(width, height int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Width, d.Height = width, height
	return nil
}

func (d *FakeDriver) SetWindowPosition(x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.X, d.Y = x, y
	return nil
}

func (d *FakeDriver) LogTypes() []string {
	return append([]string(nil), d.Types...)
}

func (d *FakeDriver) Log(kind string) ([]browser.LogEntry, error) {
	if d.LogFn != nil {
		return d.LogFn(kind)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, browser.ErrSessionClosed
	}
	entries := d.Logs[kind]
	delete(d.Logs, kind)
	return entries, nil
}

func (d *FakeDriver) Screenshot() ([]byte, error) {
	d.mu.Lock()
	d.Screenshots++
	closed := d.closed
	d.mu.Unlock()

	if d.ScreenshotFn != nil {
		return d.ScreenshotFn()
	}
	if closed {
		return nil, browser.ErrSessionClosed
	}
	return PNG, nil
}

func (d *FakeDriver) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Quits++
	if d.closed {
		return browser.ErrSessionClosed
	}
	if d.QuitErr != nil {
		return d.QuitErr
	}
	d.closed = true
	return nil
}

// FakeLauncher hands out FakeDrivers and records launch options.
type FakeLauncher struct {
	mu       sync.Mutex
	Err      error
	Launched []browser.LaunchOptions
	Drivers  []*FakeDriver
	// Prepare, when set, customises each driver before it is returned.
	Prepare func(*FakeDriver)
}

// ErrLaunch is a convenient launch failure.
var ErrLaunch = errors.New("chromium failed to start")

func (l *FakeLauncher) Launch(opts browser.LaunchOptions) (browser.Driver, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Launched = append(l.Launched, opts)
	if l.Err != nil {
		return nil, l.Err
	}
	d := NewFakeDriver()
	if l.Prepare != nil {
		l.Prepare(d)
	}
	l.Drivers = append(l.Drivers, d)
	return d, nil
}

// Last returns the most recently launched driver.
func (l *FakeLauncher) Last() *FakeDriver {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.Drivers) == 0 {
		return nil
	}
	return l.Drivers[len(l.Drivers)-1]
}
