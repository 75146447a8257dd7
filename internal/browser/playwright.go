package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/adyen/uitests/internal/logging"
)

// PlaywrightLauncher starts one Chromium process per Launch on a shared
// playwright driver.
type PlaywrightLauncher struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	log     *logrus.Entry
	stopped bool
}

// NewPlaywrightLauncher starts the playwright driver. When install is set the
// driver and Chromium are downloaded first if missing.
func NewPlaywrightLauncher(install bool) (*PlaywrightLauncher, error) {
	opts := logging.RunOptions()
	opts.Browsers = []string{"chromium"}

	if install {
		if err := playwright.Install(opts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	return &PlaywrightLauncher{
		pw:  pw,
		log: logging.Driver(),
	}, nil
}

// Launch starts a browser and opens a single page in a fresh context.
func (l *PlaywrightLauncher) Launch(opts LaunchOptions) (Driver, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return nil, fmt.Errorf("playwright launcher stopped")
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     opts.Args,
	}
	if opts.Channel != "" {
		launchOpts.Channel = playwright.String(opts.Channel)
	}
	if opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ExecutablePath)
	}

	browser, err := l.pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	context, err := browser.NewContext()
	if err != nil {
		_ = browser.Close() // Ignore errors, launch already failed
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close() // Ignore errors, launch already failed
		_ = browser.Close() // Ignore errors, launch already failed
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	s := &session{
		browser: browser,
		context: context,
		page:    page,
		logs:    newLogBuffer(LogBrowser, LogDriver),
		log:     l.log,
	}
	s.watch()

	l.log.WithFields(logrus.Fields{
		"headless": opts.Headless,
		"version":  browser.Version(),
	}).Debug("browser launched")

	return s, nil
}

// Stop shuts the playwright driver down. Sessions still open are left to the
// driver to reap.
func (l *PlaywrightLauncher) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return nil
	}
	l.stopped = true
	if err := l.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

// session is a Driver backed by a playwright browser, context and page.
type session struct {
	mu      sync.Mutex
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cdp     playwright.CDPSession
	logs    *logBuffer
	log     *logrus.Entry
	closed  bool
}

func (s *session) watch() {
	s.page.OnConsole(func(msg playwright.ConsoleMessage) {
		s.logs.add(LogBrowser, consoleLevel(msg.Type()), msg.Text())
	})
	s.page.OnPageError(func(err error) {
		s.logs.add(LogDriver, "severe", err.Error())
	})
	s.page.OnCrash(func(playwright.Page) {
		s.logs.add(LogDriver, "severe", "page crashed")
	})
}

// consoleLevel maps console message types onto the levels Chrome uses in its
// own log export.
func consoleLevel(kind string) string {
	switch kind {
	case "error", "assert":
		return "severe"
	case "warning":
		return "warning"
	case "debug", "trace":
		return "debug"
	default:
		return "info"
	}
}

func (s *session) checkOpen() error {
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}

func (s *session) Navigate(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (s *session) Click(selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.page.Locator(selector).First().Click(); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (s *session) Fill(selector, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.page.Locator(selector).First().Fill(value); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

func (s *session) Text(selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return "", err
	}

	text, err := s.page.Locator(selector).First().TextContent()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

func (s *session) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ""
	}
	return s.page.URL()
}

// SetImplicitWait sets the timeout every element lookup waits for.
func (s *session) SetImplicitWait(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	s.page.SetDefaultTimeout(float64(d.Milliseconds()))
	return nil
}

func (s *session) SetWindowSize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.page.SetViewportSize(width, height); err != nil {
		return fmt.Errorf("failed to set viewport: %w", err)
	}
	return s.setWindowBounds(map[string]interface{}{"width": width, "height": height})
}

func (s *session) SetWindowPosition(x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.setWindowBounds(map[string]interface{}{"left": x, "top": y})
}

// setWindowBounds moves or resizes the OS window over CDP; playwright only
// exposes the viewport.
func (s *session) setWindowBounds(bounds map[string]interface{}) error {
	if s.cdp == nil {
		cdp, err := s.context.NewCDPSession(s.page)
		if err != nil {
			return fmt.Errorf("failed to open CDP session: %w", err)
		}
		s.cdp = cdp
	}

	res, err := s.cdp.Send("Browser.getWindowForTarget", nil)
	if err != nil {
		return fmt.Errorf("failed to look up window: %w", err)
	}
	window, ok := res.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected window lookup response %T", res)
	}

	params := map[string]interface{}{
		"windowId": window["windowId"],
		"bounds":   bounds,
	}
	if _, err := s.cdp.Send("Browser.setWindowBounds", params); err != nil {
		return fmt.Errorf("failed to set window bounds: %w", err)
	}
	return nil
}

func (s *session) LogTypes() []string {
	return s.logs.kinds()
}

func (s *session) Log(kind string) ([]LogEntry, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSessionClosed
	}
	return s.logs.drain(kind)
}

func (s *session) Screenshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	png, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Type: playwright.ScreenshotTypePng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return png, nil
}

// Quit closes the page, context and browser process. Calls after the first
// return ErrSessionClosed.
func (s *session) Quit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.closed = true

	if s.cdp != nil {
		_ = s.cdp.Detach() // Ignore errors, continue cleanup
	}
	_ = s.page.Close()    // Ignore errors, continue cleanup
	_ = s.context.Close() // Ignore errors, continue cleanup
	if err := s.browser.Close(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}

	s.log.Debug("browser closed")
	return nil
}
