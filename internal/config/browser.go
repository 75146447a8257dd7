package config

import (
	"strings"
	"time"
)

// Fixed session geometry applied to every browser the fixture starts
const (
	DefaultImplicitWait = 5 * time.Second
	DefaultWindowWidth  = 1200
	DefaultWindowHeight = 1200
)

// BrowserConfig holds configuration for browser sessions
type BrowserConfig struct {
	Headless       bool
	Channel        string
	ExecutablePath string
	ImplicitWait   time.Duration
	WindowWidth    int
	WindowHeight   int
	WindowX        int
	WindowY        int
}

// DefaultBrowserConfig returns the fixed session geometry: 5s implicit wait,
// a 1200x1200 window at (0,0), headed.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		ImplicitWait: DefaultImplicitWait,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
	}
}

// LoadBrowserConfig loads browser configuration from flags and environment
// variables. The -headless flag wins; UI_HEADLESS=true is honoured when the
// flag was not given. Geometry is never read from the environment.
func LoadBrowserConfig(flags *Flags, getenv func(string) string) BrowserConfig {
	cfg := DefaultBrowserConfig()
	cfg.Channel = getenv("UI_BROWSER_CHANNEL")
	cfg.ExecutablePath = getenv("UI_BROWSER_PATH")

	if flags != nil && flags.Headless {
		cfg.Headless = true
	} else if strings.EqualFold(getenv("UI_HEADLESS"), "true") {
		cfg.Headless = true
	}

	return cfg
}
