package browser

import (
	"fmt"
	"strings"
)

// WebDriver wraps a session with helpers shared by UI tests.
type WebDriver struct {
	Driver  Driver
	BaseURL string
}

// NewWebDriver wraps d. Relative paths given to Open resolve against baseURL.
func NewWebDriver(d Driver, baseURL string) *WebDriver {
	return &WebDriver{
		Driver:  d,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Open navigates to path, which may be absolute or relative to BaseURL.
func (w *WebDriver) Open(path string) error {
	url := path
	if !strings.Contains(path, "://") {
		url = w.BaseURL + "/" + strings.TrimLeft(path, "/")
	}
	if err := w.Driver.Navigate(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// TextOf returns the trimmed text content of the first match for selector.
func (w *WebDriver) TextOf(selector string) (string, error) {
	text, err := w.Driver.Text(selector)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Field is one input to fill before submitting a form.
type Field struct {
	Selector string
	Value    string
}

// Submit fills fields in order and clicks the submit control.
func (w *WebDriver) Submit(submit string, fields ...Field) error {
	for _, f := range fields {
		if err := w.Driver.Fill(f.Selector, f.Value); err != nil {
			return fmt.Errorf("failed to fill %s: %w", f.Selector, err)
		}
	}
	if err := w.Driver.Click(submit); err != nil {
		return fmt.Errorf("failed to click %s: %w", submit, err)
	}
	return nil
}
