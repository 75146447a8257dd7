package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// APIConfig holds configuration for the helper API client
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LoadAPIConfig loads API configuration from environment variables
func LoadAPIConfig(getenv func(string) string) (*APIConfig, error) {
	config := &APIConfig{
		BaseURL: strings.TrimRight(getenv("UI_API_BASE_URL"), "/"),
		Timeout: 10 * time.Second,
	}

	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8080" // Default to local demo app
	}
	if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
		return nil, fmt.Errorf("UI_API_BASE_URL is invalid: %w", err)
	}

	if raw := getenv("UI_API_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("UI_API_TIMEOUT is invalid: %w", err)
		}
		config.Timeout = timeout
	}

	return config, nil
}
