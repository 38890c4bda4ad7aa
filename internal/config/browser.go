package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Browser backends
const (
	BackendPlaywright = "playwright"
	BackendSelenium   = "selenium"
)

// BrowserConfig selects and tunes the browser automation backend
type BrowserConfig struct {
	Backend     string
	Browser     string
	Headless    bool
	SlowMo      time.Duration
	SeleniumURL string
}

// LoadBrowserConfig loads browser settings from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		Backend:     strings.ToLower(getenv("BROWSER_BACKEND")),
		Browser:     strings.ToLower(getenv("BROWSER_NAME")),
		Headless:    true,
		SeleniumURL: getenv("SELENIUM_URL"),
	}

	if config.Backend == "" {
		config.Backend = BackendPlaywright
	}
	if config.Backend != BackendPlaywright && config.Backend != BackendSelenium {
		return nil, fmt.Errorf("BROWSER_BACKEND must be %q or %q, got %q", BackendPlaywright, BackendSelenium, config.Backend)
	}

	if config.Browser == "" {
		config.Browser = "chromium"
	}
	switch config.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return nil, fmt.Errorf("BROWSER_NAME must be chromium, firefox or webkit, got %q", config.Browser)
	}

	if v := getenv("BROWSER_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("BROWSER_HEADLESS is invalid: %w", err)
		}
		config.Headless = headless
	}

	if v := getenv("BROWSER_SLOWMO_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("BROWSER_SLOWMO_MS must be a non-negative integer, got %q", v)
		}
		config.SlowMo = time.Duration(ms) * time.Millisecond
	}

	if config.Backend == BackendSelenium && config.SeleniumURL == "" {
		return nil, fmt.Errorf("SELENIUM_URL is required for the selenium backend")
	}

	return config, nil
}
