package config

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultSiteURL is the production site exercised when WNG_URL is unset
const DefaultSiteURL = "https://www.thefork.com"

// SiteConfig holds the address of the site under test
type SiteConfig struct {
	BaseURL string
}

// LoadSiteConfig loads the site under test from environment variables
func LoadSiteConfig(getenv func(string) string) (*SiteConfig, error) {
	raw := strings.TrimSpace(getenv("WNG_URL"))
	if raw == "" {
		raw = DefaultSiteURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("WNG_URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("WNG_URL must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("WNG_URL must include a host, got %q", raw)
	}

	return &SiteConfig{BaseURL: strings.TrimRight(raw, "/")}, nil
}
