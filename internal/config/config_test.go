package config

import (
	"strings"
	"testing"
	"time"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadSiteConfig(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		want    string
		wantErr string
	}{
		{
			name: "defaults to production site",
			vars: map[string]string{},
			want: DefaultSiteURL,
		},
		{
			name: "trailing slash trimmed",
			vars: map[string]string{"WNG_URL": "http://localhost:8080/"},
			want: "http://localhost:8080",
		},
		{
			name:    "unsupported scheme",
			vars:    map[string]string{"WNG_URL": "ftp://example.com"},
			wantErr: "must use http or https",
		},
		{
			name:    "missing host",
			vars:    map[string]string{"WNG_URL": "https://"},
			wantErr: "must include a host",
		},
		{
			name:    "malformed",
			vars:    map[string]string{"WNG_URL": "http://[::1"},
			wantErr: "WNG_URL is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN the environment
			// WHEN loading the site config
			cfg, err := LoadSiteConfig(env(tt.vars))

			// THEN the base url or the error matches
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.BaseURL != tt.want {
				t.Errorf("expected %q, got %q", tt.want, cfg.BaseURL)
			}
		})
	}
}

func TestLoadBrowserConfig(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		want    BrowserConfig
		wantErr string
	}{
		{
			name: "defaults",
			vars: map[string]string{},
			want: BrowserConfig{Backend: BackendPlaywright, Browser: "chromium", Headless: true},
		},
		{
			name: "headed firefox with slow motion",
			vars: map[string]string{"BROWSER_NAME": "Firefox", "BROWSER_HEADLESS": "false", "BROWSER_SLOWMO_MS": "250"},
			want: BrowserConfig{Backend: BackendPlaywright, Browser: "firefox", Headless: false, SlowMo: 250 * time.Millisecond},
		},
		{
			name: "selenium backend",
			vars: map[string]string{"BROWSER_BACKEND": "selenium", "SELENIUM_URL": "http://grid:4444/wd/hub"},
			want: BrowserConfig{Backend: BackendSelenium, Browser: "chromium", Headless: true, SeleniumURL: "http://grid:4444/wd/hub"},
		},
		{
			name:    "selenium without url",
			vars:    map[string]string{"BROWSER_BACKEND": "selenium"},
			wantErr: "SELENIUM_URL is required",
		},
		{
			name:    "unknown backend",
			vars:    map[string]string{"BROWSER_BACKEND": "puppeteer"},
			wantErr: "BROWSER_BACKEND must be",
		},
		{
			name:    "unknown browser",
			vars:    map[string]string{"BROWSER_NAME": "lynx"},
			wantErr: "BROWSER_NAME must be",
		},
		{
			name:    "invalid headless flag",
			vars:    map[string]string{"BROWSER_HEADLESS": "maybe"},
			wantErr: "BROWSER_HEADLESS is invalid",
		},
		{
			name:    "negative slow motion",
			vars:    map[string]string{"BROWSER_SLOWMO_MS": "-5"},
			wantErr: "BROWSER_SLOWMO_MS must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadBrowserConfig(env(tt.vars))

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, *cfg)
			}
		})
	}
}

func TestLoadAccountConfig(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr string
	}{
		{
			name: "complete",
			vars: map[string]string{"TEST_USER_EMAIL": "qa@example.com", "TEST_USER_PASSWORD": "secret"},
		},
		{
			name:    "missing email",
			vars:    map[string]string{"TEST_USER_PASSWORD": "secret"},
			wantErr: "TEST_USER_EMAIL is required",
		},
		{
			name:    "missing password",
			vars:    map[string]string{"TEST_USER_EMAIL": "qa@example.com"},
			wantErr: "TEST_USER_PASSWORD is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAccountConfig(env(tt.vars))

			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Email != "qa@example.com" || cfg.Password != "secret" {
				t.Errorf("unexpected config %+v", cfg)
			}
		})
	}
}

func TestLoadServerConfig(t *testing.T) {
	if got := LoadServerConfig(env(nil)).Port; got != "8080" {
		t.Errorf("expected default port 8080, got %s", got)
	}
	if got := LoadServerConfig(env(map[string]string{"PORT": "9090"})).Port; got != "9090" {
		t.Errorf("expected port 9090, got %s", got)
	}
}

func TestLoadReportDBConfig(t *testing.T) {
	full := map[string]string{
		"REPORT_DB_USER":     "qa",
		"REPORT_DB_PASSWORD": "pw",
		"REPORT_DB_NAME":     "reports",
		"REPORT_DB_HOST":     "db",
	}

	// GIVEN every variable is set
	cfg, err := LoadReportDBConfig(env(full))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN the connection string carries them
	want := "host=db user=qa password=pw dbname=reports sslmode=disable"
	if got := cfg.ConnectionString(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	for _, key := range []string{"REPORT_DB_USER", "REPORT_DB_PASSWORD", "REPORT_DB_NAME", "REPORT_DB_HOST"} {
		t.Run("missing "+key, func(t *testing.T) {
			vars := map[string]string{}
			for k, v := range full {
				if k != key {
					vars[k] = v
				}
			}
			_, err := LoadReportDBConfig(env(vars))
			if err == nil || err.Error() != key+" is required" {
				t.Errorf("expected %s is required, got %v", key, err)
			}
		})
	}
}

func TestReportDBConfigured(t *testing.T) {
	if ReportDBConfigured(env(nil)) {
		t.Error("expected no report database without variables")
	}
	if !ReportDBConfigured(env(map[string]string{"REPORT_DB_HOST": "db"})) {
		t.Error("expected report database to be requested")
	}
}
