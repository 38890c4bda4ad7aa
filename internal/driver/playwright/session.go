// Package playwright implements driver.Session on top of playwright-go.
package playwright

import (
	"fmt"
	"strings"
	"time"

	pw "github.com/playwright-community/playwright-go"

	"github.com/forkqa/webnextgen/internal/driver"
)

// Options controls how the browser is launched
type Options struct {
	// Browser is one of chromium, firefox or webkit
	Browser  string
	Headless bool
	SlowMo   time.Duration
	// ActionTimeout bounds a single click or keystroke; waits use their own
	// timeouts
	ActionTimeout time.Duration
	Width         int
	Height        int
}

// DefaultOptions returns headless chromium options
func DefaultOptions() Options {
	return Options{
		Browser:       "chromium",
		Headless:      true,
		ActionTimeout: 5 * time.Second,
		Width:         1440,
		Height:        900,
	}
}

// Session drives one playwright page
type Session struct {
	page    pw.Page
	browser pw.Browser
	runner  *pw.Playwright
}

var _ driver.Session = (*Session)(nil)

// NewSession wraps a page owned by the caller. Close only closes the page.
func NewSession(page pw.Page) *Session {
	return &Session{page: page}
}

// Launch starts playwright, a browser and a fresh page. Close tears all of
// them down.
func Launch(opts Options) (*Session, error) {
	runner, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var bt pw.BrowserType
	switch strings.ToLower(opts.Browser) {
	case "", "chromium", "chrome":
		bt = runner.Chromium
	case "firefox":
		bt = runner.Firefox
	case "webkit":
		bt = runner.WebKit
	default:
		runner.Stop()
		return nil, fmt.Errorf("unsupported browser %q", opts.Browser)
	}

	browser, err := bt.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(opts.Headless),
		SlowMo:   pw.Float(float64(opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		runner.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", opts.Browser, err)
	}

	ctxOpts := pw.BrowserNewContextOptions{}
	if opts.Width > 0 && opts.Height > 0 {
		ctxOpts.Viewport = &pw.Size{Width: opts.Width, Height: opts.Height}
	}
	bctx, err := browser.NewContext(ctxOpts)
	if err != nil {
		browser.Close()
		runner.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		browser.Close()
		runner.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	if opts.ActionTimeout > 0 {
		page.SetDefaultTimeout(float64(opts.ActionTimeout.Milliseconds()))
	}

	return &Session{page: page, browser: browser, runner: runner}, nil
}

// Page exposes the underlying playwright page
func (s *Session) Page() pw.Page { return s.page }

// FindElement implements driver.SearchContext
func (s *Session) FindElement(by driver.By) (driver.Element, error) {
	h, err := s.page.QuerySelector(by.Selector())
	if err != nil {
		return nil, classify(err)
	}
	if h == nil {
		return nil, driver.NotFound.New("no element matches %s", by)
	}
	return &Element{h: h, page: s.page}, nil
}

// FindElements implements driver.SearchContext
func (s *Session) FindElements(by driver.By) ([]driver.Element, error) {
	hs, err := s.page.QuerySelectorAll(by.Selector())
	if err != nil {
		return nil, classify(err)
	}
	return wrap(s.page, hs), nil
}

// Navigate implements driver.Session
func (s *Session) Navigate(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Refresh implements driver.Session
func (s *Session) Refresh() error {
	if _, err := s.page.Reload(); err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	return nil
}

// DeleteAllCookies implements driver.Session
func (s *Session) DeleteAllCookies() error {
	return s.page.Context().ClearCookies()
}

// WaitUntil implements driver.Session
func (s *Session) WaitUntil(cond driver.Condition, timeout time.Duration) error {
	return driver.Poll(driver.RealClock, s, cond, timeout, driver.PollInterval)
}

// Close implements driver.Session
func (s *Session) Close() error {
	if s.browser == nil {
		return s.page.Close()
	}
	if err := s.browser.Close(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	if err := s.runner.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

func wrap(page pw.Page, hs []pw.ElementHandle) []driver.Element {
	out := make([]driver.Element, 0, len(hs))
	for _, h := range hs {
		out = append(out, &Element{h: h, page: page})
	}
	return out
}

// classify maps playwright errors onto the driver error classes
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not attached to the DOM"),
		strings.Contains(msg, "Element is detached"):
		return driver.Stale.Wrap(err)
	case strings.Contains(msg, "Timeout"):
		return driver.Timeout.Wrap(err)
	}
	return err
}
