// Package webdriver implements driver.Session against a remote WebDriver
// endpoint such as a Selenium grid or a standalone chromedriver.
package webdriver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"github.com/forkqa/webnextgen/internal/driver"
)

// Options controls the remote session
type Options struct {
	// URL of the WebDriver endpoint, e.g. http://localhost:4444/wd/hub
	URL      string
	Browser  string
	Headless bool
	Width    int
	Height   int
}

// Session drives one remote browser window
type Session struct {
	wd selenium.WebDriver
}

var _ driver.Session = (*Session)(nil)

// Capabilities builds the capabilities requested from the endpoint
func Capabilities(opts Options) selenium.Capabilities {
	name := strings.ToLower(opts.Browser)
	if name == "" || name == "chromium" {
		name = "chrome"
	}
	caps := selenium.Capabilities{"browserName": name}
	if name == "chrome" {
		args := []string{"--disable-dev-shm-usage", "--no-sandbox"}
		if opts.Headless {
			args = append(args, "--headless=new")
		}
		if opts.Width > 0 && opts.Height > 0 {
			args = append(args, fmt.Sprintf("--window-size=%d,%d", opts.Width, opts.Height))
		}
		caps.AddChrome(chrome.Capabilities{Args: args})
	}
	return caps
}

// Dial opens a remote session
func Dial(opts Options) (*Session, error) {
	if opts.URL == "" {
		return nil, errors.New("webdriver url is required")
	}
	wd, err := selenium.NewRemote(Capabilities(opts), opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}
	return &Session{wd: wd}, nil
}

// NewSession wraps an existing WebDriver
func NewSession(wd selenium.WebDriver) *Session {
	return &Session{wd: wd}
}

// FindElement implements driver.SearchContext
func (s *Session) FindElement(by driver.By) (driver.Element, error) {
	using, value := locator(by)
	el, err := s.wd.FindElement(using, value)
	if err != nil {
		return nil, classify(err, by)
	}
	return &Element{el: el}, nil
}

// FindElements implements driver.SearchContext
func (s *Session) FindElements(by driver.By) ([]driver.Element, error) {
	using, value := locator(by)
	els, err := s.wd.FindElements(using, value)
	if err != nil {
		if isNoSuchElement(err) {
			return nil, nil
		}
		return nil, classify(err, by)
	}
	return wrap(els), nil
}

// Navigate implements driver.Session
func (s *Session) Navigate(url string) error {
	if err := s.wd.Get(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Refresh implements driver.Session
func (s *Session) Refresh() error {
	return s.wd.Refresh()
}

// DeleteAllCookies implements driver.Session
func (s *Session) DeleteAllCookies() error {
	return s.wd.DeleteAllCookies()
}

// WaitUntil implements driver.Session with the WebDriver wait loop
func (s *Session) WaitUntil(cond driver.Condition, timeout time.Duration) error {
	var condErr error
	err := s.wd.WaitWithTimeoutAndInterval(func(selenium.WebDriver) (bool, error) {
		ok, err := cond(s)
		condErr = err
		return ok, err
	}, timeout, driver.PollInterval)
	if err == nil {
		return nil
	}
	if condErr != nil {
		return condErr
	}
	return driver.Timeout.New("condition not met within %s", timeout)
}

// Close implements driver.Session
func (s *Session) Close() error {
	return s.wd.Quit()
}

func locator(by driver.By) (string, string) {
	switch by.Strategy {
	case driver.ByID:
		return selenium.ByID, by.Value
	case driver.ByName:
		return selenium.ByName, by.Value
	case driver.ByTagName:
		return selenium.ByTagName, by.Value
	default:
		return selenium.ByCSSSelector, by.Value
	}
}

func wrap(els []selenium.WebElement) []driver.Element {
	out := make([]driver.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &Element{el: el})
	}
	return out
}

func isNoSuchElement(err error) bool {
	var se *selenium.Error
	return errors.As(err, &se) && se.Err == "no such element"
}

// classify maps WebDriver error codes onto the driver error classes
func classify(err error, by driver.By) error {
	var se *selenium.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Err {
	case "no such element":
		return driver.NotFound.New("no element matches %s", by)
	case "stale element reference":
		return driver.Stale.Wrap(err)
	case "timeout":
		return driver.Timeout.Wrap(err)
	}
	return err
}
