// Package drivertest provides an in-memory driver.Session for unit tests.
//
// The session holds a parsed HTML document and evaluates CSS selectors with
// goquery. Behaviour that a real page implements in script is emulated with
// click and type hooks, and time only moves when a wait sleeps, so bounded
// waits resolve instantly.
package drivertest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/zeebo/errs"

	"github.com/forkqa/webnextgen/internal/driver"
)

// NotInteractable is returned when clicking or typing into a hidden element
var NotInteractable = errs.Class("element not interactable")

// Hook runs after the user interacts with an element matching its selector
type Hook func(s *Session, el *goquery.Selection) error

// NavigateFunc loads the document for url, usually by calling Session.Load
type NavigateFunc func(s *Session, url string) error

type hook struct {
	selector string
	fn       Hook
}

type timer struct {
	at  time.Time
	seq int
	fn  func(s *Session)
}

// Session is a fake browser tab
type Session struct {
	doc *goquery.Document

	clickHooks []hook
	typeHooks  []hook
	navigate   NavigateFunc

	now    time.Time
	timers []timer
	seq    int

	// URL is the address of the current document
	URL string
	// History lists every URL passed to Navigate, in order
	History []string
	// Refreshes counts calls to Refresh
	Refreshes int
	// Cookies is the cookie jar; DeleteAllCookies empties it
	Cookies map[string]string
	// Clicks lists the selectors of hooks fired by clicks, in order
	Clicks []string
	// Closed is set by Close
	Closed bool
}

var _ driver.Session = (*Session)(nil)

// New returns a session showing html
func New(html string) *Session {
	s := &Session{
		now:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Cookies: make(map[string]string),
	}
	s.Load(html)
	return s
}

// Load replaces the current document. Handles into the previous document
// become stale.
func (s *Session) Load(html string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// the HTML5 parser accepts any input; a reader error cannot happen
		panic(err)
	}
	s.doc = doc
}

// Doc exposes the live document for hooks and assertions
func (s *Session) Doc() *goquery.Document { return s.doc }

// Find returns the live nodes matching css, ignoring template content
func (s *Session) Find(css string) *goquery.Selection {
	return live(s.doc.Find(css))
}

// Value returns the value attribute of the first node matching css
func (s *Session) Value(css string) string {
	v, _ := s.Find(css).First().Attr("value")
	return v
}

// OnClick registers a hook fired when an element matching selector is clicked
func (s *Session) OnClick(selector string, fn Hook) {
	s.clickHooks = append(s.clickHooks, hook{selector: selector, fn: fn})
}

// OnType registers a hook fired after keys are sent to a matching element
func (s *Session) OnType(selector string, fn Hook) {
	s.typeHooks = append(s.typeHooks, hook{selector: selector, fn: fn})
}

// OnNavigate sets the function serving Navigate and Refresh
func (s *Session) OnNavigate(fn NavigateFunc) { s.navigate = fn }

// After schedules fn to run once the virtual clock has advanced by d
func (s *Session) After(d time.Duration, fn func(s *Session)) {
	s.seq++
	s.timers = append(s.timers, timer{at: s.now.Add(d), seq: s.seq, fn: fn})
}

// Now implements driver.Clock
func (s *Session) Now() time.Time { return s.now }

// Sleep implements driver.Clock; it advances virtual time and fires timers
func (s *Session) Sleep(d time.Duration) {
	s.now = s.now.Add(d)
	for {
		sort.Slice(s.timers, func(i, j int) bool {
			if s.timers[i].at.Equal(s.timers[j].at) {
				return s.timers[i].seq < s.timers[j].seq
			}
			return s.timers[i].at.Before(s.timers[j].at)
		})
		if len(s.timers) == 0 || s.timers[0].at.After(s.now) {
			return
		}
		t := s.timers[0]
		s.timers = s.timers[1:]
		t.fn(s)
	}
}

// FindElement implements driver.SearchContext
func (s *Session) FindElement(by driver.By) (driver.Element, error) {
	return first(s, s.doc.Selection, by)
}

// FindElements implements driver.SearchContext
func (s *Session) FindElements(by driver.By) ([]driver.Element, error) {
	return all(s, s.doc.Selection, by), nil
}

// Navigate implements driver.Session
func (s *Session) Navigate(url string) error {
	s.History = append(s.History, url)
	return s.load(url)
}

// Refresh implements driver.Session
func (s *Session) Refresh() error {
	s.Refreshes++
	return s.load(s.URL)
}

func (s *Session) load(url string) error {
	if s.navigate == nil {
		return fmt.Errorf("no page served for %q", url)
	}
	if err := s.navigate(s, url); err != nil {
		return err
	}
	s.URL = url
	return nil
}

// DeleteAllCookies implements driver.Session
func (s *Session) DeleteAllCookies() error {
	s.Cookies = make(map[string]string)
	return nil
}

// WaitUntil implements driver.Session on the virtual clock
func (s *Session) WaitUntil(cond driver.Condition, timeout time.Duration) error {
	return driver.Poll(s, s, cond, timeout, driver.PollInterval)
}

// Close implements driver.Session
func (s *Session) Close() error {
	s.Closed = true
	return nil
}

func (s *Session) fire(hooks []hook, sel *goquery.Selection, record bool) error {
	for _, h := range hooks {
		if !sel.Is(h.selector) {
			continue
		}
		if record {
			s.Clicks = append(s.Clicks, h.selector)
		}
		if err := h.fn(s, sel); err != nil {
			return err
		}
	}
	return nil
}

func first(s *Session, scope *goquery.Selection, by driver.By) (driver.Element, error) {
	found := all(s, scope, by)
	if len(found) == 0 {
		return nil, driver.NotFound.New("no element matches %s", by)
	}
	return found[0], nil
}

func all(s *Session, scope *goquery.Selection, by driver.By) []driver.Element {
	var out []driver.Element
	live(scope.Find(by.Selector())).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &Element{s: s, sel: sel})
	})
	return out
}

// live drops nodes that belong to template content, which browsers keep
// outside the document tree
func live(sel *goquery.Selection) *goquery.Selection {
	return sel.FilterFunction(func(_ int, n *goquery.Selection) bool {
		return n.ParentsFiltered("template").Length() == 0
	})
}
