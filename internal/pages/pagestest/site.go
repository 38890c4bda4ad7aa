// Package pagestest serves the sandbox site to an in-memory session.
//
// Pages come from the sandbox handlers, rendered with the sandbox templates.
// What the page script does in a browser is played by click and type hooks
// that call the same API, with every API answer applied after Latency of
// virtual time.
package pagestest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/driver/drivertest"
	"github.com/forkqa/webnextgen/internal/handlers"
	"github.com/forkqa/webnextgen/internal/pages"
	"github.com/forkqa/webnextgen/internal/report"
	"github.com/forkqa/webnextgen/internal/sandbox"
)

// BaseURL is the address the site is served at
const BaseURL = "http://sandbox.test"

// Latency is how long API calls and navigations take to land
const Latency = 300 * time.Millisecond

const (
	panelSel      = "#USER_SPACE_FIRST_PANEL"
	autocomplete  = "ul[data-test='search-autocomplete-results']"
	searchSubmit  = "[data-test='search-component'] button[type='submit']"
	userSpaceSel  = "button[data-test='user-space']"
	searchInputs  = "#whatinput, #whereinput"
	autocompleted = autocomplete + " > a, " + autocomplete + " > button"
)

// Site is the sandbox behind a fake browser tab
type Site struct {
	tb       testing.TB
	renderer *sandbox.Renderer
	handler  http.Handler

	// Session is the tab showing the site
	Session *drivertest.Session
	// Catalog holds the restaurants searched
	Catalog *sandbox.Catalog
	// Accounts holds the customers
	Accounts *sandbox.Accounts
	// Calls lists the API requests made by the page script as "METHOD path"
	Calls []string
	// AfterLoad, when set, edits every document right after it is served
	AfterLoad func(site *Site)

	focused    string
	suggestSeq int
}

// New serves the default catalogue and accounts. Nothing is loaded until the
// first navigation.
func New(tb testing.TB) *Site {
	tb.Helper()
	return NewWith(tb, sandbox.DefaultCatalog(), sandbox.DefaultAccounts())
}

// NewWith serves catalog and accounts
func NewWith(tb testing.TB, catalog *sandbox.Catalog, accounts *sandbox.Accounts) *Site {
	tb.Helper()
	renderer, err := sandbox.NewRenderer()
	if err != nil {
		tb.Fatalf("Failed to create renderer: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	site := &Site{
		tb:       tb,
		renderer: renderer,
		handler:  handlers.NewRouter(renderer, catalog, accounts, log),
		Session:  drivertest.New(""),
		Catalog:  catalog,
		Accounts: accounts,
	}
	site.Session.OnNavigate(site.serve)
	site.script()
	return site
}

// Env returns the page object environment for the site, narrating to r
func (site *Site) Env(r report.Reporter) pages.Env {
	return pages.Env{Driver: site.Session, Reporter: r, BaseURL: BaseURL}
}

// Open loads path directly, without going through the page objects
func (site *Site) Open(path string) {
	site.tb.Helper()
	if err := site.Session.Navigate(BaseURL + path); err != nil {
		site.tb.Fatalf("Failed to open %s: %v", path, err)
	}
}

// LogIn opens a session for email as if the customer had logged in earlier
func (site *Site) LogIn(email, password string) {
	site.tb.Helper()
	_, token, err := site.Accounts.Authenticate(email, password)
	if err != nil {
		site.tb.Fatalf("Failed to log in %s: %v", email, err)
	}
	site.Session.Cookies[handlers.SessionCookie] = token
}

// Find returns the live nodes of the current document matching css
func (site *Site) Find(css string) *goquery.Selection {
	return site.Session.Find(css)
}

// maxRedirects bounds the redirects followed by one navigation
const maxRedirects = 10

func (site *Site) serve(s *drivertest.Session, target string) error {
	rec := site.do(http.MethodGet, target, nil)
	for hops := 0; isRedirect(rec.Code); hops++ {
		if hops == maxRedirects {
			return fmt.Errorf("GET %s: stopped after %d redirects", target, maxRedirects)
		}
		next, err := url.Parse(target)
		if err == nil {
			next, err = next.Parse(rec.Header().Get("Location"))
		}
		if err != nil {
			return fmt.Errorf("GET %s: bad redirect: %w", target, err)
		}
		target = next.String()
		rec = site.do(http.MethodGet, target, nil)
	}
	if rec.Code != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", target, rec.Code)
	}
	s.Load(rec.Body.String())
	site.focused = ""
	if site.AfterLoad != nil {
		site.AfterLoad(site)
	}
	return nil
}

func isRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// do sends a request to the sandbox with the session cookies and keeps the
// cookies it sets
func (site *Site) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			site.tb.Fatalf("Failed to encode request: %v", err)
		}
		payload = bytes.NewReader(b)
	}
	if strings.HasPrefix(target, "/") {
		target = BaseURL + target
	}

	req := httptest.NewRequest(method, target, payload)
	for name, value := range site.Session.Cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	rec := httptest.NewRecorder()
	site.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(site.Session.Cookies, c.Name)
			continue
		}
		site.Session.Cookies[c.Name] = c.Value
	}
	return rec
}

// call runs an API request for the page script. apply sees the response once
// Latency has elapsed.
func (site *Site) call(method, path string, body interface{}, apply func(rec *httptest.ResponseRecorder)) {
	site.Calls = append(site.Calls, method+" "+path)
	rec := site.do(method, path, body)
	site.Session.After(Latency, func(*drivertest.Session) { apply(rec) })
}

// navigate follows a link once Latency has elapsed
func (site *Site) navigate(target string) {
	site.Session.After(Latency, func(s *drivertest.Session) {
		if err := s.Navigate(site.resolve(target)); err != nil {
			site.tb.Errorf("Navigation to %s failed: %v", target, err)
		}
	})
}

func (site *Site) resolve(ref string) string {
	base, err := url.Parse(site.Session.URL)
	if err != nil || base.Host == "" {
		base, _ = url.Parse(BaseURL)
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func show(sel *goquery.Selection, on bool) {
	if on {
		sel.RemoveAttr("hidden")
		return
	}
	sel.SetAttr("hidden", "")
}

func value(sel *goquery.Selection) string {
	v, _ := sel.Attr("value")
	return v
}

// script registers the hooks standing in for the page script
func (site *Site) script() {
	s := site.Session
	s.OnClick(userSpaceSel, func(s *drivertest.Session, _ *goquery.Selection) error {
		show(s.Find(panelSel), true)
		return nil
	})
	s.OnClick("button[aria-controls='USER_SPACE_FIRST_PANEL']", func(s *drivertest.Session, _ *goquery.Selection) error {
		show(s.Find(panelSel), false)
		return nil
	})
	s.OnClick("a[data-test='brand-logo']", func(*drivertest.Session, *goquery.Selection) error {
		site.navigate("/")
		return nil
	})

	// user space
	s.OnType("#identification_email", func(s *drivertest.Session, el *goquery.Selection) error {
		btn := s.Find(panelSel + " [data-testid='checkout-submit-email']")
		if strings.TrimSpace(value(el)) == "" {
			btn.SetAttr("disabled", "")
		} else {
			btn.RemoveAttr("disabled")
		}
		return nil
	})
	s.OnClick("[data-testid='checkout-submit-email']", func(s *drivertest.Session, _ *goquery.Selection) error {
		email := value(s.Find(panelSel + " #identification_email"))
		site.call(http.MethodPost, "/api/account", handlers.AccountRequest{Email: email}, func(rec *httptest.ResponseRecorder) {
			var resp handlers.AccountResponse
			if rec.Code == http.StatusOK && json.Unmarshal(rec.Body.Bytes(), &resp) == nil {
				site.setStep(resp.Step)
			}
		})
		return nil
	})
	s.OnClick("[data-testid='submit-password']", func(s *drivertest.Session, _ *goquery.Selection) error {
		p := s.Find(panelSel)
		req := handlers.LoginRequest{
			Email:    value(p.Find("#identification_email")),
			Password: value(p.Find("input[name='password']")),
		}
		site.call(http.MethodPost, "/api/login", req, site.userResponse)
		return nil
	})
	s.OnClick("[data-testid='reset-password-link']", func(s *drivertest.Session, _ *goquery.Selection) error {
		show(s.Find(panelSel+" [data-testid='reset-password-page']"), true)
		return nil
	})
	s.OnClick("section[data-step='register'] button[type='submit']", func(s *drivertest.Session, _ *goquery.Selection) error {
		p := s.Find(panelSel)
		code := p.Find("#PHONE_CODE_FIELD option[selected]")
		if code.Length() == 0 {
			code = p.Find("#PHONE_CODE_FIELD option")
		}
		req := handlers.RegisterRequest{
			Email:     value(p.Find("#identification_email")),
			Password:  value(p.Find("input[name='password']")),
			FirstName: value(p.Find("input[name='firstName']")),
			LastName:  value(p.Find("input[name='lastName']")),
			PhoneCode: value(code.First()),
			Phone:     value(p.Find("input[name='phoneNumber.nationalNumber']")),
		}
		site.call(http.MethodPost, "/api/register", req, site.userResponse)
		return nil
	})
	s.OnClick("button[data-test='LOGOUT_BTN']", func(*drivertest.Session, *goquery.Selection) error {
		site.call(http.MethodPost, "/api/logout", nil, func(*httptest.ResponseRecorder) {
			site.swapPanel(func(w io.Writer) error { return site.renderer.SidebarNotLoggedIn(w) })
			site.Find("body").RemoveAttr("data-logged-in")
			site.Find(userSpaceSel).SetText("Log in")
		})
		return nil
	})

	// search bar
	s.OnClick("label[for='whatinput'], label[for='whereinput']", func(s *drivertest.Session, el *goquery.Selection) error {
		id, _ := el.Attr("for")
		site.focus(id)
		return nil
	})
	s.OnClick(searchInputs, func(s *drivertest.Session, el *goquery.Selection) error {
		id, _ := el.Attr("id")
		site.focus(id)
		return nil
	})
	s.OnType(searchInputs, func(s *drivertest.Session, el *goquery.Selection) error {
		id, _ := el.Attr("id")
		site.focused = id
		site.syncClear(id)
		site.suggest(id)
		return nil
	})
	s.OnClick("[data-clear]", func(s *drivertest.Session, el *goquery.Selection) error {
		id, _ := el.Attr("data-clear")
		s.Find("#"+id).SetAttr("value", "")
		site.syncClear(id)
		site.focused = id
		site.suggest(id)
		return nil
	})
	s.OnClick(autocompleted, func(s *drivertest.Session, el *goquery.Selection) error {
		id := "whereinput"
		if field, _ := s.Find(autocomplete).Attr("data-field"); field == "what" {
			id = "whatinput"
		}
		label, _ := el.Attr("aria-label")
		s.Find("#"+id).SetAttr("value", label)
		site.syncClear(id)
		site.suggestSeq++
		site.closeList()
		return nil
	})
	s.OnClick(searchSubmit, func(s *drivertest.Session, _ *goquery.Selection) error {
		q := sandbox.Query{What: s.Value("#whatinput"), Where: s.Value("#whereinput")}
		site.navigate("/search/?" + q.Encode())
		return nil
	})

	// search page
	s.OnClick("#root fieldset legend", func(s *drivertest.Session, _ *goquery.Selection) error {
		options := s.Find("#root fieldset legend + div")
		_, hidden := options.Attr("hidden")
		show(options, hidden)
		return nil
	})
	s.OnClick("[data-sort]", func(s *drivertest.Session, el *goquery.Selection) error {
		key, _ := el.Attr("data-sort")
		u, err := url.Parse(s.URL)
		if err != nil {
			return err
		}
		q := u.Query()
		q.Set("sort", key)
		u.RawQuery = q.Encode()
		site.navigate(u.String())
		return nil
	})
	s.OnClick(".dhp-close", func(s *drivertest.Session, el *goquery.Selection) error {
		el.Closest("[data-tracking-region]").ToggleClass("collapsed")
		return nil
	})
	s.OnClick("a[data-test='quick-filter-special-offer']", func(s *drivertest.Session, el *goquery.Selection) error {
		href, _ := el.Attr("href")
		site.navigate(href)
		return nil
	})
}

func (site *Site) setStep(step string) {
	p := site.Find(panelSel)
	show(p.Find("[data-test='user-space-request-create-password-step']"), step == sandbox.StepCreatePassword)
	show(p.Find("[data-step='password']"), step == sandbox.StepPassword || step == sandbox.StepRegister)
	show(p.Find("[data-testid='submit-password']"), step == sandbox.StepPassword)
	show(p.Find("[data-testid='reset-password-link']"), step == sandbox.StepPassword)
	show(p.Find("section[data-step='register']"), step == sandbox.StepRegister)
}

// userResponse swaps in the customer panel after a successful log in or
// registration and shows the error label otherwise
func (site *Site) userResponse(rec *httptest.ResponseRecorder) {
	if rec.Code != http.StatusOK {
		var resp handlers.ErrorResponse
		label := site.Find(panelSel + " .inputLabel + span")
		if json.Unmarshal(rec.Body.Bytes(), &resp) == nil && resp.Message != "" {
			label.SetText(resp.Message)
		}
		show(label, true)
		return
	}

	var user handlers.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		site.tb.Errorf("Failed to decode user: %v", err)
		return
	}
	site.swapPanel(func(w io.Writer) error {
		return site.renderer.SidebarLoggedIn(w, sandbox.User{Name: user.Username, Yums: user.Yums})
	})
	show(site.Find(panelSel), true)
	site.Find("body").SetAttr("data-logged-in", "true")
	site.Find(userSpaceSel).SetText(user.Username)
}

// swapPanel replaces the user space panel with a hidden one rendered by render
func (site *Site) swapPanel(render func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		site.tb.Errorf("Failed to render panel: %v", err)
		return
	}
	site.Find(panelSel).ReplaceWithHtml(buf.String())
}

func (site *Site) focus(id string) {
	if site.focused == id {
		return
	}
	site.focused = id
	site.suggest(id)
}

func (site *Site) syncClear(id string) {
	show(site.Find("label[for='"+id+"'] + span button"), site.Session.Value("#"+id) != "")
}

func (site *Site) suggest(id string) {
	field := "where"
	if id == "whatinput" {
		field = "what"
	}
	site.suggestSeq++
	seq := site.suggestSeq
	path := "/api/suggest?field=" + field + "&q=" + url.QueryEscape(site.Session.Value("#"+id))
	site.call(http.MethodGet, path, nil, func(rec *httptest.ResponseRecorder) {
		if seq != site.suggestSeq {
			return
		}
		var items []handlers.Suggestion
		if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
			site.tb.Errorf("Failed to decode suggestions: %v", err)
			return
		}
		site.openList(items, field)
	})
}

func (site *Site) openList(items []handlers.Suggestion, field string) {
	ul := site.Find(autocomplete)
	ul.Empty()
	ul.SetAttr("data-field", field)
	var b strings.Builder
	for _, item := range items {
		label := html.EscapeString(item.Label)
		if item.Shortcut {
			fmt.Fprintf(&b, `<a href="#" aria-label="%s">%s</a>`, label, label)
		} else {
			fmt.Fprintf(&b, `<button type="button" aria-label="%s">%s</button>`, label, label)
		}
	}
	ul.AppendHtml(b.String())
	show(ul, len(items) > 0)
	submitDisabled(site.Find(searchSubmit), len(items) > 0)
}

func (site *Site) closeList() {
	ul := site.Find(autocomplete)
	show(ul, false)
	ul.Empty()
	submitDisabled(site.Find(searchSubmit), false)
}

func submitDisabled(btn *goquery.Selection, disabled bool) {
	if disabled {
		btn.SetAttr("disabled", "")
		return
	}
	btn.RemoveAttr("disabled")
}

// SetCount overrides the rendered result count, e.g. to exercise grouping
func (site *Site) SetCount(n int) {
	site.Find("[data-test='result-count']").SetText(sandbox.FormatCount(n))
}
