package pages

import (
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/driver"
)

var (
	headerBy          = driver.TagName("header")
	footerBy          = driver.TagName("footer")
	tagLineBy         = driver.CSS("div[data-test='homepage-tagline'] > h1")
	searchContainerBy = driver.CSS("div[data-test='search-component']")
)

// HomePage is the landing page with the search bar
type HomePage struct {
	env    Env
	log    logrus.FieldLogger
	header *HeaderNoSearch
	footer *Footer
	search *SearchComponent
}

// OpenHomePage opens the landing page at env.BaseURL
func OpenHomePage(env Env) (*HomePage, error) {
	return OpenHomePageAt(env, env.BaseURL)
}

// OpenHomePageAt opens the landing page at rawURL, reloads it once and
// returns it verified. A malformed address fails with NotLoaded.
func OpenHomePageAt(env Env, rawURL string) (*HomePage, error) {
	p := &HomePage{env: env, log: env.logger("home")}
	p.log.Debug("Initializing Home Page")

	u, err := url.Parse(rawURL)
	if err == nil && (u.Scheme == "" || u.Host == "") {
		err = fmt.Errorf("%q is not an absolute url", rawURL)
	}
	if err != nil {
		p.log.WithError(err).Errorf("The URL format '%s' is not correct.", rawURL)
		return nil, NotLoaded.Wrap(fmt.Errorf("the home page could not be opened: %w", err))
	}

	env.report("Opening Home Page: %s", u)
	if err := env.Driver.Navigate(u.String()); err != nil {
		return nil, err
	}
	if err := env.Driver.Refresh(); err != nil {
		return nil, err
	}
	if err := p.VerifyReady(); err != nil {
		return nil, err
	}
	return p, nil
}

// currentHomePage verifies the home page the browser already shows
func currentHomePage(env Env) (*HomePage, error) {
	p := &HomePage{env: env, log: env.logger("home")}
	env.report("Opening Home Page when coming from another page")
	if err := p.VerifyReady(); err != nil {
		return nil, err
	}
	return p, nil
}

// VerifyReady checks the tag line and the containers, then verifies the
// header, the footer and the search bar
func (p *HomePage) VerifyReady() error {
	s := p.env.Driver
	if err := verify(s, p.log, "home page", []check{
		{"tag line", tagLineBy},
		{"header container", headerBy},
		{"footer container", footerBy},
		{"search container", searchContainerBy},
	}); err != nil {
		return err
	}

	header, err := s.FindElement(headerBy)
	if err != nil {
		return notLoaded("home page", "header container", err)
	}
	p.header = NewHeaderNoSearch(p.env, header)
	if err := p.header.VerifyReady(); err != nil {
		return err
	}

	footer, err := s.FindElement(footerBy)
	if err != nil {
		return notLoaded("home page", "footer container", err)
	}
	p.footer = NewFooter(p.env, footer)
	if err := p.footer.VerifyReady(); err != nil {
		return err
	}

	container, err := s.FindElement(searchContainerBy)
	if err != nil {
		return notLoaded("home page", "search container", err)
	}
	p.search = NewSearchComponent(p.env, container)
	return p.search.VerifyReady()
}

// Header returns the site header
func (p *HomePage) Header() *HeaderNoSearch { return p.header }

// Footer returns the site footer
func (p *HomePage) Footer() *Footer { return p.footer }

// Search runs a full search and returns the results page
func (p *HomePage) Search(what, where string) (*SearchPage, error) {
	return p.search.Search(what, where)
}

// EnterWhat types into the what field
func (p *HomePage) EnterWhat(what string) (*HomePage, error) {
	p.env.report("Enter what: %s", what)
	if err := p.search.EnterWhat(what); err != nil {
		return nil, err
	}
	return p, nil
}

// EnterWhere types into the where field
func (p *HomePage) EnterWhere(where string) (*HomePage, error) {
	p.env.report("Enter where: %s", where)
	if err := p.search.EnterWhere(where); err != nil {
		return nil, err
	}
	return p, nil
}

// LaunchSearch submits the search bar
func (p *HomePage) LaunchSearch() (*SearchPage, error) {
	p.env.report("Launch search")
	return p.search.LaunchSearch()
}

// SelectSearchAllRestaurants picks the all restaurants shortcut
func (p *HomePage) SelectSearchAllRestaurants() (*HomePage, error) {
	p.env.report("Select All Restaurants in the search what field")
	if err := p.search.SelectAllRestaurants(); err != nil {
		return nil, err
	}
	return p, nil
}

// SelectSearchNearMe picks the around me shortcut
func (p *HomePage) SelectSearchNearMe() (*HomePage, error) {
	p.env.report("Select Near Me in the search where field")
	if err := p.search.SelectNearMe(); err != nil {
		return nil, err
	}
	return p, nil
}

// SelectFromAutocomplete picks the suggestion labelled text
func (p *HomePage) SelectFromAutocomplete(text string) (*HomePage, error) {
	if err := p.search.SelectFromAutocomplete(text); err != nil {
		return nil, err
	}
	return p, nil
}

// Login logs in through the user space and closes it again
func (p *HomePage) Login(email, password string) (*HomePage, error) {
	sidebar, err := p.header.OpenSidebarNotLoggedIn()
	if err != nil {
		return nil, err
	}
	customer, err := sidebar.Login(email, password)
	if err != nil {
		return nil, err
	}
	if err := customer.Close(); err != nil {
		return nil, err
	}
	return p, nil
}

// IsTextPresentInAutocompleteResult reports whether a suggestion labelled
// text shows
func (p *HomePage) IsTextPresentInAutocompleteResult(text string) (bool, error) {
	p.env.report("Check if autocomplete result contains text %s", text)
	return p.search.AutocompleteContains(text)
}
