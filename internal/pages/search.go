package pages

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/driver"
)

var (
	dhpBy                        = driver.CSS("[data-test='dhp-selector']")
	numberOfResultsBy            = driver.CSS(".container > div > div > p")
	mapContainerBy               = driver.ID("map")
	sortByButtonBy               = driver.CSS("#root fieldset legend")
	sortByOptionsBy              = driver.CSS("#root fieldset legend+div > div")
	resultListContainerBy        = driver.CSS("div[data-test='result-list-restaurants']")
	emptyListMessageBy           = driver.CSS(".withMap h1")
	paginationBy                 = driver.CSS("nav[data-test='pagination-page-list']")
	closeDhpRegionBy             = driver.CSS("[data-tracking-region='DHP and filters'] > div > div > div")
	bestRestaurantsInCityLabelBy = driver.CSS("div > h1")
	specialOffersButtonBy        = driver.CSS("[data-test='quick-filter-special-offer']")
	marketingBannerBy            = driver.CSS("header[data-test='search-marketing-banner-header']")
	resultCountBy                = driver.CSS("[data-test='result-count']")
)

// SearchPage is the results page of a search
type SearchPage struct {
	env     Env
	log     logrus.FieldLogger
	header  *HeaderNoSearch
	footer  *Footer
	results *SearchResultList
}

// OpenSearchPage navigates straight to the results of query
func OpenSearchPage(env Env, query url.Values) (*SearchPage, error) {
	target := strings.TrimRight(env.BaseURL, "/") + "/search/"
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	env.report("Opening Search Page: %s", target)
	if err := env.Driver.Navigate(target); err != nil {
		return nil, err
	}
	return currentSearchPage(env)
}

// currentSearchPage verifies the results page the browser already shows
func currentSearchPage(env Env) (*SearchPage, error) {
	p := &SearchPage{env: env, log: env.logger("search-page")}
	p.log.Debug("Initializing Search Page")
	if err := p.VerifyReady(); err != nil {
		return nil, err
	}
	return p, nil
}

// VerifyReady checks the date and party size selector first, then the rest
// of the page, then either the result list or the no result message
func (p *SearchPage) VerifyReady() error {
	s := p.env.Driver
	if err := verify(s, p.log, "search page", []check{
		{"DHP selector", dhpBy},
	}); err != nil {
		return err
	}
	if err := verify(s, p.log, "search page", []check{
		{"number of results", numberOfResultsBy},
		{"header container", headerBy},
		{"footer container", footerBy},
		{"map container", mapContainerBy},
		{"sort by button", sortByButtonBy},
	}); err != nil {
		return err
	}

	header, err := s.FindElement(headerBy)
	if err != nil {
		return notLoaded("search page", "header container", err)
	}
	p.header = NewHeaderNoSearch(p.env, header)
	if err := p.header.VerifyReady(); err != nil {
		return err
	}
	footer, err := s.FindElement(footerBy)
	if err != nil {
		return notLoaded("search page", "footer container", err)
	}
	p.footer = NewFooter(p.env, footer)
	if err := p.footer.VerifyReady(); err != nil {
		return err
	}

	list, err := s.FindElement(resultListContainerBy)
	switch {
	case err == nil:
		p.log.Debug("Search list result is displayed")
		p.results = NewSearchResultList(p.env, list)
		return p.results.VerifyReady()
	case !driver.NotFound.Has(err):
		return notLoaded("search page", "result list", err)
	}

	p.log.WithError(err).Debug("Search list result is not displayed, checking for empty list message")
	if _, err := s.FindElement(emptyListMessageBy); err != nil {
		return notLoaded("search page", "result list or empty list message", err)
	}
	p.log.Debug("Initializing the search result list with zero element")
	p.results = NewEmptySearchResultList(p.env)
	return nil
}

// Header returns the site header
func (p *SearchPage) Header() *HeaderNoSearch { return p.header }

// Footer returns the site footer
func (p *SearchPage) Footer() *Footer { return p.footer }

// Results returns the restaurants found, possibly none
func (p *SearchPage) Results() *SearchResultList { return p.results }

// IsGoogleMapDisplayed reports whether the map shows
func (p *SearchPage) IsGoogleMapDisplayed() (bool, error) {
	return displayed(p.env.Driver, mapContainerBy)
}

// IsListOfRestaurantsEmpty reports whether the no result message shows
func (p *SearchPage) IsListOfRestaurantsEmpty() (bool, error) {
	return displayed(p.env.Driver, emptyListMessageBy)
}

// IsBestRestaurantsInCityLabelDisplayed reports whether the results heading
// shows
func (p *SearchPage) IsBestRestaurantsInCityLabelDisplayed() (bool, error) {
	return displayed(p.env.Driver, bestRestaurantsInCityLabelBy)
}

// IsMarketingBannerDisplayed reports whether the special offers banner shows
func (p *SearchPage) IsMarketingBannerDisplayed() (bool, error) {
	p.log.Debug("Is the marketing banner displayed")
	return displayed(p.env.Driver, marketingBannerBy)
}

// IsPaginationDisplayed reports whether the page list shows
func (p *SearchPage) IsPaginationDisplayed() (bool, error) {
	return displayed(p.env.Driver, paginationBy)
}

// CloseDhp folds the date and party size selector
func (p *SearchPage) CloseDhp() (*SearchPage, error) {
	el, err := p.env.Driver.FindElement(closeDhpRegionBy)
	if err != nil {
		return nil, err
	}
	if err := el.Click(); err != nil {
		return nil, err
	}
	return p, nil
}

// specialOffersEnabled reads the toggle: a single span means disabled
func (p *SearchPage) specialOffersEnabled() (driver.Element, bool, error) {
	btn, err := p.env.Driver.FindElement(specialOffersButtonBy)
	if err != nil {
		return nil, false, err
	}
	spans, err := btn.FindElements(driver.TagName("span"))
	if err != nil {
		return nil, false, err
	}
	return btn, len(spans) != 1, nil
}

func (p *SearchPage) toggleSpecialOffers(enable bool) (*SearchPage, error) {
	btn, enabled, err := p.specialOffersEnabled()
	if err != nil {
		return nil, err
	}
	if enabled == enable {
		p.log.WithField("enabled", enabled).Debug("The special offers button is already in the requested state")
		return p, nil
	}
	p.log.WithField("enable", enable).Debug("Click the special offers button")
	if err := clickAndWaitNavigation(p.env.Driver, btn, PageTransitionTimeout); err != nil {
		return nil, err
	}
	return currentSearchPage(p.env)
}

// EnableSpecialOffers restricts the results to restaurants with offers. It
// does nothing when the filter is already on.
func (p *SearchPage) EnableSpecialOffers() (*SearchPage, error) {
	p.env.report("Enable special offers only")
	return p.toggleSpecialOffers(true)
}

// DisableSpecialOffers lifts the offers filter. It does nothing when the
// filter is already off.
func (p *SearchPage) DisableSpecialOffers() (*SearchPage, error) {
	p.env.report("Disable special offers only")
	return p.toggleSpecialOffers(false)
}

// NumberOfRestaurants parses the leading number of the result count
func (p *SearchPage) NumberOfRestaurants() (int, error) {
	el, err := p.env.Driver.FindElement(resultCountBy)
	if err != nil {
		return 0, err
	}
	text, err := el.Text()
	if err != nil {
		return 0, err
	}
	number := strings.Split(text, " ")[0]
	number = strings.ReplaceAll(number, "\u202f", "")
	p.log.WithField("number", number).Debug("Preparing to convert to integer")
	return strconv.Atoi(number)
}

// SortBy opens the sort options and picks the one labelled label
func (p *SearchPage) SortBy(label string) (*SearchPage, error) {
	p.env.report("Sort by: %s", label)
	legend, err := p.env.Driver.FindElement(sortByButtonBy)
	if err != nil {
		return nil, err
	}
	if err := legend.Click(); err != nil {
		return nil, err
	}
	if _, err := driver.WaitVisible(p.env.Driver, sortByOptionsBy, SortOptionsTimeout); err != nil {
		return nil, err
	}

	options, err := p.env.Driver.FindElements(sortByOptionsBy)
	if err != nil {
		return nil, err
	}
	for _, option := range options {
		text, err := option.Text()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) != label {
			continue
		}
		if err := clickAndWaitNavigation(p.env.Driver, option, PageTransitionTimeout); err != nil {
			return nil, err
		}
		return currentSearchPage(p.env)
	}
	return nil, IllegalArgument.New("no sort option labelled %q", label)
}
