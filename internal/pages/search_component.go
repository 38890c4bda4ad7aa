package pages

import (
	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/driver"
)

var (
	whatInputBy         = driver.ID("whatinput")
	whereInputBy        = driver.ID("whereinput")
	searchButtonBy      = driver.CSS("button[type='submit']")
	whatLabelBy         = driver.CSS("label[for='whatinput']")
	whereLabelBy        = driver.CSS("label[for='whereinput']")
	clearWhatButtonBy   = driver.CSS("label[for='whatinput']+span button")
	clearWhereButtonBy  = driver.CSS("label[for='whereinput']+span button")
	autocompleteBy      = driver.CSS("ul[data-test='search-autocomplete-results']")
	autocompleteFirstBy = driver.CSS("a, button")
)

// autocompleteEntry locates the suggestion whose accessible label is text
func autocompleteEntry(text string) driver.By {
	q := driver.Quote(text)
	return driver.CSS("a[aria-label=" + q + "], button[aria-label=" + q + "]")
}

// field is one of the two inputs of the search bar
type field struct {
	name  string
	input driver.By
	label driver.By
	clear driver.By
}

var (
	whatField  = field{name: "what", input: whatInputBy, label: whatLabelBy, clear: clearWhatButtonBy}
	whereField = field{name: "where", input: whereInputBy, label: whereLabelBy, clear: clearWhereButtonBy}
)

// SearchComponent is the what/where search bar with its autocomplete
type SearchComponent struct {
	env  Env
	root driver.Element
	log  logrus.FieldLogger
}

// NewSearchComponent binds a search bar to its container
func NewSearchComponent(env Env, root driver.Element) *SearchComponent {
	return &SearchComponent{env: env, root: root, log: env.logger("search")}
}

// VerifyReady checks both fields, their labels and the search button
func (c *SearchComponent) VerifyReady() error {
	if err := verify(c.root, c.log, "search component", []check{
		{"what input", whatInputBy},
		{"where input", whereInputBy},
		{"search button", searchButtonBy},
		{"where label", whereLabelBy},
		{"what label", whatLabelBy},
	}); err != nil {
		return err
	}
	c.log.Debug("Search component loaded")
	return nil
}

func (c *SearchComponent) click(by driver.By) error {
	el, err := c.root.FindElement(by)
	if err != nil {
		return err
	}
	return el.Click()
}

// clearIfPopulated empties f through its clear affordance when it holds text
func (c *SearchComponent) clearIfPopulated(f field) (driver.Element, error) {
	input, err := c.root.FindElement(f.input)
	if err != nil {
		return nil, err
	}
	value, err := input.Attribute("value")
	if err != nil {
		return nil, err
	}
	if value == "" {
		return input, nil
	}

	c.log.WithField(f.name, value).Debug("Clearing field")
	if err := input.Click(); err != nil {
		return nil, err
	}
	if err := c.click(f.clear); err != nil {
		return nil, err
	}
	if err := driver.WaitInvisible(c.env.Driver, f.clear, ClearButtonTimeout); err != nil {
		return nil, err
	}
	return input, nil
}

// EnterWhat replaces the what field with what
func (c *SearchComponent) EnterWhat(what string) error {
	c.log.WithField("what", what).Debug("Enter what")
	input, err := c.clearIfPopulated(whatField)
	if err != nil {
		return err
	}
	if err := input.SendKeys(what); err != nil {
		return err
	}
	return c.click(whatLabelBy)
}

// EnterWhere replaces the where field with where and waits for the
// suggestions
func (c *SearchComponent) EnterWhere(where string) error {
	c.log.WithField("where", where).Debug("Enter where")
	input, err := c.clearIfPopulated(whereField)
	if err != nil {
		return err
	}
	if err := c.click(whereLabelBy); err != nil {
		return err
	}
	if err := input.SendKeys(where); err != nil {
		return err
	}
	_, err = c.waitAutocomplete()
	return err
}

func (c *SearchComponent) waitAutocomplete() (driver.Element, error) {
	list, err := driver.WaitVisible(c.env.Driver, autocompleteBy, AutocompleteTimeout)
	if err != nil {
		return nil, err
	}
	c.log.Debug("Autocomplete is visible")
	return list, nil
}

func (c *SearchComponent) waitSearchButton() error {
	_, err := driver.WaitClickable(c.env.Driver, searchButtonBy, SearchButtonTimeout)
	return err
}

// SelectFromAutocomplete clicks the suggestion labelled exactly text. The
// first matching entry in document order wins.
func (c *SearchComponent) SelectFromAutocomplete(text string) error {
	if _, err := c.waitAutocomplete(); err != nil {
		return err
	}
	entry, err := driver.WaitPresent(c.env.Driver, autocompleteEntry(text), AutocompleteTimeout)
	if err != nil {
		return err
	}
	label, err := entry.Text()
	if err != nil {
		return err
	}
	c.env.report("Click on autocomplete option with text '%s'", label)
	if err := entry.Click(); err != nil {
		return err
	}
	return c.waitSearchButton()
}

// AutocompleteContains reports whether a suggestion labelled text shows. The
// list itself must appear; a missing entry is reported as false.
func (c *SearchComponent) AutocompleteContains(text string) (bool, error) {
	if _, err := c.waitAutocomplete(); err != nil {
		return false, err
	}
	entry, err := driver.WaitPresent(c.env.Driver, autocompleteEntry(text), AutocompleteTimeout)
	if driver.Timeout.Has(err) {
		c.log.WithField("text", text).Debug("Suggestion not found")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return entry.IsDisplayed()
}

// selectShortcut focuses f and clicks the first suggestion
func (c *SearchComponent) selectShortcut(f field) error {
	input, err := c.clearIfPopulated(f)
	if err != nil {
		return err
	}
	if f.name == whereField.name {
		if err := c.click(whereLabelBy); err != nil {
			return err
		}
	}
	if err := input.Click(); err != nil {
		return err
	}
	list, err := c.waitAutocomplete()
	if err != nil {
		return err
	}
	first, err := list.FindElement(autocompleteFirstBy)
	if err != nil {
		return err
	}
	return first.Click()
}

// SelectNearMe picks the around me shortcut of the where field
func (c *SearchComponent) SelectNearMe() error {
	c.log.Debug("Select near me")
	if err := c.selectShortcut(whereField); err != nil {
		return err
	}
	return c.waitSearchButton()
}

// SelectAllRestaurants picks the all restaurants shortcut of the what field
func (c *SearchComponent) SelectAllRestaurants() error {
	c.log.Debug("Select all restaurants")
	if err := c.selectShortcut(whatField); err != nil {
		return err
	}
	if err := driver.WaitInvisible(c.env.Driver, autocompleteBy, AutocompleteTimeout); err != nil {
		return err
	}
	return c.waitSearchButton()
}

// LaunchSearch submits the search and returns the results page
func (c *SearchComponent) LaunchSearch() (*SearchPage, error) {
	if err := c.waitSearchButton(); err != nil {
		return nil, err
	}
	btn, err := c.root.FindElement(searchButtonBy)
	if err != nil {
		return nil, err
	}
	if err := clickAndWaitNavigation(c.env.Driver, btn, PageTransitionTimeout); err != nil {
		return nil, err
	}
	return currentSearchPage(c.env)
}

// Search enters and confirms both fields then launches the search
func (c *SearchComponent) Search(what, where string) (*SearchPage, error) {
	c.env.report("Search what: '%s', where: '%s'", what, where)
	if err := c.EnterWhat(what); err != nil {
		return nil, err
	}
	if err := c.SelectFromAutocomplete(what); err != nil {
		return nil, err
	}
	if err := c.EnterWhere(where); err != nil {
		return nil, err
	}
	if err := c.SelectFromAutocomplete(where); err != nil {
		return nil, err
	}
	return c.LaunchSearch()
}
