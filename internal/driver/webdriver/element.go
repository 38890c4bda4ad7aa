package webdriver

import (
	"github.com/tebeka/selenium"

	"github.com/forkqa/webnextgen/internal/driver"
)

// Element wraps a remote web element
type Element struct {
	el selenium.WebElement
}

var _ driver.Element = (*Element)(nil)

// FindElement implements driver.SearchContext
func (e *Element) FindElement(by driver.By) (driver.Element, error) {
	using, value := locator(by)
	el, err := e.el.FindElement(using, value)
	if err != nil {
		return nil, classify(err, by)
	}
	return &Element{el: el}, nil
}

// FindElements implements driver.SearchContext
func (e *Element) FindElements(by driver.By) ([]driver.Element, error) {
	using, value := locator(by)
	els, err := e.el.FindElements(using, value)
	if err != nil {
		if isNoSuchElement(err) {
			return nil, nil
		}
		return nil, classify(err, by)
	}
	return wrap(els), nil
}

func (e *Element) Click() error {
	return classify(e.el.Click(), driver.By{})
}

func (e *Element) SendKeys(text string) error {
	return classify(e.el.SendKeys(text), driver.By{})
}

func (e *Element) Clear() error {
	return classify(e.el.Clear(), driver.By{})
}

func (e *Element) Text() (string, error) {
	text, err := e.el.Text()
	if err != nil {
		return "", classify(err, driver.By{})
	}
	return text, nil
}

// Attribute returns the named attribute or "" when the element has none
func (e *Element) Attribute(name string) (string, error) {
	v, err := e.el.GetAttribute(name)
	if err != nil {
		if err.Error() == "nil return value" {
			return "", nil
		}
		return "", classify(err, driver.By{})
	}
	return v, nil
}

// SelectOption clicks the option with the given value of a select element
func (e *Element) SelectOption(value string) error {
	by := driver.CSS("option[value=" + driver.Quote(value) + "]")
	using, v := locator(by)
	opt, err := e.el.FindElement(using, v)
	if err != nil {
		return classify(err, by)
	}
	return classify(opt.Click(), by)
}

func (e *Element) IsDisplayed() (bool, error) {
	ok, err := e.el.IsDisplayed()
	if err != nil {
		return false, classify(err, driver.By{})
	}
	return ok, nil
}

func (e *Element) IsEnabled() (bool, error) {
	ok, err := e.el.IsEnabled()
	if err != nil {
		return false, classify(err, driver.By{})
	}
	return ok, nil
}
