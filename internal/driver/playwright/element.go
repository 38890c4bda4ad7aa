package playwright

import (
	"fmt"

	pw "github.com/playwright-community/playwright-go"

	"github.com/forkqa/webnextgen/internal/driver"
)

// Element wraps a playwright element handle
type Element struct {
	h    pw.ElementHandle
	page pw.Page
}

var _ driver.Element = (*Element)(nil)

// FindElement implements driver.SearchContext
func (e *Element) FindElement(by driver.By) (driver.Element, error) {
	h, err := e.h.QuerySelector(by.Selector())
	if err != nil {
		return nil, classify(err)
	}
	if h == nil {
		return nil, driver.NotFound.New("no element matches %s", by)
	}
	return &Element{h: h, page: e.page}, nil
}

// FindElements implements driver.SearchContext
func (e *Element) FindElements(by driver.By) ([]driver.Element, error) {
	hs, err := e.h.QuerySelectorAll(by.Selector())
	if err != nil {
		return nil, classify(err)
	}
	return wrap(e.page, hs), nil
}

// Click clicks the element and, when the click started a navigation, waits
// for the next document to finish loading
func (e *Element) Click() error {
	if err := e.h.Click(); err != nil {
		return classify(err)
	}
	if err := e.page.WaitForLoadState(); err != nil {
		return fmt.Errorf("failed waiting for page load: %w", err)
	}
	return nil
}

// SendKeys types text key by key so input listeners fire
func (e *Element) SendKeys(text string) error {
	return classify(e.h.Type(text))
}

func (e *Element) Clear() error {
	return classify(e.h.Fill(""))
}

func (e *Element) Text() (string, error) {
	text, err := e.h.InnerText()
	return text, classify(err)
}

// Attribute returns the named attribute. The value attribute reads the live
// input value where the element has one.
func (e *Element) Attribute(name string) (string, error) {
	if name == "value" {
		if v, err := e.h.InputValue(); err == nil {
			return v, nil
		}
	}
	v, err := e.h.GetAttribute(name)
	return v, classify(err)
}

// SelectOption picks the option with the given value of a select element
func (e *Element) SelectOption(value string) error {
	_, err := e.h.SelectOption(pw.SelectOptionValues{Values: &[]string{value}})
	return classify(err)
}

func (e *Element) IsDisplayed() (bool, error) {
	ok, err := e.h.IsVisible()
	return ok, classify(err)
}

func (e *Element) IsEnabled() (bool, error) {
	ok, err := e.h.IsEnabled()
	return ok, classify(err)
}
