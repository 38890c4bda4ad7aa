package driver

import (
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/errs"
)

// Error classes shared by every backend
var (
	// NotFound is returned by FindElement when nothing matches the locator
	NotFound = errs.Class("element not found")
	// Timeout is returned by WaitUntil when the condition did not hold in time
	Timeout = errs.Class("timeout")
)

// Strategy identifies how a locator value is interpreted
type Strategy int

// Locator strategies
const (
	ByCSS Strategy = iota
	ByID
	ByName
	ByTagName
)

func (s Strategy) String() string {
	switch s {
	case ByID:
		return "id"
	case ByName:
		return "name"
	case ByTagName:
		return "tag name"
	default:
		return "css selector"
	}
}

// By is an opaque lookup key for elements within a search context
type By struct {
	Strategy Strategy
	Value    string
}

// CSS returns a CSS selector locator
func CSS(selector string) By { return By{Strategy: ByCSS, Value: selector} }

// ID returns a locator matching the element id
func ID(id string) By { return By{Strategy: ByID, Value: id} }

// Name returns a locator matching the name attribute
func Name(name string) By { return By{Strategy: ByName, Value: name} }

// TagName returns a locator matching the element tag
func TagName(tag string) By { return By{Strategy: ByTagName, Value: tag} }

// Selector returns the CSS selector equivalent to the locator
func (b By) Selector() string {
	switch b.Strategy {
	case ByID:
		return "[id=" + Quote(b.Value) + "]"
	case ByName:
		return "[name=" + Quote(b.Value) + "]"
	default:
		return b.Value
	}
}

func (b By) String() string {
	return fmt.Sprintf("By.%s: %s", b.Strategy, b.Value)
}

// Quote returns s as a single quoted CSS string literal
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\a `)
	return "'" + r.Replace(s) + "'"
}

// SearchContext is anything elements can be looked up from
type SearchContext interface {
	FindElement(by By) (Element, error)
	FindElements(by By) ([]Element, error)
}

// Element is a handle to a single UI element
type Element interface {
	SearchContext

	Click() error
	SendKeys(text string) error
	Clear() error
	Text() (string, error)
	Attribute(name string) (string, error)
	// SelectOption picks the option with the given value of a select element
	SelectOption(value string) error
	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
}

// Session drives one browser tab
type Session interface {
	SearchContext

	Navigate(url string) error
	Refresh() error
	DeleteAllCookies() error
	// WaitUntil blocks until cond holds or timeout elapses
	WaitUntil(cond Condition, timeout time.Duration) error
	Close() error
}
