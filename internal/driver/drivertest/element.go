package drivertest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/forkqa/webnextgen/internal/driver"
)

// Element is a handle to one node of a Session document
type Element struct {
	s   *Session
	sel *goquery.Selection
}

var _ driver.Element = (*Element)(nil)

// Selection returns the underlying goquery selection
func (e *Element) Selection() *goquery.Selection { return e.sel }

func (e *Element) node() *html.Node { return e.sel.Nodes[0] }

// attached reports whether the node still belongs to the live document
func (e *Element) attached() bool {
	root := e.s.doc.Nodes[0]
	for n := e.node(); n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

func (e *Element) check() error {
	if !e.attached() {
		return driver.Stale.New("<%s> is no longer attached to the document", e.node().Data)
	}
	return nil
}

// FindElement implements driver.SearchContext
func (e *Element) FindElement(by driver.By) (driver.Element, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	return first(e.s, e.sel, by)
}

// FindElements implements driver.SearchContext
func (e *Element) FindElements(by driver.By) ([]driver.Element, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	return all(e.s, e.sel, by), nil
}

// Click fires the click hooks matching the element. Clicking an option
// selects it within its select.
func (e *Element) Click() error {
	if err := e.interactable(); err != nil {
		return err
	}
	if _, disabled := e.sel.Attr("disabled"); disabled {
		return nil
	}
	if goquery.NodeName(e.sel) == "option" {
		e.sel.Siblings().RemoveAttr("selected")
		e.sel.SetAttr("selected", "selected")
	}
	return e.s.fire(e.s.clickHooks, e.sel, true)
}

// SelectOption selects the option with the given value and fires the click
// hooks of that option
func (e *Element) SelectOption(value string) error {
	if err := e.interactable(); err != nil {
		return err
	}
	by := driver.CSS("option[value=" + driver.Quote(value) + "]")
	opt := live(e.sel.Find(by.Selector())).First()
	if opt.Length() == 0 {
		return driver.NotFound.New("no element matches %s", by)
	}
	opt.Siblings().RemoveAttr("selected")
	opt.SetAttr("selected", "selected")
	return e.s.fire(e.s.clickHooks, opt, true)
}

// SendKeys appends text to the element value
func (e *Element) SendKeys(text string) error {
	if err := e.interactable(); err != nil {
		return err
	}
	v, _ := e.sel.Attr("value")
	e.sel.SetAttr("value", v+text)
	return e.s.fire(e.s.typeHooks, e.sel, false)
}

// Clear empties the element value
func (e *Element) Clear() error {
	if err := e.interactable(); err != nil {
		return err
	}
	e.sel.SetAttr("value", "")
	return e.s.fire(e.s.typeHooks, e.sel, false)
}

func (e *Element) interactable() error {
	if err := e.check(); err != nil {
		return err
	}
	if !displayed(e.node()) {
		return NotInteractable.New("<%s> is not displayed", e.node().Data)
	}
	return nil
}

// Text returns the rendered text of the element with whitespace collapsed.
// Hidden elements have no text.
func (e *Element) Text() (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	if !displayed(e.node()) {
		return "", nil
	}
	var b strings.Builder
	renderText(&b, e.node())
	return strings.Join(strings.FieldsFunc(b.String(), collapsible), " "), nil
}

// Attribute returns the named attribute or "" when it is absent
func (e *Element) Attribute(name string) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	v, _ := e.sel.Attr(name)
	return v, nil
}

// IsDisplayed reports whether neither the element nor an ancestor is hidden
func (e *Element) IsDisplayed() (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	return displayed(e.node()), nil
}

// IsEnabled reports whether the element lacks the disabled attribute
func (e *Element) IsEnabled() (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	_, disabled := e.sel.Attr("disabled")
	return !disabled, nil
}

// collapsible matches the ASCII whitespace a browser collapses when rendering
func collapsible(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func displayed(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && hidden(n) {
			return false
		}
	}
	return true
}

func hidden(n *html.Node) bool {
	switch n.Data {
	case "template", "script", "style", "head":
		return true
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "type":
			if n.Data == "input" && strings.EqualFold(a.Val, "hidden") {
				return true
			}
		case "style":
			style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

func renderText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if hidden(n) {
			return
		}
		if n.Data == "br" {
			b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderText(b, c)
	}
	if n.Type == html.ElementNode {
		// block boundaries separate words
		b.WriteByte(' ')
	}
}
