// Package pages models the reservation site as page objects.
//
// Every page and component is bound to a root element and becomes usable
// only after VerifyReady has found each element of its checklist, in order,
// and verified its children. Actions locate fresh elements, interact, wait
// for the resulting UI state and return the next verified page or component.
package pages

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zeebo/errs"

	"github.com/forkqa/webnextgen/internal/driver"
	"github.com/forkqa/webnextgen/internal/report"
)

// Error classes of the page objects
var (
	// NotLoaded is returned when a readiness checklist element is missing
	NotLoaded = errs.Class("not loaded")
	// IllegalArgument is returned for out of range indexes into results
	IllegalArgument = errs.Class("illegal argument")
)

// Bounds of the waits performed by actions
const (
	OpenSidebarTimeout    = 10 * time.Second
	CloseSidebarTimeout   = 5 * time.Second
	SidebarButtonTimeout  = 20 * time.Second
	SidebarScreenTimeout  = 20 * time.Second
	AutocompleteTimeout   = 10 * time.Second
	ClearButtonTimeout    = 2 * time.Second
	SearchButtonTimeout   = 10 * time.Second
	SortOptionsTimeout    = 10 * time.Second
	PageTransitionTimeout = 10 * time.Second
)

// Env carries the collaborators shared by every page object
type Env struct {
	Driver driver.Session
	// Reporter receives the narration of user facing actions
	Reporter report.Reporter
	// Log receives debug output; nil discards it
	Log logrus.FieldLogger
	// BaseURL is the landing page address
	BaseURL string
}

func (e Env) report(format string, args ...interface{}) {
	if e.Reporter == nil {
		return
	}
	e.Reporter.AddInfo(fmt.Sprintf(format, args...))
}

func (e Env) logger(component string) logrus.FieldLogger {
	log := e.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return log.WithField("component", component)
}

// check is one entry of a readiness checklist
type check struct {
	name string
	by   driver.By
}

// verify probes checks in order within ctx. The first missing element fails
// with NotLoaded naming object and the element.
func verify(ctx driver.SearchContext, log logrus.FieldLogger, object string, checks []check) error {
	for _, c := range checks {
		if _, err := ctx.FindElement(c.by); err != nil {
			return notLoaded(object, c.name, err)
		}
		log.Debugf("%s is displayed", c.name)
	}
	return nil
}

func notLoaded(object, element string, cause error) error {
	if cause == nil {
		return NotLoaded.New("the %s was not loaded correctly: expected %s", object, element)
	}
	return NotLoaded.Wrap(fmt.Errorf("the %s was not loaded correctly: expected %s: %w", object, element, cause))
}

// displayed reports whether the first element matching by is visible. A
// missing element is not displayed.
func displayed(ctx driver.SearchContext, by driver.By) (bool, error) {
	el, err := ctx.FindElement(by)
	if driver.NotFound.Has(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return el.IsDisplayed()
}

// clickAndWaitNavigation clicks el and waits until el has left the screen,
// which happens once the next document replaced the current one
func clickAndWaitNavigation(s driver.Session, el driver.Element, timeout time.Duration) error {
	if err := el.Click(); err != nil {
		return err
	}
	return driver.WaitElementInvisible(s, el, timeout)
}
