package driver

import (
	"time"

	"github.com/zeebo/errs"
)

// Stale is returned when an element handle no longer belongs to the document
var Stale = errs.Class("stale element")

// PollInterval is how often conditions are re-evaluated while waiting
const PollInterval = 500 * time.Millisecond

// Condition reports whether the awaited UI state holds. A returned error
// aborts the wait.
type Condition func(s Session) (bool, error)

// Clock abstracts time for the polling loop
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock is the wall clock
var RealClock Clock = realClock{}

// Poll evaluates cond every interval until it holds or timeout elapses.
// The condition is always evaluated at least once.
func Poll(clock Clock, s Session, cond Condition, timeout, interval time.Duration) error {
	deadline := clock.Now().Add(timeout)
	for {
		ok, err := cond(s)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !clock.Now().Before(deadline) {
			return Timeout.New("condition not met within %s", timeout)
		}
		clock.Sleep(interval)
	}
}

// VisibilityOf holds when the first element matching by is displayed. The
// element is stored in found.
func VisibilityOf(by By, found *Element) Condition {
	return func(s Session) (bool, error) {
		el, err := s.FindElement(by)
		if err != nil {
			return false, nil
		}
		if ok, err := el.IsDisplayed(); err != nil || !ok {
			return false, nil
		}
		*found = el
		return true, nil
	}
}

// PresenceOf holds when an element matching by is in the document
func PresenceOf(by By, found *Element) Condition {
	return func(s Session) (bool, error) {
		el, err := s.FindElement(by)
		if err != nil {
			return false, nil
		}
		*found = el
		return true, nil
	}
}

// Clickable holds when the first element matching by is displayed and enabled
func Clickable(by By, found *Element) Condition {
	return func(s Session) (bool, error) {
		el, err := s.FindElement(by)
		if err != nil {
			return false, nil
		}
		if ok, err := el.IsDisplayed(); err != nil || !ok {
			return false, nil
		}
		if ok, err := el.IsEnabled(); err != nil || !ok {
			return false, nil
		}
		*found = el
		return true, nil
	}
}

// InvisibilityOf holds when nothing matches by or the first match is hidden
func InvisibilityOf(by By) Condition {
	return func(s Session) (bool, error) {
		el, err := s.FindElement(by)
		if err != nil {
			return true, nil
		}
		return elementHidden(el), nil
	}
}

// InvisibilityOfElement holds when el is hidden or no longer attached
func InvisibilityOfElement(el Element) Condition {
	return func(Session) (bool, error) {
		return elementHidden(el), nil
	}
}

func elementHidden(el Element) bool {
	ok, err := el.IsDisplayed()
	if err != nil {
		return true
	}
	return !ok
}

// WaitVisible waits until the element located by by is displayed
func WaitVisible(s Session, by By, timeout time.Duration) (Element, error) {
	var el Element
	if err := s.WaitUntil(VisibilityOf(by, &el), timeout); err != nil {
		return nil, waitError(err, by.String()+" to be visible", timeout)
	}
	return el, nil
}

// WaitPresent waits until an element located by by exists
func WaitPresent(s Session, by By, timeout time.Duration) (Element, error) {
	var el Element
	if err := s.WaitUntil(PresenceOf(by, &el), timeout); err != nil {
		return nil, waitError(err, by.String()+" to be present", timeout)
	}
	return el, nil
}

// WaitClickable waits until the element located by by is displayed and enabled
func WaitClickable(s Session, by By, timeout time.Duration) (Element, error) {
	var el Element
	if err := s.WaitUntil(Clickable(by, &el), timeout); err != nil {
		return nil, waitError(err, by.String()+" to be clickable", timeout)
	}
	return el, nil
}

// WaitInvisible waits until the element located by by is gone or hidden
func WaitInvisible(s Session, by By, timeout time.Duration) error {
	if err := s.WaitUntil(InvisibilityOf(by), timeout); err != nil {
		return waitError(err, by.String()+" to be invisible", timeout)
	}
	return nil
}

// WaitElementInvisible waits until el is hidden or detached
func WaitElementInvisible(s Session, el Element, timeout time.Duration) error {
	if err := s.WaitUntil(InvisibilityOfElement(el), timeout); err != nil {
		return waitError(err, "element to be invisible", timeout)
	}
	return nil
}

func waitError(err error, what string, timeout time.Duration) error {
	if !Timeout.Has(err) {
		return err
	}
	return Timeout.New("waited %s for %s", timeout, what)
}
