package pages

import (
	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/driver"
)

var (
	logoBy            = driver.CSS("[data-test='brand-logo']")
	userSpaceButtonBy = driver.CSS("button[data-test='user-space']")
	sidebarBy         = driver.ID("USER_SPACE_FIRST_PANEL")
)

// HeaderNoSearch is the site header of pages without a search bar
type HeaderNoSearch struct {
	env  Env
	root driver.Element
	log  logrus.FieldLogger
}

// NewHeaderNoSearch binds a header to its container
func NewHeaderNoSearch(env Env, root driver.Element) *HeaderNoSearch {
	return &HeaderNoSearch{env: env, root: root, log: env.logger("header")}
}

// VerifyReady checks the logo and the user space button are present
func (h *HeaderNoSearch) VerifyReady() error {
	return verify(h.root, h.log, "header no search component", []check{
		{"logo", logoBy},
		{"login button", userSpaceButtonBy},
	})
}

// openSidebar clicks the user space button and returns the panel once visible
func (h *HeaderNoSearch) openSidebar() (driver.Element, error) {
	btn, err := h.root.FindElement(userSpaceButtonBy)
	if err != nil {
		return nil, err
	}
	if err := btn.Click(); err != nil {
		return nil, err
	}
	h.log.Debug("Waiting for the sidebar")
	return driver.WaitVisible(h.env.Driver, sidebarBy, OpenSidebarTimeout)
}

// OpenSidebarNotLoggedIn opens the user space of a visitor
func (h *HeaderNoSearch) OpenSidebarNotLoggedIn() (*SidebarNotLoggedIn, error) {
	h.env.report("Open sidebar when not logged in")
	panel, err := h.openSidebar()
	if err != nil {
		return nil, err
	}
	sb := NewSidebarNotLoggedIn(h.env, panel)
	if err := sb.VerifyReady(); err != nil {
		return nil, err
	}
	return sb, nil
}

// OpenSidebarLoggedIn opens the user space of a logged in customer
func (h *HeaderNoSearch) OpenSidebarLoggedIn() (*SidebarLoggedIn, error) {
	h.env.report("Open sidebar when logged in")
	panel, err := h.openSidebar()
	if err != nil {
		return nil, err
	}
	sb := NewSidebarLoggedIn(h.env, panel)
	if err := sb.VerifyReady(); err != nil {
		return nil, err
	}
	return sb, nil
}

// OpenSidebar opens the user space and returns whichever variant is shown:
// *SidebarLoggedIn when a log out button is present, *SidebarNotLoggedIn
// otherwise
func (h *HeaderNoSearch) OpenSidebar() (Sidebar, error) {
	h.env.report("Open sidebar")
	panel, err := h.openSidebar()
	if err != nil {
		return nil, err
	}

	_, err = panel.FindElement(logoutButtonBy)
	switch {
	case err == nil:
		sb := NewSidebarLoggedIn(h.env, panel)
		if err := sb.VerifyReady(); err != nil {
			return nil, err
		}
		return sb, nil
	case driver.NotFound.Has(err):
		sb := NewSidebarNotLoggedIn(h.env, panel)
		if err := sb.VerifyReady(); err != nil {
			return nil, err
		}
		return sb, nil
	default:
		return nil, err
	}
}
