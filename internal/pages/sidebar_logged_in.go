package pages

import (
	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/driver"
)

var (
	logoutButtonBy = driver.CSS("button[data-test='LOGOUT_BTN']")
	usernameBy     = driver.TagName("h1")
	totalYumsBy    = driver.CSS("li[data-test='USER_PROFILE_TOTAL_YUMS'] > span")
)

// SidebarLoggedIn is the user space of a logged in customer
type SidebarLoggedIn struct {
	env  Env
	root driver.Element
	log  logrus.FieldLogger
}

func (*SidebarLoggedIn) sidebar() {}

// NewSidebarLoggedIn binds the customer panel to its container
func NewSidebarLoggedIn(env Env, root driver.Element) *SidebarLoggedIn {
	return &SidebarLoggedIn{env: env, root: root, log: env.logger("sidebar-logged-in")}
}

// VerifyReady checks the menu, the customer name and the yums are present
func (s *SidebarLoggedIn) VerifyReady() error {
	return verify(s.root, s.log, "sidebar logged in component", []check{
		{"close sidebar button", closeSidebarButtonBy},
		{"personal information button", driver.CSS("button[aria-controls='user-space-user-information']")},
		{"reservations button", driver.CSS("button[aria-controls='user-space-user-bookings']")},
		{"favorites button", driver.CSS("button[aria-controls='user-space-user-favorites']")},
		{"reviews button", driver.CSS("button[aria-controls='user-space-user-reviews']")},
		{"loyalty space button", driver.CSS("button[aria-controls='user-space-fidelity-space']")},
		{"logout button", logoutButtonBy},
		{"username", usernameBy},
		{"total yums", totalYumsBy},
	})
}

// Username returns the displayed customer name
func (s *SidebarLoggedIn) Username() (string, error) {
	el, err := s.root.FindElement(usernameBy)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Yums returns the displayed loyalty points
func (s *SidebarLoggedIn) Yums() (string, error) {
	el, err := s.root.FindElement(totalYumsBy)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// LogOut logs the customer out, drops every cookie and returns the home page
// the site shows afterwards
func (s *SidebarLoggedIn) LogOut() (*HomePage, error) {
	s.env.report("Log out")
	btn, err := s.root.FindElement(logoutButtonBy)
	if err != nil {
		return nil, err
	}
	if err := btn.Click(); err != nil {
		return nil, err
	}
	if err := driver.WaitElementInvisible(s.env.Driver, s.root, CloseSidebarTimeout); err != nil {
		return nil, err
	}
	s.log.Debug("Deleting all cookies")
	if err := s.env.Driver.DeleteAllCookies(); err != nil {
		return nil, err
	}
	return currentHomePage(s.env)
}

// Close hides the panel
func (s *SidebarLoggedIn) Close() error {
	s.env.report("Close sidebar")
	return closeSidebar(s.env, s.root)
}
