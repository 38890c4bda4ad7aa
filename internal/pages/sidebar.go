package pages

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/forkqa/webnextgen/internal/driver"
)

// Sidebar is the user space panel. Its concrete type tells whether the
// customer is logged in: *SidebarLoggedIn or *SidebarNotLoggedIn.
type Sidebar interface {
	// Close hides the panel
	Close() error
	sidebar()
}

var (
	closeSidebarButtonBy     = driver.CSS("button[aria-controls='USER_SPACE_FIRST_PANEL']")
	emailInputBy             = driver.ID("identification_email")
	passwordInputBy          = driver.Name("password")
	continueButtonBy         = driver.CSS("button[data-testid='checkout-submit-email']")
	firstNameInputBy         = driver.Name("firstName")
	lastNameInputBy          = driver.Name("lastName")
	countryCodeDropdownBy    = driver.ID("PHONE_CODE_FIELD")
	phoneInputBy             = driver.Name("phoneNumber.nationalNumber")
	loginButtonBy            = driver.CSS("button[data-testid='submit-password']")
	registerButtonBy         = driver.CSS("section button[type='submit']")
	requestCreatePasswordBy  = driver.CSS("[data-test='user-space-request-create-password-step']")
	createPasswordPageBy     = driver.CSS("[data-testid='create-password-page']")
	accountCreationSectionBy = driver.CSS("section div.pageContent")
	invalidPasswordLabelBy   = driver.CSS(".inputLabel + span")
	forgotPasswordBy         = driver.CSS("button[data-testid='reset-password-link']")
	resetPasswordMessageBy   = driver.CSS("div[data-testid='reset-password-page']")
)

// SidebarNotLoggedIn is the user space of a visitor: email step, password
// screen, account creation and password requests
type SidebarNotLoggedIn struct {
	env  Env
	root driver.Element
	log  logrus.FieldLogger
}

func (*SidebarNotLoggedIn) sidebar() {}

// NewSidebarNotLoggedIn binds the visitor panel to its container
func NewSidebarNotLoggedIn(env Env, root driver.Element) *SidebarNotLoggedIn {
	return &SidebarNotLoggedIn{env: env, root: root, log: env.logger("sidebar-not-logged-in")}
}

// VerifyReady checks the email step and the close button are present
func (s *SidebarNotLoggedIn) VerifyReady() error {
	return verify(s.root, s.log, "sidebar not logged in component", []check{
		{"email input", emailInputBy},
		{"continue button", continueButtonBy},
		{"close sidebar button", closeSidebarButtonBy},
	})
}

func (s *SidebarNotLoggedIn) typeInto(by driver.By, text string, clear bool) error {
	el, err := s.root.FindElement(by)
	if err != nil {
		return err
	}
	if clear {
		if err := el.Clear(); err != nil {
			return err
		}
	}
	return el.SendKeys(text)
}

// EnterEmail types into the email field
func (s *SidebarNotLoggedIn) EnterEmail(email string) error {
	s.env.report("Enter email: %s", email)
	return s.typeInto(emailInputBy, email, false)
}

// EnterPassword types into the password field
func (s *SidebarNotLoggedIn) EnterPassword(password string) error {
	s.env.report("Enter password")
	return s.typeInto(passwordInputBy, password, false)
}

// clickWhenClickable waits for the button located by by and clicks it
func (s *SidebarNotLoggedIn) clickWhenClickable(by driver.By) error {
	btn, err := driver.WaitClickable(s.env.Driver, by, SidebarButtonTimeout)
	if err != nil {
		return err
	}
	return btn.Click()
}

// ContinueToPasswordScreen submits the email of an existing customer and
// waits for the password field. It fails with NotLoaded when the account
// creation form shows instead.
func (s *SidebarNotLoggedIn) ContinueToPasswordScreen() error {
	s.env.report("Continue to password screen")
	if err := s.clickWhenClickable(continueButtonBy); err != nil {
		return err
	}
	if _, err := driver.WaitVisible(s.env.Driver, passwordInputBy, SidebarScreenTimeout); err != nil {
		return err
	}
	creation, err := s.IsAccountCreationSectionDisplayed()
	if err != nil {
		return err
	}
	if creation {
		return notLoaded("password screen", "the password field without the account creation form", nil)
	}
	return nil
}

// ContinueToCreatePasswordRequestScreen submits the email of a guest
// customer and waits for the create password request
func (s *SidebarNotLoggedIn) ContinueToCreatePasswordRequestScreen() error {
	s.env.report("Continue to request password screen")
	if err := s.clickWhenClickable(continueButtonBy); err != nil {
		return err
	}
	_, err := driver.WaitVisible(s.env.Driver, requestCreatePasswordBy, SidebarScreenTimeout)
	return err
}

// submitAndSwitch clicks the button located by by and waits for the logged in
// panel to replace this one
func (s *SidebarNotLoggedIn) submitAndSwitch(by driver.By) (*SidebarLoggedIn, error) {
	if err := s.clickWhenClickable(by); err != nil {
		return nil, err
	}
	if err := driver.WaitElementInvisible(s.env.Driver, s.root, SidebarScreenTimeout); err != nil {
		return nil, err
	}
	panel, err := driver.WaitVisible(s.env.Driver, sidebarBy, SidebarScreenTimeout)
	if err != nil {
		return nil, err
	}
	next := NewSidebarLoggedIn(s.env, panel)
	if err := next.VerifyReady(); err != nil {
		return nil, err
	}
	return next, nil
}

// ClickLoginButtonSuccessful logs in and returns the customer panel
func (s *SidebarNotLoggedIn) ClickLoginButtonSuccessful() (*SidebarLoggedIn, error) {
	s.env.report("Click on log in button and log in successfully")
	return s.submitAndSwitch(loginButtonBy)
}

// ClickLoginButtonUnsuccessful clicks log in expecting to stay logged out
func (s *SidebarNotLoggedIn) ClickLoginButtonUnsuccessful() error {
	s.env.report("Click on log in button and stay logged out")
	return s.clickWhenClickable(loginButtonBy)
}

// Login goes through the email and password screens
func (s *SidebarNotLoggedIn) Login(email, password string) (*SidebarLoggedIn, error) {
	s.log.WithField("email", email).Debug("Logging in")
	if err := s.EnterEmail(email); err != nil {
		return nil, err
	}
	if err := s.ContinueToPasswordScreen(); err != nil {
		return nil, err
	}
	if err := s.EnterPassword(password); err != nil {
		return nil, err
	}
	return s.ClickLoginButtonSuccessful()
}

// IsCreatePasswordMessageDisplayed reports whether the guest create password
// message shows
func (s *SidebarNotLoggedIn) IsCreatePasswordMessageDisplayed() (bool, error) {
	return displayed(s.root, createPasswordPageBy)
}

// IsAccountCreationSectionDisplayed reports whether the registration form shows
func (s *SidebarNotLoggedIn) IsAccountCreationSectionDisplayed() (bool, error) {
	return displayed(s.root, accountCreationSectionBy)
}

// IsInvalidPasswordDisplayed waits for the invalid password message. It
// reports false when the message does not show in time.
func (s *SidebarNotLoggedIn) IsInvalidPasswordDisplayed() (bool, error) {
	return s.waitDisplayed(invalidPasswordLabelBy)
}

// ClickForgotPassword asks for a password reset email
func (s *SidebarNotLoggedIn) ClickForgotPassword() error {
	s.env.report("Click forgot password")
	btn, err := s.root.FindElement(forgotPasswordBy)
	if err != nil {
		return err
	}
	return btn.Click()
}

// IsResetPasswordMsgDisplayed waits for the reset password confirmation. It
// reports false when the message does not show in time.
func (s *SidebarNotLoggedIn) IsResetPasswordMsgDisplayed() (bool, error) {
	return s.waitDisplayed(resetPasswordMessageBy)
}

func (s *SidebarNotLoggedIn) waitDisplayed(by driver.By) (bool, error) {
	_, err := driver.WaitVisible(s.env.Driver, by, SidebarButtonTimeout)
	if driver.Timeout.Has(err) {
		s.log.WithError(err).Debug("Message not displayed")
		return false, nil
	}
	return err == nil, err
}

// EnterFirstName replaces the first name of the registration form
func (s *SidebarNotLoggedIn) EnterFirstName(firstName string) error {
	s.env.report("Enter first name: %s", firstName)
	return s.typeInto(firstNameInputBy, firstName, true)
}

// EnterLastName replaces the last name of the registration form
func (s *SidebarNotLoggedIn) EnterLastName(lastName string) error {
	s.env.report("Enter last name: %s", lastName)
	return s.typeInto(lastNameInputBy, lastName, true)
}

// SelectCountryCode picks the phone prefix of a country given by its ISO
// 3166-1 alpha-2 code
func (s *SidebarNotLoggedIn) SelectCountryCode(alpha2 string) error {
	s.env.report("Select country code: %s", alpha2)
	region, err := language.ParseRegion(alpha2)
	if err != nil || len(alpha2) != 2 || !region.IsCountry() {
		return IllegalArgument.New("%q is not an ISO 3166-1 alpha-2 country code", alpha2)
	}
	dropdown, err := s.root.FindElement(countryCodeDropdownBy)
	if err != nil {
		return err
	}
	return dropdown.SelectOption(region.String())
}

// EnterPhoneNumber replaces the phone number of the registration form
func (s *SidebarNotLoggedIn) EnterPhoneNumber(phone string) error {
	s.env.report("Enter phone number: %s", phone)
	return s.typeInto(phoneInputBy, phone, true)
}

// RegisterAccount submits the registration form and returns the panel of the
// new customer
func (s *SidebarNotLoggedIn) RegisterAccount() (*SidebarLoggedIn, error) {
	s.env.report("Click on button register the account")
	return s.submitAndSwitch(registerButtonBy)
}

// Close hides the panel
func (s *SidebarNotLoggedIn) Close() error {
	s.env.report("Close sidebar")
	return closeSidebar(s.env, s.root)
}

func closeSidebar(env Env, root driver.Element) error {
	btn, err := root.FindElement(closeSidebarButtonBy)
	if err != nil {
		return err
	}
	if err := btn.Click(); err != nil {
		return err
	}
	return driver.WaitElementInvisible(env.Driver, root, CloseSidebarTimeout)
}
