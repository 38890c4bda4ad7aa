package pages_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkqa/webnextgen/internal/driver"
	"github.com/forkqa/webnextgen/internal/handlers"
	"github.com/forkqa/webnextgen/internal/pages"
	"github.com/forkqa/webnextgen/internal/pages/pagestest"
)

func openSidebar(t *testing.T, site *pagestest.Site) *pages.SidebarNotLoggedIn {
	t.Helper()
	sidebar, err := openHome(t, site).Header().OpenSidebarNotLoggedIn()
	require.NoError(t, err)
	return sidebar
}

func TestSidebarNotLoggedInChecklist(t *testing.T) {
	tests := []removal{
		{"email input", remove("#USER_SPACE_FIRST_PANEL #identification_email"), "email input"},
		{"continue button", remove("#USER_SPACE_FIRST_PANEL [data-testid='checkout-submit-email']"), "continue button"},
		{"close button", remove("#USER_SPACE_FIRST_PANEL button.close"), "close sidebar button"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := pagestest.New(t)
			site.AfterLoad = tt.edit
			home := openHome(t, site)

			_, err := home.Header().OpenSidebarNotLoggedIn()

			assertNotLoaded(t, err, tt.expected)
		})
	}
}

func TestSidebarLoggedInChecklist(t *testing.T) {
	panel := "#USER_SPACE_FIRST_PANEL "
	tests := []removal{
		{"close button", remove(panel + "button.close"), "close sidebar button"},
		{"personal information", remove(panel + "[aria-controls='user-space-user-information']"), "personal information button"},
		{"reservations", remove(panel + "[aria-controls='user-space-user-bookings']"), "reservations button"},
		{"favorites", remove(panel + "[aria-controls='user-space-user-favorites']"), "favorites button"},
		{"reviews", remove(panel + "[aria-controls='user-space-user-reviews']"), "reviews button"},
		{"loyalty", remove(panel + "[aria-controls='user-space-fidelity-space']"), "loyalty space button"},
		{"logout", remove(panel + "[data-test='LOGOUT_BTN']"), "logout button"},
		{"username", remove(panel + "h1"), "username"},
		{"total yums", remove(panel + "[data-test='USER_PROFILE_TOTAL_YUMS']"), "total yums"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := pagestest.New(t)
			site.LogIn(customerEmail, customerPassword)
			site.AfterLoad = tt.edit
			home := openHome(t, site)

			_, err := home.Header().OpenSidebarLoggedIn()

			assertNotLoaded(t, err, tt.expected)
		})
	}
}

func TestSidebarLogin(t *testing.T) {
	site := pagestest.New(t)
	sidebar := openSidebar(t, site)

	customer, err := sidebar.Login(customerEmail, customerPassword)
	require.NoError(t, err)

	name, err := customer.Username()
	require.NoError(t, err)
	assert.Equal(t, "Friday T.", name)
	yums, err := customer.Yums()
	require.NoError(t, err)
	assert.Equal(t, "1500", yums)
	assert.NotEmpty(t, site.Session.Cookies[handlers.SessionCookie])
	assert.Equal(t, []string{"POST /api/account", "POST /api/login"}, site.Calls)
}

func TestSidebarLoginUnsuccessful(t *testing.T) {
	site := pagestest.New(t)
	sidebar := openSidebar(t, site)

	require.NoError(t, sidebar.EnterEmail(customerEmail))
	require.NoError(t, sidebar.ContinueToPasswordScreen())
	require.NoError(t, sidebar.EnterPassword("wrong"))
	require.NoError(t, sidebar.ClickLoginButtonUnsuccessful())

	invalid, err := sidebar.IsInvalidPasswordDisplayed()
	require.NoError(t, err)
	assert.True(t, invalid)
	assert.Empty(t, site.Session.Cookies)
}

func TestSidebarForgotPassword(t *testing.T) {
	site := pagestest.New(t)
	sidebar := openSidebar(t, site)
	require.NoError(t, sidebar.EnterEmail(customerEmail))
	require.NoError(t, sidebar.ContinueToPasswordScreen())

	shown, err := sidebar.IsResetPasswordMsgDisplayed()
	require.NoError(t, err)
	assert.False(t, shown)

	require.NoError(t, sidebar.ClickForgotPassword())
	shown, err = sidebar.IsResetPasswordMsgDisplayed()
	require.NoError(t, err)
	assert.True(t, shown)
}

func TestSidebarGuestCreatePassword(t *testing.T) {
	site := pagestest.New(t)
	sidebar := openSidebar(t, site)

	require.NoError(t, sidebar.EnterEmail(guestEmail))
	require.NoError(t, sidebar.ContinueToCreatePasswordRequestScreen())

	shown, err := sidebar.IsCreatePasswordMessageDisplayed()
	require.NoError(t, err)
	assert.True(t, shown)
	creation, err := sidebar.IsAccountCreationSectionDisplayed()
	require.NoError(t, err)
	assert.False(t, creation)
}

func TestSidebarRegisterAccount(t *testing.T) {
	site := pagestest.New(t)
	sidebar := openSidebar(t, site)

	require.NoError(t, sidebar.EnterEmail("ada@example.com"))
	err := sidebar.ContinueToPasswordScreen()
	assertNotLoaded(t, err, "the password field without the account creation form")
	creation, err := sidebar.IsAccountCreationSectionDisplayed()
	require.NoError(t, err)
	require.True(t, creation)

	require.NoError(t, sidebar.EnterPassword("Secret@1"))
	require.NoError(t, sidebar.EnterFirstName("Ada"))
	require.NoError(t, sidebar.EnterLastName("Lovelace"))
	require.NoError(t, sidebar.SelectCountryCode("GB"))
	require.NoError(t, sidebar.EnterPhoneNumber("7700900123"))
	customer, err := sidebar.RegisterAccount()
	require.NoError(t, err)

	name, err := customer.Username()
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", name)
	_, _, err = site.Accounts.Authenticate("ada@example.com", "Secret@1")
	assert.NoError(t, err)
}

func TestSelectCountryCode(t *testing.T) {
	site := pagestest.New(t)
	sidebar := openSidebar(t, site)
	require.NoError(t, sidebar.EnterEmail("ada@example.com"))
	_ = sidebar.ContinueToPasswordScreen()

	require.NoError(t, sidebar.SelectCountryCode("fr"))
	assert.Equal(t, "FR", site.Find("#PHONE_CODE_FIELD option[selected]").AttrOr("value", ""))

	for _, code := range []string{"France", "F1", ""} {
		err := sidebar.SelectCountryCode(code)
		assert.True(t, pages.IllegalArgument.Has(err), "code %q", code)
	}

	err := sidebar.SelectCountryCode("JP")
	assert.True(t, driver.NotFound.Has(err))
}

func TestOpenSidebarVariant(t *testing.T) {
	site := pagestest.New(t)
	sidebar, err := openHome(t, site).Header().OpenSidebar()
	require.NoError(t, err)
	assert.IsType(t, &pages.SidebarNotLoggedIn{}, sidebar)
	require.NoError(t, sidebar.Close())

	site.LogIn(customerEmail, customerPassword)
	sidebar, err = openHome(t, site).Header().OpenSidebar()
	require.NoError(t, err)
	assert.IsType(t, &pages.SidebarLoggedIn{}, sidebar)
}

func TestSidebarClose(t *testing.T) {
	site := pagestest.New(t)
	sidebar := openSidebar(t, site)

	require.NoError(t, sidebar.Close())

	_, hidden := site.Find("#USER_SPACE_FIRST_PANEL").Attr("hidden")
	assert.True(t, hidden)
}

func TestLogOut(t *testing.T) {
	site := pagestest.New(t)
	site.LogIn(customerEmail, customerPassword)
	customer, err := openHome(t, site).Header().OpenSidebarLoggedIn()
	require.NoError(t, err)

	home, err := customer.LogOut()
	require.NoError(t, err)

	assert.NotNil(t, home)
	assert.Empty(t, site.Session.Cookies)
	assert.Len(t, site.Session.History, 1)
	assert.Equal(t, "Log in", site.Find("button[data-test='user-space']").Text())

	sidebar, err := home.Header().OpenSidebar()
	require.NoError(t, err)
	assert.IsType(t, &pages.SidebarNotLoggedIn{}, sidebar)
}
