package pages_test

import (
	"net/url"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkqa/webnextgen/internal/pages"
	"github.com/forkqa/webnextgen/internal/pages/pagestest"
	"github.com/forkqa/webnextgen/internal/report"
)

const (
	customerEmail    = "friday_testmail@fork.com"
	customerPassword = "Test@12345"
	guestEmail       = "guest_booking@fork.com"
)

// removal drops one element from every served document
type removal struct {
	name     string
	edit     func(site *pagestest.Site)
	expected string
}

func remove(css string) func(site *pagestest.Site) {
	return func(site *pagestest.Site) { site.Find(css).Remove() }
}

// retag renames the matched elements so tag selectors stop matching them
func retag(css, tag string) func(site *pagestest.Site) {
	return func(site *pagestest.Site) {
		site.Find(css).Each(func(_ int, sel *goquery.Selection) {
			sel.Nodes[0].Data = tag
			sel.Nodes[0].DataAtom = 0
		})
	}
}

func openHome(t *testing.T, site *pagestest.Site) *pages.HomePage {
	t.Helper()
	home, err := pages.OpenHomePage(site.Env(report.Discard))
	require.NoError(t, err)
	return home
}

func openSearch(t *testing.T, site *pagestest.Site, query url.Values) *pages.SearchPage {
	t.Helper()
	page, err := pages.OpenSearchPage(site.Env(report.Discard), query)
	require.NoError(t, err)
	return page
}

func assertNotLoaded(t *testing.T, err error, expected string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, pages.NotLoaded.Has(err), "expected a not loaded error, got %v", err)
	assert.Contains(t, err.Error(), "expected "+expected)
}
