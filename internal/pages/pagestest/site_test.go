package pagestest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigateFollowsRedirects(t *testing.T) {
	tests := []struct {
		name   string
		target string
		marker string
	}{
		{"bare host", BaseURL, "[data-test='homepage-tagline']"},
		{"search without trailing slash", BaseURL + "/search?where=Paris", "[data-test='result-list-restaurants']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := New(t)

			require.NoError(t, site.Session.Navigate(tt.target))

			assert.Equal(t, 1, site.Find(tt.marker).Length())
		})
	}
}

func TestNavigateUnknownPage(t *testing.T) {
	site := New(t)

	err := site.Session.Navigate(BaseURL + "/nowhere")

	assert.ErrorContains(t, err, "status 404")
}
