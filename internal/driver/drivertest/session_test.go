package drivertest

import (
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkqa/webnextgen/internal/driver"
)

const page = `<html><body>
<header><a data-test="brand-logo">TheFork</a></header>
<div id="panel" hidden><h1>Hello   <b>Bob</b></h1></div>
<form>
  <input id="whatinput" name="what" value="">
  <input type="hidden" name="token" value="x">
  <button type="submit" disabled>Search</button>
</form>
<ul><li><a>19:30 <span>-20% on food</span></a></li><li><a>20:00</a></li></ul>
<template><div id="panel">template copy</div></template>
</body></html>`

func TestFindElement(t *testing.T) {
	s := New(page)

	el, err := s.FindElement(driver.CSS("[data-test='brand-logo']"))
	require.NoError(t, err)
	text, err := el.Text()
	require.NoError(t, err)
	assert.Equal(t, "TheFork", text)

	_, err = s.FindElement(driver.CSS(".missing"))
	assert.True(t, driver.NotFound.Has(err))

	items, err := s.FindElements(driver.CSS("li > a"))
	require.NoError(t, err)
	assert.Len(t, items, 2)

	none, err := s.FindElements(driver.CSS(".missing"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTemplateContentIsIgnored(t *testing.T) {
	s := New(page)

	els, err := s.FindElements(driver.ID("panel"))
	require.NoError(t, err)
	assert.Len(t, els, 1)
}

func TestVisibility(t *testing.T) {
	s := New(page)

	tests := []struct {
		name    string
		by      driver.By
		visible bool
	}{
		{"plain element", driver.CSS("header"), true},
		{"hidden attribute", driver.ID("panel"), false},
		{"inside hidden ancestor", driver.CSS("#panel h1"), false},
		{"hidden input", driver.Name("token"), false},
		{"text input", driver.ID("whatinput"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := s.FindElement(tt.by)
			require.NoError(t, err)
			got, err := el.IsDisplayed()
			require.NoError(t, err)
			assert.Equal(t, tt.visible, got)
		})
	}
}

func TestTextCollapsesWhitespace(t *testing.T) {
	s := New(page)
	s.Find("#panel").RemoveAttr("hidden")

	el, err := s.FindElement(driver.CSS("#panel h1"))
	require.NoError(t, err)
	text, err := el.Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello Bob", text)

	slot, err := s.FindElement(driver.CSS("li > a"))
	require.NoError(t, err)
	text, err = slot.Text()
	require.NoError(t, err)
	assert.Equal(t, "19:30 -20% on food", text)
}

func TestHiddenElementHasNoText(t *testing.T) {
	s := New(page)

	el, err := s.FindElement(driver.CSS("#panel h1"))
	require.NoError(t, err)
	text, err := el.Text()
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestSendKeysAndClear(t *testing.T) {
	s := New(page)
	var typed []string
	s.OnType("#whatinput", func(s *Session, el *goquery.Selection) error {
		v, _ := el.Attr("value")
		typed = append(typed, v)
		return nil
	})

	el, err := s.FindElement(driver.ID("whatinput"))
	require.NoError(t, err)
	require.NoError(t, el.SendKeys("pi"))
	require.NoError(t, el.SendKeys("zza"))
	assert.Equal(t, "pizza", s.Value("#whatinput"))

	require.NoError(t, el.Clear())
	assert.Equal(t, "", s.Value("#whatinput"))
	assert.Equal(t, []string{"pi", "pizza", ""}, typed)
}

func TestClickHooks(t *testing.T) {
	s := New(page)
	clicked := 0
	s.OnClick("header a", func(*Session, *goquery.Selection) error {
		clicked++
		return nil
	})
	s.OnClick("button[type='submit']", func(*Session, *goquery.Selection) error {
		t.Fatal("disabled button must not fire")
		return nil
	})

	logo, err := s.FindElement(driver.CSS("[data-test='brand-logo']"))
	require.NoError(t, err)
	require.NoError(t, logo.Click())

	submit, err := s.FindElement(driver.CSS("button[type='submit']"))
	require.NoError(t, err)
	enabled, err := submit.IsEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)
	require.NoError(t, submit.Click())

	assert.Equal(t, 1, clicked)
	assert.Equal(t, []string{"header a"}, s.Clicks)
}

func TestClickHiddenElementFails(t *testing.T) {
	s := New(page)

	el, err := s.FindElement(driver.CSS("#panel h1"))
	require.NoError(t, err)
	err = el.Click()
	assert.True(t, NotInteractable.Has(err))
}

func TestReloadMakesHandlesStale(t *testing.T) {
	s := New(page)
	el, err := s.FindElement(driver.CSS("header"))
	require.NoError(t, err)

	s.Load(page)

	_, err = el.IsDisplayed()
	assert.True(t, driver.Stale.Has(err))
	_, err = el.Text()
	assert.True(t, driver.Stale.Has(err))

	ok, err := driver.InvisibilityOfElement(el)(s)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemovedNodeIsStale(t *testing.T) {
	s := New(page)
	el, err := s.FindElement(driver.CSS("ul"))
	require.NoError(t, err)

	s.Find("ul").Remove()

	_, err = el.FindElements(driver.CSS("li"))
	assert.True(t, driver.Stale.Has(err))
}

func TestNavigate(t *testing.T) {
	s := New("")
	_, err := s.FindElement(driver.CSS("header"))
	require.Error(t, err)

	err = s.Navigate("https://example.test/")
	require.Error(t, err)

	s.OnNavigate(func(s *Session, url string) error {
		s.Load(page)
		return nil
	})
	require.NoError(t, s.Navigate("https://example.test/"))
	require.NoError(t, s.Refresh())

	assert.Equal(t, "https://example.test/", s.URL)
	assert.Equal(t, []string{"https://example.test/", "https://example.test/"}, s.History)
	assert.Equal(t, 1, s.Refreshes)

	_, err = s.FindElement(driver.CSS("header"))
	assert.NoError(t, err)
}

func TestDeleteAllCookies(t *testing.T) {
	s := New(page)
	s.Cookies["session"] = "abc"

	require.NoError(t, s.DeleteAllCookies())
	assert.Empty(t, s.Cookies)

	require.NoError(t, s.Close())
	assert.True(t, s.Closed)
}

func TestTimersRunOnVirtualClock(t *testing.T) {
	s := New(page)
	start := s.Now()
	s.After(2*time.Second, func(s *Session) {
		s.Find("#panel").RemoveAttr("hidden")
	})

	el, err := driver.WaitVisible(s, driver.ID("panel"), 10*time.Second)
	require.NoError(t, err)
	assert.NotNil(t, el)
	assert.Equal(t, 2*time.Second, s.Now().Sub(start))
}

func TestSelectOption(t *testing.T) {
	s := New(`<select id="code"><option value="FR" selected>France</option><option value="GB">United Kingdom</option></select>`)
	var picked string
	s.OnClick("option", func(_ *Session, el *goquery.Selection) error {
		picked, _ = el.Attr("value")
		return nil
	})

	sel, err := s.FindElement(driver.ID("code"))
	require.NoError(t, err)
	require.NoError(t, sel.SelectOption("GB"))

	assert.Equal(t, "GB", picked)
	_, frSelected := s.Find("option[value='FR']").Attr("selected")
	_, gbSelected := s.Find("option[value='GB']").Attr("selected")
	assert.False(t, frSelected)
	assert.True(t, gbSelected)

	err = sel.SelectOption("XX")
	assert.True(t, driver.NotFound.Has(err))
}
