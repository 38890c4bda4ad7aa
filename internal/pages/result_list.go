package pages

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/driver"
)

var (
	resultItemsBy  = driver.CSS(".card")
	tagYumsX2By    = driver.CSS("span[data-test='search-restaurant-tags-SUPER_YUMS']")
	pictureBy      = driver.TagName("img")
	insiderMedalBy = driver.CSS("[data-test='insider-medal']")
	timeSlotsBy    = driver.CSS("li > a")
	slotOfferBy    = driver.TagName("span")
	cuisineTagBy   = driver.CSS("[data-test='search-restaurant-tags-DEFAULT']")
	restaurantBy   = driver.TagName("a")
)

// SearchResultList is the list of restaurant cards of a search. The cards are
// captured once, when the list is verified.
type SearchResultList struct {
	env     Env
	root    driver.Element
	log     logrus.FieldLogger
	results []*SearchResultItem
}

// NewSearchResultList binds a result list to its container
func NewSearchResultList(env Env, root driver.Element) *SearchResultList {
	return &SearchResultList{env: env, root: root, log: env.logger("result-list")}
}

// NewEmptySearchResultList returns the list of a search without results
func NewEmptySearchResultList(env Env) *SearchResultList {
	return &SearchResultList{env: env, log: env.logger("result-list")}
}

// VerifyReady requires at least one card and verifies an item for each
func (l *SearchResultList) VerifyReady() error {
	if l.root == nil {
		return nil
	}
	if err := verify(l.root, l.log, "search result list", []check{
		{"result item", resultItemsBy},
	}); err != nil {
		return err
	}

	cards, err := l.root.FindElements(resultItemsBy)
	if err != nil {
		return notLoaded("search result list", "result items", err)
	}
	l.results = make([]*SearchResultItem, 0, len(cards))
	for i, card := range cards {
		l.log.WithField("index", i).Debug("Adding search result item")
		item := NewSearchResultItem(l.env, card)
		if err := item.VerifyReady(); err != nil {
			return err
		}
		l.results = append(l.results, item)
	}
	l.log.Debug("Search result list loaded")
	return nil
}

// Count returns the number of results
func (l *SearchResultList) Count() int { return len(l.results) }

// Result returns the result at index
func (l *SearchResultList) Result(index int) (*SearchResultItem, error) {
	if index < 0 || index >= len(l.results) {
		return nil, IllegalArgument.New("result index %d out of range [0, %d)", index, len(l.results))
	}
	return l.results[index], nil
}

// IsYumsX2Present reports whether any result shows the yums x2 tag
func (l *SearchResultList) IsYumsX2Present() (bool, error) {
	if l.root == nil {
		return false, nil
	}
	return displayed(l.root, tagYumsX2By)
}

// SearchResultItem is one restaurant card
type SearchResultItem struct {
	env  Env
	root driver.Element
	log  logrus.FieldLogger
}

// NewSearchResultItem binds a result item to its card
func NewSearchResultItem(env Env, root driver.Element) *SearchResultItem {
	return &SearchResultItem{env: env, root: root, log: env.logger("result-item")}
}

// VerifyReady checks the name, the picture and the data blocks are present
func (it *SearchResultItem) VerifyReady() error {
	return verify(it.root, it.log, "search result item", []check{
		{"restaurant name", restaurantBy},
		{"restaurant image", driver.CSS("div > div")},
		{"restaurant data", driver.CSS("div > div + div")},
	})
}

func (it *SearchResultItem) text(by driver.By) (string, error) {
	el, err := it.root.FindElement(by)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Name returns the restaurant name
func (it *SearchResultItem) Name() (string, error) {
	return it.text(restaurantBy)
}

// HasPicture reports whether the restaurant picture shows
func (it *SearchResultItem) HasPicture() (bool, error) {
	return displayed(it.root, pictureBy)
}

// HasInsiderPictureTag reports whether the insider medal shows over the
// picture
func (it *SearchResultItem) HasInsiderPictureTag() (bool, error) {
	return displayed(it.root, insiderMedalBy)
}

// CuisineTag returns the cuisine of the restaurant
func (it *SearchResultItem) CuisineTag() (string, error) {
	return it.text(cuisineTagBy)
}

// NumberOfTimeSlots returns how many booking slots the card offers
func (it *SearchResultItem) NumberOfTimeSlots() (int, error) {
	slots, err := it.root.FindElements(timeSlotsBy)
	if err != nil {
		return 0, err
	}
	return len(slots), nil
}

// slot returns the time slot at index
func (it *SearchResultItem) slot(index int) (driver.Element, error) {
	slots, err := it.root.FindElements(timeSlotsBy)
	if err != nil {
		return nil, err
	}
	it.log.Debugf("There are %d timeslots", len(slots))
	if len(slots) == 0 {
		return nil, IllegalArgument.New("the list of timeslots is empty")
	}
	if index < 0 || index >= len(slots) {
		return nil, IllegalArgument.New("timeslot index %d out of range [0, %d)", index, len(slots))
	}
	return slots[index], nil
}

// TimeSlotHour returns the hour of the slot at index without its offer
func (it *SearchResultItem) TimeSlotHour(index int) (string, error) {
	slot, err := it.slot(index)
	if err != nil {
		return "", err
	}
	text, err := slot.Text()
	if err != nil {
		return "", err
	}
	offer, err := it.TimeSlotOffer(index)
	if err != nil {
		return "", err
	}
	if offer != "" {
		text = strings.ReplaceAll(text, offer, "")
	}
	return strings.TrimSpace(text), nil
}

// TimeSlotOffer returns the offer of the slot at index, or "" without one
func (it *SearchResultItem) TimeSlotOffer(index int) (string, error) {
	slot, err := it.slot(index)
	if err != nil {
		return "", err
	}
	ok, err := displayed(slot, slotOfferBy)
	if err != nil || !ok {
		return "", err
	}
	offer, err := slot.FindElement(slotOfferBy)
	if err != nil {
		return "", err
	}
	return offer.Text()
}

// HasTimeSlotOffer reports whether the slot at index shows an offer
func (it *SearchResultItem) HasTimeSlotOffer(index int) (bool, error) {
	slot, err := it.slot(index)
	if err != nil {
		return false, err
	}
	return displayed(slot, slotOfferBy)
}
