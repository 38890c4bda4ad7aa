package sandbox

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Autocomplete shortcuts offered when a search field is focused while empty
const (
	AllRestaurants = "All restaurants"
	AroundMe       = "Around me"
)

// DefaultCity stands in for the visitor location when searching around them
const DefaultCity = "Paris"

// Slot is a bookable time, optionally carrying a promotion
type Slot struct {
	Time  string
	Offer string
}

// Restaurant is one entry of the catalogue
type Restaurant struct {
	ID           string
	Name         string
	City         string
	Cuisine      string
	AveragePrice int
	Rating       float64
	Picture      bool
	Insider      bool
	SuperYums    bool
	Slots        []Slot
}

// HasOffer reports whether any slot carries a promotion
func (r Restaurant) HasOffer() bool {
	for _, s := range r.Slots {
		if s.Offer != "" {
			return true
		}
	}
	return false
}

// Sort orders for search results
const (
	SortRelevance = "relevance"
	SortPrice     = "price"
	SortRating    = "rating"
)

// SortOption is a sort order offered on the search page
type SortOption struct {
	Key   string
	Label string
}

// SortOptions lists the orders in the order they are displayed
var SortOptions = []SortOption{
	{Key: SortRelevance, Label: "Relevance"},
	{Key: SortPrice, Label: "Price"},
	{Key: SortRating, Label: "Rating"},
}

// SortLabel returns the display label of key, defaulting to relevance
func SortLabel(key string) string {
	for _, o := range SortOptions {
		if o.Key == key {
			return o.Label
		}
	}
	return SortOptions[0].Label
}

// Query is a search request
type Query struct {
	What   string
	Where  string
	Offers bool
	Sort   string
}

// City returns the city the query resolves to
func (q Query) City() string {
	where := strings.TrimSpace(q.Where)
	if where == "" || strings.EqualFold(where, AroundMe) {
		return DefaultCity
	}
	return where
}

// Encode returns the query string of the search page for q
func (q Query) Encode() string {
	v := url.Values{}
	v.Set("what", q.What)
	v.Set("where", q.Where)
	if q.Offers {
		v.Set("offers", "1")
	}
	if q.Sort != "" && q.Sort != SortRelevance {
		v.Set("sort", q.Sort)
	}
	return v.Encode()
}

// ParseQuery reads a search request from the search page query string
func ParseQuery(v url.Values) Query {
	return Query{
		What:   v.Get("what"),
		Where:  v.Get("where"),
		Offers: v.Get("offers") == "1",
		Sort:   v.Get("sort"),
	}
}

// Catalog is an in-memory, read-only set of restaurants
type Catalog struct {
	restaurants []Restaurant
}

// NewCatalog returns a catalogue over restaurants
func NewCatalog(restaurants []Restaurant) *Catalog {
	return &Catalog{restaurants: restaurants}
}

// Search returns the restaurants matching q in the requested order
func (c *Catalog) Search(q Query) []Restaurant {
	what := strings.TrimSpace(q.What)
	if strings.EqualFold(what, AllRestaurants) {
		what = ""
	}
	city := q.City()

	var out []Restaurant
	for _, r := range c.restaurants {
		if !strings.EqualFold(r.City, city) {
			continue
		}
		if what != "" && !strings.EqualFold(r.Cuisine, what) && !strings.EqualFold(r.Name, what) {
			continue
		}
		if q.Offers && !r.HasOffer() {
			continue
		}
		out = append(out, r)
	}

	switch q.Sort {
	case SortPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AveragePrice < out[j].AveragePrice })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

// Suggest returns the autocomplete labels for a search field. An empty text
// yields the field shortcut followed by popular entries.
func (c *Catalog) Suggest(field, text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))

	var candidates []string
	switch field {
	case "what":
		candidates = append(c.cuisines(), c.names()...)
	case "where":
		candidates = c.cities()
	default:
		return nil
	}

	var out []string
	if text == "" {
		if field == "what" {
			out = append(out, AllRestaurants)
		} else {
			out = append(out, AroundMe)
		}
	}
	for _, label := range candidates {
		if strings.Contains(strings.ToLower(label), text) {
			out = append(out, label)
		}
		if len(out) == 6 {
			break
		}
	}
	return out
}

func (c *Catalog) cuisines() []string {
	return c.distinct(func(r Restaurant) string { return r.Cuisine })
}

func (c *Catalog) names() []string {
	return c.distinct(func(r Restaurant) string { return r.Name })
}

func (c *Catalog) cities() []string {
	return c.distinct(func(r Restaurant) string { return r.City })
}

func (c *Catalog) distinct(key func(Restaurant) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range c.restaurants {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// FormatCount renders a result count the way the site does, grouping
// thousands with a narrow no-break space
func FormatCount(n int) string {
	digits := strconv.Itoa(n)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune('\u202f')
		}
		b.WriteRune(d)
	}
	if n == 1 {
		return b.String() + " restaurant"
	}
	return b.String() + " restaurants"
}

// DefaultCatalog returns the restaurants served by the sandbox
func DefaultCatalog() *Catalog {
	return NewCatalog([]Restaurant{
		{
			ID: "le-petit-zinc", Name: "Le Petit Zinc", City: "Paris", Cuisine: "French",
			AveragePrice: 45, Rating: 9.1, Picture: true, Insider: true, SuperYums: true,
			Slots: []Slot{{Time: "19:30", Offer: "-20% on food"}, {Time: "20:00"}, {Time: "20:30", Offer: "-20% on food"}},
		},
		{
			ID: "pizzeria-popolare", Name: "Pizzeria Popolare", City: "Paris", Cuisine: "Italian",
			AveragePrice: 20, Rating: 8.7, Picture: true,
			Slots: []Slot{{Time: "19:00"}, {Time: "21:15"}},
		},
		{
			ID: "ober-mamma", Name: "Ober Mamma", City: "Paris", Cuisine: "Italian",
			AveragePrice: 28, Rating: 9.0, Picture: true, Insider: true,
			Slots: []Slot{{Time: "19:30", Offer: "-30% on food"}, {Time: "22:00"}},
		},
		{
			ID: "kodawari-ramen", Name: "Kodawari Ramen", City: "Paris", Cuisine: "Japanese",
			AveragePrice: 18, Rating: 9.3,
			Slots: []Slot{{Time: "12:00"}, {Time: "12:30"}, {Time: "13:00"}},
		},
		{
			ID: "bouchon-daniel", Name: "Le Bouchon de Daniel", City: "Lyon", Cuisine: "French",
			AveragePrice: 35, Rating: 8.9, Picture: true, SuperYums: true,
			Slots: []Slot{{Time: "20:00", Offer: "-50% on food"}},
		},
		{
			ID: "la-mere-brazier", Name: "La Mère Brazier", City: "Lyon", Cuisine: "French",
			AveragePrice: 120, Rating: 9.6, Picture: true, Insider: true,
			Slots: []Slot{{Time: "19:45"}, {Time: "21:00"}},
		},
		{
			ID: "dishoom", Name: "Dishoom", City: "London", Cuisine: "Indian",
			AveragePrice: 30, Rating: 9.2, Picture: true,
			Slots: []Slot{{Time: "18:30", Offer: "-25% on food"}, {Time: "19:00"}},
		},
		{
			ID: "bar-canete", Name: "Bar Cañete", City: "Barcelona", Cuisine: "Spanish",
			AveragePrice: 40, Rating: 9.0, Picture: true,
			Slots: []Slot{{Time: "21:00"}, {Time: "21:30"}, {Time: "22:00"}},
		},
	})
}
