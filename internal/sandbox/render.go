package sandbox

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the files served under /static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return sub
}

// User is the logged in customer as rendered in pages
type User struct {
	Name string
	Yums int
}

// Country is an entry of the phone code dropdown
type Country struct {
	Code string
	Name string
	Dial string
}

// PageView holds what every page renders around its content
type PageView struct {
	Title     string
	User      *User
	Countries []Country
}

// Placeholder is the user rendered into the logged in panel template that
// the page script fills after logging in
func (PageView) Placeholder() User { return User{} }

// HomeView is the data of the home page
type HomeView struct {
	PageView
	Tagline string
}

// SearchView is the data of the search page
type SearchView struct {
	PageView
	Query     Query
	City      string
	Count     string
	SortLabel string
	Sorts     []SortOption
	Results   []Restaurant
}

// OffersToggleURL is the search page with the special offers filter flipped
func (v SearchView) OffersToggleURL() string {
	q := v.Query
	q.Offers = !q.Offers
	return "/search/?" + q.Encode()
}

var dialCodes = []struct{ region, dial string }{
	{"FR", "33"}, {"GB", "44"}, {"ES", "34"}, {"IT", "39"}, {"DE", "49"},
	{"NL", "31"}, {"BE", "32"}, {"CH", "41"}, {"PT", "351"}, {"SE", "46"},
}

// Countries returns the phone code dropdown entries with English names
func Countries() []Country {
	names := display.English.Regions()
	out := make([]Country, 0, len(dialCodes))
	for _, d := range dialCodes {
		region := language.MustParseRegion(d.region)
		out = append(out, Country{Code: d.region, Name: names.Name(region), Dial: d.dial})
	}
	return out
}

// Renderer renders the sandbox pages from the embedded templates
type Renderer struct {
	home    *template.Template
	search  *template.Template
	sidebar *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	home, err := template.ParseFS(templateFS, "templates/layout.html", "templates/sidebar.html", "templates/home.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse home template: %w", err)
	}
	search, err := template.ParseFS(templateFS, "templates/layout.html", "templates/sidebar.html", "templates/search.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse search template: %w", err)
	}
	sidebar, err := template.ParseFS(templateFS, "templates/sidebar.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse sidebar template: %w", err)
	}
	return &Renderer{home: home, search: search, sidebar: sidebar}, nil
}

// Home renders the home page
func (r *Renderer) Home(w io.Writer, v HomeView) error {
	if v.Title == "" {
		v.Title = "Restaurants"
	}
	if v.Tagline == "" {
		v.Tagline = "Find and book the best restaurants"
	}
	if v.Countries == nil {
		v.Countries = Countries()
	}
	return r.home.ExecuteTemplate(w, "layout", v)
}

// Search renders the search page
func (r *Renderer) Search(w io.Writer, v SearchView) error {
	if v.Title == "" {
		v.Title = "Restaurants in " + v.City
	}
	if v.Sorts == nil {
		v.Sorts = SortOptions
	}
	if v.SortLabel == "" {
		v.SortLabel = SortLabel(v.Query.Sort)
	}
	if v.Countries == nil {
		v.Countries = Countries()
	}
	return r.search.ExecuteTemplate(w, "layout", v)
}

// SidebarLoggedIn renders the user space panel of a logged in customer
func (r *Renderer) SidebarLoggedIn(w io.Writer, u User) error {
	return r.sidebar.ExecuteTemplate(w, "sidebar-user", u)
}

// SidebarNotLoggedIn renders the user space panel of a visitor
func (r *Renderer) SidebarNotLoggedIn(w io.Writer) error {
	return r.sidebar.ExecuteTemplate(w, "sidebar-anon", PageView{Countries: Countries()})
}
