package handlers

import (
	"bytes"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/sandbox"
)

// SearchHandler handles the search results page
type SearchHandler struct {
	renderer *sandbox.Renderer
	catalog  *sandbox.Catalog
	accounts *sandbox.Accounts
	log      logrus.FieldLogger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(renderer *sandbox.Renderer, catalog *sandbox.Catalog, accounts *sandbox.Accounts, log logrus.FieldLogger) *SearchHandler {
	return &SearchHandler{
		renderer: renderer,
		catalog:  catalog,
		accounts: accounts,
		log:      log,
	}
}

// ServeHTTP handles the GET /search/ request
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := sandbox.ParseQuery(r.URL.Query())
	results := h.catalog.Search(q)
	h.log.WithFields(logrus.Fields{
		"what":    q.What,
		"where":   q.Where,
		"offers":  q.Offers,
		"results": len(results),
	}).Debug("Search")

	view := sandbox.SearchView{
		Query:   q,
		City:    q.City(),
		Count:   sandbox.FormatCount(len(results)),
		Results: results,
	}
	view.User = currentUser(r, h.accounts)

	var buf bytes.Buffer
	if err := h.renderer.Search(&buf, view); err != nil {
		h.log.WithError(err).Error("Error rendering search page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
