package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/sandbox"
)

// Suggestion is one autocomplete entry
type Suggestion struct {
	Label    string `json:"label"`
	Shortcut bool   `json:"shortcut"`
}

// SuggestHandler serves the autocomplete entries of the search fields
type SuggestHandler struct {
	catalog *sandbox.Catalog
	log     logrus.FieldLogger
}

// NewSuggestHandler creates a new suggest handler
func NewSuggestHandler(catalog *sandbox.Catalog, log logrus.FieldLogger) *SuggestHandler {
	return &SuggestHandler{catalog: catalog, log: log}
}

// ServeHTTP handles the GET /api/suggest?field=&q= request
func (h *SuggestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	field := r.URL.Query().Get("field")
	if field != "what" && field != "where" {
		sendErrorResponse(w, "field must be what or where", http.StatusBadRequest)
		return
	}

	out := []Suggestion{}
	for _, label := range h.catalog.Suggest(field, r.URL.Query().Get("q")) {
		out = append(out, Suggestion{
			Label:    label,
			Shortcut: label == sandbox.AllRestaurants || label == sandbox.AroundMe,
		})
	}
	sendJSON(w, h.log, out)
}
