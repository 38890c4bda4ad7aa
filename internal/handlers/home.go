package handlers

import (
	"bytes"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/sandbox"
)

// HomeHandler handles the home page requests
type HomeHandler struct {
	renderer *sandbox.Renderer
	accounts *sandbox.Accounts
	log      logrus.FieldLogger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(renderer *sandbox.Renderer, accounts *sandbox.Accounts, log logrus.FieldLogger) *HomeHandler {
	return &HomeHandler{
		renderer: renderer,
		accounts: accounts,
		log:      log,
	}
}

// ServeHTTP handles the GET / request
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view := sandbox.HomeView{}
	view.User = currentUser(r, h.accounts)

	var buf bytes.Buffer
	if err := h.renderer.Home(&buf, view); err != nil {
		h.log.WithError(err).Error("Error rendering home page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
