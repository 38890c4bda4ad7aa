package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/sandbox"
)

// NewRouter mounts the sandbox pages and API on a new mux
func NewRouter(renderer *sandbox.Renderer, catalog *sandbox.Catalog, accounts *sandbox.Accounts, log logrus.FieldLogger) *http.ServeMux {
	account := NewAccountHandler(accounts, log)

	mux := http.NewServeMux()
	mux.Handle("/", NewHomeHandler(renderer, accounts, log))
	mux.Handle("/search/", NewSearchHandler(renderer, catalog, accounts, log))
	mux.Handle("/api/suggest", NewSuggestHandler(catalog, log))
	mux.Handle("/api/account", PostOnly(account.Step))
	mux.Handle("/api/login", PostOnly(account.Login))
	mux.Handle("/api/register", PostOnly(account.Register))
	mux.Handle("/api/logout", PostOnly(account.Logout))
	mux.Handle("/static/", NewStaticHandler())
	return mux
}
