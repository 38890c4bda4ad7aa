package handlers

import (
	"net/http"

	"github.com/forkqa/webnextgen/internal/sandbox"
)

// NewStaticHandler serves the embedded script, stylesheet and images
// under /static/
func NewStaticHandler() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(sandbox.Static())))
}
