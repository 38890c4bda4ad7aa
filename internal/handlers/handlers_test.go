package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/sandbox"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newRenderer(t *testing.T) *sandbox.Renderer {
	t.Helper()
	r, err := sandbox.NewRenderer()
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	return r
}

// loggedInCookie authenticates the default customer and returns its session cookie
func loggedInCookie(t *testing.T, accounts *sandbox.Accounts) *http.Cookie {
	t.Helper()
	_, token, err := accounts.Authenticate("friday_testmail@fork.com", "Test@12345")
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	return &http.Cookie{Name: SessionCookie, Value: token}
}

func TestHomeHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		loggedIn       bool
		expectedStatus int
		checkContent   []string
	}{
		{
			name:           "successful GET request",
			method:         http.MethodGet,
			path:           "/",
			expectedStatus: http.StatusOK,
			checkContent:   []string{"homepage-tagline", "search-component", "identification_email", "Log in"},
		},
		{
			name:           "logged in customer",
			method:         http.MethodGet,
			path:           "/",
			loggedIn:       true,
			expectedStatus: http.StatusOK,
			checkContent:   []string{"Friday T.", "LOGOUT_BTN", "1500"},
		},
		{
			name:           "unknown path",
			method:         http.MethodGet,
			path:           "/nope",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "method not allowed - POST",
			method:         http.MethodPost,
			path:           "/",
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "method not allowed - DELETE",
			method:         http.MethodDelete,
			path:           "/",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			accounts := sandbox.DefaultAccounts()
			handler := NewHomeHandler(newRenderer(t), accounts, testLogger())
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.loggedIn {
				req.AddCookie(loggedInCookie(t, accounts))
			}
			w := httptest.NewRecorder()

			// WHEN
			handler.ServeHTTP(w, req)

			// THEN
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			body := w.Body.String()
			for _, content := range tt.checkContent {
				if !strings.Contains(body, content) {
					t.Errorf("expected response to contain '%s'", content)
				}
			}
		})
	}
}

func TestSearchHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		checkContent   []string
		absentContent  []string
	}{
		{
			name:           "results",
			method:         http.MethodGet,
			target:         "/search/?what=Italian&where=Paris",
			expectedStatus: http.StatusOK,
			checkContent:   []string{"Pizzeria Popolare", "Ober Mamma", "The best restaurants in Paris", "2 restaurants"},
			absentContent:  []string{"withMap", "search-marketing-banner-header"},
		},
		{
			name:           "special offers",
			method:         http.MethodGet,
			target:         "/search/?where=Paris&offers=1",
			expectedStatus: http.StatusOK,
			checkContent:   []string{"search-marketing-banner-header", "-30% on food"},
			absentContent:  []string{"Pizzeria Popolare"},
		},
		{
			name:           "no results",
			method:         http.MethodGet,
			target:         "/search/?what=Peruvian&where=Paris",
			expectedStatus: http.StatusOK,
			checkContent:   []string{"withMap", "0 restaurants"},
			absentContent:  []string{"result-list-restaurants"},
		},
		{
			name:           "method not allowed - POST",
			method:         http.MethodPost,
			target:         "/search/",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			handler := NewSearchHandler(newRenderer(t), sandbox.DefaultCatalog(), sandbox.DefaultAccounts(), testLogger())
			req := httptest.NewRequest(tt.method, tt.target, nil)
			w := httptest.NewRecorder()

			// WHEN
			handler.ServeHTTP(w, req)

			// THEN
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			body := w.Body.String()
			for _, content := range tt.checkContent {
				if !strings.Contains(body, content) {
					t.Errorf("expected response to contain '%s'", content)
				}
			}
			for _, content := range tt.absentContent {
				if strings.Contains(body, content) {
					t.Errorf("expected response not to contain '%s'", content)
				}
			}
		})
	}
}

func TestSuggestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "typed text",
			method:         http.MethodGet,
			target:         "/api/suggest?field=where&q=ly",
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"label":"Lyon","shortcut":false}]`,
		},
		{
			name:           "no match is an empty list",
			method:         http.MethodGet,
			target:         "/api/suggest?field=where&q=zzz",
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "unknown field",
			method:         http.MethodGet,
			target:         "/api/suggest?field=when",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "method not allowed",
			method:         http.MethodPost,
			target:         "/api/suggest?field=what",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSuggestHandler(sandbox.DefaultCatalog(), testLogger())
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedBody != "" && strings.TrimSpace(w.Body.String()) != tt.expectedBody {
				t.Errorf("expected body %s, got %s", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestSuggestHandler_Shortcut(t *testing.T) {
	handler := NewSuggestHandler(sandbox.DefaultCatalog(), testLogger())
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/suggest?field=what&q=", nil))

	if !strings.HasPrefix(w.Body.String(), `[{"label":"All restaurants","shortcut":true}`) {
		t.Errorf("expected the shortcut first, got %s", w.Body.String())
	}
}

func TestStaticHandler(t *testing.T) {
	handler := NewStaticHandler()

	for _, path := range []string{"/static/sandbox.js", "/static/sandbox.css", "/static/placeholder.svg"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}
	}
}

func TestNewRouter(t *testing.T) {
	router := NewRouter(newRenderer(t), sandbox.DefaultCatalog(), sandbox.DefaultAccounts(), testLogger())

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"home page", http.MethodGet, "/", http.StatusOK},
		{"search page", http.MethodGet, "/search/?what=&where=Paris", http.StatusOK},
		{"suggestions", http.MethodGet, "/api/suggest?field=where&q=", http.StatusOK},
		{"page script", http.MethodGet, "/static/sandbox.js", http.StatusOK},
		{"logout", http.MethodPost, "/api/logout", http.StatusNoContent},
		{"login with GET", http.MethodGet, "/api/login", http.StatusMethodNotAllowed},
		{"unknown page", http.MethodGet, "/nowhere", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a request for a sandbox route
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			// WHEN the router serves it
			router.ServeHTTP(w, req)

			// THEN the mounted handler answers
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
