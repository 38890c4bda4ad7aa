package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/sandbox"
)

// SessionCookie names the cookie carrying the sandbox session token
const SessionCookie = "wng_session"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// UserResponse is returned once a customer is logged in
type UserResponse struct {
	Username string `json:"username"`
	Yums     int    `json:"yums"`
}

// currentUser resolves the logged in customer from the session cookie
func currentUser(r *http.Request, accounts *sandbox.Accounts) *sandbox.User {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	acc, ok := accounts.Session(c.Value)
	if !ok {
		return nil
	}
	return &sandbox.User{Name: acc.DisplayName(), Yums: acc.Yums}
}

func setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// sendJSON writes v as a JSON response
func sendJSON(w http.ResponseWriter, log logrus.FieldLogger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Error encoding response")
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
