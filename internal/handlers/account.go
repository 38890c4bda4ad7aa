package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/sandbox"
)

// AccountRequest is posted by the email step of the user space
type AccountRequest struct {
	Email string `json:"email"`
}

// AccountResponse names the screen that follows the email step
type AccountResponse struct {
	Step string `json:"step"`
}

// LoginRequest carries the customer credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the account creation form
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	PhoneCode string `json:"phoneCode"`
	Phone     string `json:"phone"`
}

// AccountHandler handles the user space API
type AccountHandler struct {
	accounts *sandbox.Accounts
	log      logrus.FieldLogger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *sandbox.Accounts, log logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{accounts: accounts, log: log}
}

// Step handles POST /api/account
func (h *AccountHandler) Step(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		sendErrorResponse(w, "email is required", http.StatusBadRequest)
		return
	}
	sendJSON(w, h.log, AccountResponse{Step: h.accounts.Step(req.Email)})
}

// Login handles POST /api/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	acc, token, err := h.accounts.Authenticate(req.Email, req.Password)
	if err != nil {
		h.log.WithField("email", req.Email).Info("Login refused")
		sendErrorResponse(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	h.log.WithField("email", acc.Email).Info("Customer logged in")
	setSession(w, token)
	sendJSON(w, h.log, UserResponse{Username: acc.DisplayName(), Yums: acc.Yums})
}

// Register handles POST /api/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	acc, token, err := h.accounts.Register(sandbox.Account{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhoneCode: req.PhoneCode,
		Phone:     req.Phone,
	})
	switch {
	case errors.Is(err, sandbox.ErrAccountExists):
		sendErrorResponse(w, "An account already exists for this email", http.StatusConflict)
		return
	case errors.Is(err, sandbox.ErrMissingField):
		sendErrorResponse(w, "Please fill in all the fields", http.StatusBadRequest)
		return
	case err != nil:
		h.log.WithError(err).Error("Error registering account")
		sendErrorResponse(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	h.log.WithField("email", acc.Email).Info("Account created")
	setSession(w, token)
	sendJSON(w, h.log, UserResponse{Username: acc.DisplayName(), Yums: acc.Yums})
}

// Logout handles POST /api/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		h.accounts.EndSession(c.Value)
	}
	clearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// PostOnly rejects every method but POST
func PostOnly(fn http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		fn(w, r)
	})
}
