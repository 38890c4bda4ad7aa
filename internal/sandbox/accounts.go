package sandbox

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Account screens shown after the email step of the sidebar
const (
	StepPassword       = "password"
	StepRegister       = "register"
	StepCreatePassword = "create-password"
)

// Account is a registered customer
type Account struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	PhoneCode string
	Phone     string
	Yums      int
}

// DisplayName is the name shown in the logged in sidebar
func (a Account) DisplayName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName[:1] + "."
}

// Account errors
var (
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingField       = errors.New("missing required field")
)

// Accounts is a concurrency safe account and session store
type Accounts struct {
	mu       sync.Mutex
	byEmail  map[string]Account
	sessions map[string]string
}

// NewAccounts returns a store seeded with accounts
func NewAccounts(seed ...Account) *Accounts {
	a := &Accounts{
		byEmail:  make(map[string]Account),
		sessions: make(map[string]string),
	}
	for _, acc := range seed {
		a.byEmail[key(acc.Email)] = acc
	}
	return a
}

// DefaultAccounts returns the sandbox customers. The second one booked as a
// guest and has no password yet.
func DefaultAccounts() *Accounts {
	return NewAccounts(
		Account{Email: "friday_testmail@fork.com", Password: "Test@12345", FirstName: "Friday", LastName: "Tester", Yums: 1500},
		Account{Email: "guest_booking@fork.com", FirstName: "Guest", LastName: "Booker"},
	)
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Step returns the sidebar screen that follows entering email
func (a *Accounts) Step(email string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	acc, ok := a.byEmail[key(email)]
	switch {
	case !ok:
		return StepRegister
	case acc.Password == "":
		return StepCreatePassword
	default:
		return StepPassword
	}
}

// Authenticate checks credentials and opens a session
func (a *Accounts) Authenticate(email, password string) (Account, string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	acc, ok := a.byEmail[key(email)]
	if !ok || acc.Password == "" || acc.Password != password {
		return Account{}, "", ErrInvalidCredentials
	}
	return acc, a.openSession(acc.Email), nil
}

// Register creates an account and opens a session
func (a *Accounts) Register(acc Account) (Account, string, error) {
	if acc.Email == "" || acc.Password == "" || acc.FirstName == "" || acc.LastName == "" {
		return Account{}, "", ErrMissingField
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byEmail[key(acc.Email)]; ok {
		return Account{}, "", ErrAccountExists
	}
	a.byEmail[key(acc.Email)] = acc
	return acc, a.openSession(acc.Email), nil
}

func (a *Accounts) openSession(email string) string {
	token := uuid.New().String()
	a.sessions[token] = key(email)
	return token
}

// Session returns the account behind a session token
func (a *Accounts) Session(token string) (Account, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	email, ok := a.sessions[token]
	if !ok {
		return Account{}, false
	}
	acc, ok := a.byEmail[email]
	return acc, ok
}

// EndSession forgets a session token
func (a *Accounts) EndSession(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, token)
}
