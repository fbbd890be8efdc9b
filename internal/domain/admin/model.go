package admin

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for the admin password hash.
const bcryptCost = 12

// Domain errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyCredentials   = errors.New("admin email and password must be configured")
)

// Session is the transient authenticated state of the admin view.
// The zero value is an unauthenticated session.
type Session struct {
	Authenticated bool
	Email         string
	LoginTime     time.Time
}

// Credentials is the single configured admin identity.
// It is a capability check, not a security boundary.
type Credentials struct {
	Email        string
	PasswordHash []byte
}

// NewCredentials hashes password for later comparison.
// PRE: email and password are non-empty
// POST: Returns credentials holding a bcrypt hash of password
func NewCredentials(email, password string) (Credentials, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Credentials{}, ErrEmptyCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Email: email, PasswordHash: hash}, nil
}

// Check compares a login attempt against the configured pair.
// PRE: none
// POST: Returns nil only when both email and password match
func (c Credentials) Check(email, password string) error {
	if email == "" || password == "" || !strings.EqualFold(email, c.Email) {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login returns an authenticated session for email at now.
func Login(email string, now time.Time) Session {
	return Session{Authenticated: true, Email: email, LoginTime: now}
}
