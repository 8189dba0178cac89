package domain

import (
	"strings"
	"time"
)

// Account is a registered user. Nothing about it changes after creation.
type Account struct {
	ID           string
	FullName     string
	Email        string // trimmed and lower-cased
	Department   Department
	Identifier   string // "<CODE>-<6 symbols>", the login handle
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountView is the part of an account that may leave the service.
type AccountView struct {
	ID         string
	FullName   string
	Email      string
	Department Department
	Identifier string
	CreatedAt  time.Time
}

// View drops the password hash.
func (a Account) View() AccountView {
	return AccountView{
		ID:         a.ID,
		FullName:   a.FullName,
		Email:      a.Email,
		Department: a.Department,
		Identifier: a.Identifier,
		CreatedAt:  a.CreatedAt,
	}
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Principal is the authenticated caller as seen by access checks. It is
// built from a verified session, never from request input.
type Principal struct {
	AccountID  string
	Identifier string
	Department Department
	FullName   string

	// SessionID and SessionExpiry identify the token the principal came
	// from, so it can be revoked on logout.
	SessionID     string
	SessionExpiry time.Time
}

// IsZero reports whether p is the anonymous principal.
func (p Principal) IsZero() bool {
	return p.AccountID == ""
}
