package jwtx

import (
	"time"

	"github.com/aussiebroadwan/deptshare/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a session token stays valid when the caller
// does not say otherwise.
const DefaultSessionTTL = 12 * time.Hour

// Claims are the session-token claims. The subject is the account ID.
type Claims struct {
	jwt.RegisteredClaims

	// Identifier is the account's login identifier, e.g. "ENG-7KQ2MX".
	Identifier string `json:"identifier,omitempty"`

	// Department is the canonical department name. It is the only input the
	// access checks use, so it must come from here and never from a request.
	Department string `json:"department,omitempty"`

	// Name is the account holder's full name, for display only.
	Name string `json:"name,omitempty"`
}

// NewSessionClaims builds claims for a freshly authenticated account.
func NewSessionClaims(
	subject, identifier, department, name string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Identifier: identifier,
		Department: department,
		Name:       name,
	}
}

// NewJTI returns a URL-safe random value for the "jti" claim.
func NewJTI() string {
	return cryptox.MustGenerateToken(cryptox.TokenSize128)
}

// ValidateIssuer checks the issuer. An empty expectation accepts anything.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry rejects expired tokens and tokens used before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway is ValidateExpiry with some room for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// ExpiresAtTime returns exp as a time, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
