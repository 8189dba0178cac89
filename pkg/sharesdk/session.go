package sharesdk

import (
	"errors"
	"sync"
	"time"
)

// ErrSessionExpired is returned without contacting the server once the
// session's token has passed its expiry. Log in again to continue.
var ErrSessionExpired = errors.New("sharesdk: session expired")

// Session is a logged in account. Tokens are not refreshed: when the access
// token expires the session is over.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	account     Account
}

// newSession creates a new authenticated session from a login response.
func newSession(client *SDKClient, loginResp *LoginResponse) *Session {
	return &Session{
		client:      client,
		accessToken: loginResp.AccessToken,
		expiresAt:   time.Now().Add(time.Duration(loginResp.ExpiresIn) * time.Second),
		account:     loginResp.Account,
	}
}

// validToken returns the access token unless the session has expired or
// was logged out.
func (s *Session) validToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.accessToken == "" || !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// ExpiresAt is when the access token stops being accepted.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Account returns the account the session was issued for. It is empty for
// sessions created with NewSessionFromToken until Me is called.
func (s *Session) Account() Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}
