package sharesdk

import (
	"context"
	"net/http"
)

// Me returns the account behind the session.
func (s *Session) Me(ctx context.Context) (*Account, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := decodeJSON(resp, &account, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.account = account
	s.mu.Unlock()

	return &account, nil
}

// Logout revokes the session's token on the server. The session is unusable
// afterwards even if the request fails.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/logout", nil, nil)

	s.mu.Lock()
	s.accessToken = ""
	s.mu.Unlock()

	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
