package sharesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the deptshare service.
// It provides access to unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new deptshare client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AuthenticateWithPassword logs in and wraps the issued token in a Session.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, identifier, password string) (*Session, error) {
	loginResp, err := c.Login(ctx, LoginRequest{Identifier: identifier, Password: password})
	if err != nil {
		return nil, err
	}

	return newSession(c, loginResp), nil
}

// NewSessionFromToken creates a session from an access token obtained
// elsewhere. expiresIn is the remaining lifetime in seconds.
func (c *SDKClient) NewSessionFromToken(accessToken string, expiresIn int) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		expiresAt:   time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
}
