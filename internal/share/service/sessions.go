package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/pkg/jwtx"
	"github.com/aussiebroadwan/deptshare/pkg/slogx"
)

// Session is a signed-in account and the bearer token representing it.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Account     domain.AccountView
}

type SessionService struct {
	Store       store.Store
	Credentials *CredentialVerifier
	KeyManager  *jwtx.KeyManager
	Issuer      string
	TTL         time.Duration
}

// Login verifies identifier and password and issues a session token.
func (s *SessionService) Login(ctx context.Context, identifier, password string) (Session, error) {
	l := slogx.FromContext(ctx)

	account, err := s.Credentials.Verify(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, ErrAuthFailure) {
			loginsTotal.WithLabelValues("failure").Inc()
		} else {
			loginsTotal.WithLabelValues("error").Inc()
		}
		return Session{}, err
	}

	claims := jwtx.NewSessionClaims(
		account.ID,
		account.Identifier,
		account.Department.String(),
		account.FullName,
		s.Issuer,
		s.TTL,
		time.Now().UTC(),
	)

	token, err := s.KeyManager.Sign(claims)
	if err != nil {
		loginsTotal.WithLabelValues("error").Inc()
		return Session{}, fmt.Errorf("sign session: %w", err)
	}

	l.Info("login succeeded",
		slog.String("account_id", account.ID),
		slog.String("department", account.Department.String()),
	)
	loginsTotal.WithLabelValues("success").Inc()

	return Session{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAtTime(),
		Account:     account,
	}, nil
}

// Logout revokes the principal's session token until it expires.
func (s *SessionService) Logout(ctx context.Context, p domain.Principal) error {
	if p.IsZero() || p.SessionID == "" {
		return ErrUnauthenticated
	}

	expires := p.SessionExpiry
	if expires.IsZero() {
		expires = time.Now().Add(s.ttl())
	}

	if err := s.Store.RevokedSessions().Revoke(ctx, p.SessionID, p.AccountID, expires); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	slogx.FromContext(ctx).Info("logout", slog.String("account_id", p.AccountID))
	return nil
}

// CheckRevoked rejects claims whose token was logged out. It has the shape of
// an httpx.ClaimsCheck.
func (s *SessionService) CheckRevoked(ctx context.Context, claims jwtx.Claims) error {
	if claims.ID == "" {
		return ErrUnauthenticated
	}

	revoked, err := s.Store.RevokedSessions().IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return ErrSessionRevoked
	}
	return nil
}

// Resolve turns verified claims into a principal.
func (s *SessionService) Resolve(ctx context.Context, claims jwtx.Claims) (domain.Principal, error) {
	if err := s.CheckRevoked(ctx, claims); err != nil {
		return domain.Principal{}, err
	}
	return PrincipalFromClaims(claims)
}

// PrincipalFromClaims builds a principal from verified claims alone.
func PrincipalFromClaims(claims jwtx.Claims) (domain.Principal, error) {
	dept, err := domain.ParseDepartment(claims.Department)
	if err != nil || claims.Subject == "" {
		return domain.Principal{}, ErrUnauthenticated
	}

	return domain.Principal{
		AccountID:     claims.Subject,
		Identifier:    claims.Identifier,
		Department:    dept,
		FullName:      claims.Name,
		SessionID:     claims.ID,
		SessionExpiry: claims.ExpiresAtTime(),
	}, nil
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}
