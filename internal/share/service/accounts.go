package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/pkg/cryptox"
	"github.com/aussiebroadwan/deptshare/pkg/idx"
	"github.com/aussiebroadwan/deptshare/pkg/slogx"
)

// DefaultMaxInsertAttempts bounds how often Register retries after losing an
// identifier race at insert time.
const DefaultMaxInsertAttempts = 5

// Registration is the input to AccountService.Register.
type Registration struct {
	FullName   string
	Email      string
	Department string
	Password   string
}

type AccountService struct {
	Store       store.Store
	Credentials *CredentialVerifier
	Allocator   *IdentityAllocator

	MaxInsertAttempts int
}

// Register creates an account with a freshly allocated identifier. The store's
// unique constraints are authoritative: an identifier clash at insert draws a
// new identifier, an email clash is ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, in Registration) (domain.AccountView, error) {
	l := slogx.FromContext(ctx)

	reg, dept, err := checkRegistration(in)
	if err != nil {
		registrationsTotal.WithLabelValues("invalid").Inc()
		return domain.AccountView{}, err
	}

	if _, err := s.Store.Accounts().GetByEmail(ctx, reg.Email); err == nil {
		registrationsTotal.WithLabelValues("conflict").Inc()
		return domain.AccountView{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		registrationsTotal.WithLabelValues("error").Inc()
		return domain.AccountView{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.Credentials.Register(reg.Password)
	if err != nil {
		registrationsTotal.WithLabelValues("error").Inc()
		return domain.AccountView{}, fmt.Errorf("hash password: %w", err)
	}

	attempts := s.MaxInsertAttempts
	if attempts <= 0 {
		attempts = DefaultMaxInsertAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		identifier, err := s.Allocator.AllocateUnique(ctx, dept, s.Store.Accounts().ExistsIdentifier)
		if err != nil {
			if errors.Is(err, ErrIdentifierExhausted) {
				l.Error("identifier space exhausted", slog.String("department", dept.String()))
			}
			registrationsTotal.WithLabelValues("error").Inc()
			return domain.AccountView{}, err
		}

		now := time.Now().UTC()
		account := domain.Account{
			ID:           idx.New().String(),
			FullName:     reg.FullName,
			Email:        reg.Email,
			Department:   dept,
			Identifier:   identifier,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err = s.Store.Accounts().Create(ctx, account)
		switch {
		case err == nil:
			l.Info("account registered",
				slog.String("account_id", account.ID),
				slog.String("identifier", account.Identifier),
				slog.String("department", dept.String()),
			)
			registrationsTotal.WithLabelValues("success").Inc()
			return account.View(), nil

		case errors.Is(err, store.ErrDuplicateIdentifier):
			identifierCollisionsTotal.Inc()
			l.Warn("identifier taken at insert, retrying",
				slog.String("identifier", identifier),
				slog.Int("attempt", attempt),
			)
			continue

		case errors.Is(err, store.ErrDuplicateEmail):
			registrationsTotal.WithLabelValues("conflict").Inc()
			return domain.AccountView{}, ErrEmailTaken

		default:
			registrationsTotal.WithLabelValues("error").Inc()
			return domain.AccountView{}, fmt.Errorf("create account: %w", err)
		}
	}

	registrationsTotal.WithLabelValues("error").Inc()
	l.Error("identifier kept clashing at insert", slog.String("department", dept.String()))
	return domain.AccountView{}, ErrIdentifierExhausted
}

// Get returns the public view of an account.
func (s *AccountService) Get(ctx context.Context, accountID string) (domain.AccountView, error) {
	a, err := s.Store.Accounts().GetByID(ctx, accountID)
	if err != nil {
		return domain.AccountView{}, err
	}
	return a.View(), nil
}

// checkRegistration normalises in and enforces what the store relies on.
// Presentation rules such as password confirmation live with the request type.
func checkRegistration(in Registration) (Registration, domain.Department, error) {
	out := Registration{
		FullName:   strings.TrimSpace(in.FullName),
		Email:      domain.NormalizeEmail(in.Email),
		Department: strings.TrimSpace(in.Department),
		Password:   in.Password,
	}

	errs := domain.FieldErrors{}
	if len(out.FullName) < 2 {
		errs["full_name"] = "Full name must be at least 2 characters"
	}
	if at := strings.LastIndexByte(out.Email, '@'); at < 1 || at == len(out.Email)-1 {
		errs["email"] = "Invalid email address"
	}
	dept, err := domain.ParseDepartment(out.Department)
	if err != nil {
		errs["department"] = "Please select a department"
	}
	switch {
	case len(out.Password) < 6:
		errs["password"] = "Password must be at least 6 characters"
	case len(out.Password) > cryptox.MaxPasswordBytes:
		errs["password"] = "Password must be at most 72 bytes"
	}

	if len(errs) > 0 {
		return Registration{}, "", errs
	}
	return out, dept, nil
}
