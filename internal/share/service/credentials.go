package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/pkg/cryptox"
	"github.com/aussiebroadwan/deptshare/pkg/slogx"
)

// CredentialVerifier owns password hashing and the identifier/password check.
type CredentialVerifier struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

func NewCredentialVerifier(st store.Store, hasher *cryptox.PasswordHasher) *CredentialVerifier {
	if hasher == nil {
		hasher = cryptox.NewPasswordHasher(cryptox.DefaultPasswordCost)
	}
	return &CredentialVerifier{Store: st, Hasher: hasher}
}

// Register hashes a new secret for storage.
func (v *CredentialVerifier) Register(secret string) (string, error) {
	return v.Hasher.Hash(secret)
}

// Verify checks secret against the account holding identifier and returns
// the account without its hash. Unknown identifiers still pay for one bcrypt
// comparison so both failures take about as long.
func (v *CredentialVerifier) Verify(ctx context.Context, identifier, secret string) (domain.AccountView, error) {
	l := slogx.FromContext(ctx)
	identifier = strings.TrimSpace(identifier)

	account, err := v.Store.Accounts().GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = v.Hasher.Compare(secret, v.dummy())
			l.Info("login for unknown identifier", slog.String("identifier", identifier))
			return domain.AccountView{}, ErrUnknownIdentifier
		}
		return domain.AccountView{}, err
	}

	if err := v.Hasher.Compare(secret, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login with wrong password", slog.String("identifier", identifier))
			return domain.AccountView{}, ErrBadSecret
		}
		return domain.AccountView{}, err
	}

	return account.View(), nil
}

func (v *CredentialVerifier) dummy() string {
	v.dummyOnce.Do(func() {
		h, err := v.Hasher.Hash("deptshare-timing-equaliser")
		if err == nil {
			v.dummyHash = h
		}
	})
	return v.dummyHash
}
