package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/deptshare/internal/share/blob"
	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/internal/share/store/drivers/sqlite"
	"github.com/aussiebroadwan/deptshare/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "share.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestBlobs(t *testing.T) *blob.LocalStore {
	t.Helper()
	b, err := blob.NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return b
}

// fastHasher keeps bcrypt out of the way in tests.
func fastHasher() *cryptox.PasswordHasher {
	return &cryptox.PasswordHasher{Cost: bcrypt.MinCost}
}

func newAccountService(st store.Store) *AccountService {
	return &AccountService{
		Store:       st,
		Credentials: NewCredentialVerifier(st, fastHasher()),
		Allocator:   &IdentityAllocator{},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// register creates an account and returns it as a signed-in principal.
func register(t *testing.T, st store.Store, name, email string, dept domain.Department) domain.Principal {
	t.Helper()

	view, err := newAccountService(st).Register(context.Background(), Registration{
		FullName:   name,
		Email:      email,
		Department: dept.String(),
		Password:   "secret123",
	})
	require.NoError(t, err)

	return domain.Principal{
		AccountID:  view.ID,
		Identifier: view.Identifier,
		Department: view.Department,
		FullName:   view.FullName,
	}
}

// zeroReader yields zero bytes forever, so every identifier suffix is "222222".
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
