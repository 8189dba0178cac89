// Package storetest holds the behaviour every store driver must share.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns a migrated, empty store that lives for the test.
type Factory func(t *testing.T) store.Store

// Run exercises a driver against the store contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("AccountsCreateAndLookup", func(t *testing.T) { testAccountsCreateAndLookup(t, newStore) })
	t.Run("AccountsUniqueConstraints", func(t *testing.T) { testAccountsUniqueConstraints(t, newStore) })
	t.Run("ResourcesListScopedAndOrdered", func(t *testing.T) { testResourcesListScopedAndOrdered(t, newStore) })
	t.Run("ResourcesRequireExistingOwner", func(t *testing.T) { testResourcesRequireExistingOwner(t, newStore) })
	t.Run("RevokedSessions", func(t *testing.T) { testRevokedSessions(t, newStore) })
	t.Run("WithTxRollsBackOnError", func(t *testing.T) { testWithTxRollsBackOnError(t, newStore) })
}

func newAccount(dept domain.Department, email, identifier string) domain.Account {
	now := time.Now().UTC()
	return domain.Account{
		ID:           idx.New().String(),
		FullName:     "Test " + identifier,
		Email:        email,
		Department:   dept,
		Identifier:   identifier,
		PasswordHash: "$2a$12$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newResource(owner domain.Account, name string, at time.Time) domain.Resource {
	id := idx.NewAt(at).String()
	return domain.Resource{
		ID:           id,
		StoredName:   id + ".pdf",
		OriginalName: name,
		Locator:      "/uploads/" + id + ".pdf",
		ContentType:  "application/pdf",
		Size:         42,
		Checksum:     "abc",
		Department:   owner.Department,
		OwnerID:      owner.ID,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

func testAccountsCreateAndLookup(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	a := newAccount(domain.DepartmentFinance, "ada@example.com", "FIN-7KQ2MX")
	require.NoError(t, s.Accounts().Create(ctx, a))

	byID, err := s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, a.Email, byID.Email)
	require.Equal(t, domain.DepartmentFinance, byID.Department)
	require.WithinDuration(t, a.CreatedAt, byID.CreatedAt, time.Millisecond)

	byEmail, err := s.Accounts().GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, byEmail.ID)

	byIdent, err := s.Accounts().GetByIdentifier(ctx, "FIN-7KQ2MX")
	require.NoError(t, err)
	require.Equal(t, a.ID, byIdent.ID)

	exists, err := s.Accounts().ExistsIdentifier(ctx, "FIN-7KQ2MX")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = s.Accounts().ExistsIdentifier(ctx, "FIN-222222")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = s.Accounts().GetByIdentifier(ctx, "FIN-222222")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testAccountsUniqueConstraints(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Accounts().Create(ctx, newAccount(domain.DepartmentIT, "a@example.com", "IT-AAAAAA")))

	err := s.Accounts().Create(ctx, newAccount(domain.DepartmentHR, "a@example.com", "HR-BBBBBB"))
	require.ErrorIs(t, err, store.ErrDuplicateEmail)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	err = s.Accounts().Create(ctx, newAccount(domain.DepartmentIT, "b@example.com", "IT-AAAAAA"))
	require.ErrorIs(t, err, store.ErrDuplicateIdentifier)
	require.False(t, errors.Is(err, store.ErrDuplicateEmail))
}

func testResourcesListScopedAndOrdered(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	fin := newAccount(domain.DepartmentFinance, "fin@example.com", "FIN-AAAAAA")
	eng := newAccount(domain.DepartmentEngineering, "eng@example.com", "ENG-AAAAAA")
	require.NoError(t, s.Accounts().Create(ctx, fin))
	require.NoError(t, s.Accounts().Create(ctx, eng))

	base := time.Now().UTC().Add(-time.Hour)
	first := newResource(fin, "first.pdf", base)
	second := newResource(fin, "second.pdf", base.Add(time.Minute))
	other := newResource(eng, "other.pdf", base.Add(2*time.Minute))
	for _, r := range []domain.Resource{first, second, other} {
		require.NoError(t, s.Resources().Create(ctx, r))
	}

	got, err := s.Resources().ListByDepartment(ctx, domain.DepartmentFinance)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, second.ID, got[0].ID)
	require.Equal(t, first.ID, got[1].ID)
	require.Equal(t, fin.FullName, got[0].Owner.FullName)
	require.Equal(t, "FIN-AAAAAA", got[0].Owner.Identifier)

	empty, err := s.Resources().ListByDepartment(ctx, domain.DepartmentLegal)
	require.NoError(t, err)
	require.Empty(t, empty)

	one, err := s.Resources().GetByID(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DepartmentEngineering, one.Department)
	require.Equal(t, "other.pdf", one.OriginalName)
	require.Equal(t, int64(42), one.Size)

	_, err = s.Resources().GetByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testResourcesRequireExistingOwner(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	ghost := newAccount(domain.DepartmentSales, "ghost@example.com", "SAL-AAAAAA")
	err := s.Resources().Create(ctx, newResource(ghost, "x.pdf", time.Now().UTC()))
	require.Error(t, err)
	require.False(t, errors.Is(err, store.ErrAlreadyExists))
}

func testRevokedSessions(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	a := newAccount(domain.DepartmentLegal, "l@example.com", "LEG-AAAAAA")
	require.NoError(t, s.Accounts().Create(ctx, a))

	revoked, err := s.RevokedSessions().IsRevoked(ctx, "jti-live")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, s.RevokedSessions().Revoke(ctx, "jti-live", a.ID, time.Now().Add(time.Hour)))
	require.NoError(t, s.RevokedSessions().Revoke(ctx, "jti-live", a.ID, time.Now().Add(time.Hour)))
	require.NoError(t, s.RevokedSessions().Revoke(ctx, "jti-old", a.ID, time.Now().Add(-time.Hour)))

	revoked, err = s.RevokedSessions().IsRevoked(ctx, "jti-live")
	require.NoError(t, err)
	require.True(t, revoked)

	n, err := s.RevokedSessions().DeleteExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	revoked, err = s.RevokedSessions().IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	require.False(t, revoked)

	revoked, err = s.RevokedSessions().IsRevoked(ctx, "jti-live")
	require.NoError(t, err)
	require.True(t, revoked)
}

func testWithTxRollsBackOnError(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	boom := errors.New("boom")
	a := newAccount(domain.DepartmentOperations, "ops@example.com", "OPS-AAAAAA")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Accounts().Create(ctx, a))

		_, err := tx.Tx(ctx)
		require.Error(t, err, "nested transactions are not supported")
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Accounts().GetByID(ctx, a.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().Create(ctx, a)
	}))

	_, err = s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
}
