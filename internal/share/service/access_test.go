package service

import (
	"testing"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/stretchr/testify/require"
)

func TestAccessPolicy(t *testing.T) {
	t.Parallel()

	var policy AccessPolicy
	fin := domain.Principal{AccountID: "a1", Department: domain.DepartmentFinance}
	eng := domain.Principal{AccountID: "a2", Department: domain.DepartmentEngineering}
	anon := domain.Principal{}
	forged := domain.Principal{AccountID: "a3", Department: "Research"}

	t.Run("authentication", func(t *testing.T) {
		require.True(t, policy.IsAuthenticated(fin))
		require.False(t, policy.IsAuthenticated(anon))
		require.False(t, policy.IsAuthenticated(forged))

		require.NoError(t, policy.RequireAuthenticated(fin))
		require.ErrorIs(t, policy.RequireAuthenticated(anon), ErrUnauthenticated)
		require.ErrorIs(t, policy.RequireAuthenticated(anon), ErrAuthFailure)
	})

	t.Run("listing is same-department only", func(t *testing.T) {
		require.True(t, policy.CanList(fin, domain.DepartmentFinance))
		require.False(t, policy.CanList(fin, domain.DepartmentEngineering))
		require.False(t, policy.CanList(anon, domain.DepartmentFinance))

		dept, err := policy.ListScope(eng)
		require.NoError(t, err)
		require.Equal(t, domain.DepartmentEngineering, dept)

		_, err = policy.ListScope(anon)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("uploads are stamped with the caller's department", func(t *testing.T) {
		dept, err := policy.AuthorizeUpload(fin)
		require.NoError(t, err)
		require.Equal(t, domain.DepartmentFinance, dept)

		_, err = policy.AuthorizeUpload(anon)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("reads stop at the department boundary", func(t *testing.T) {
		doc := domain.Resource{ID: "r1", Department: domain.DepartmentFinance}

		require.NoError(t, policy.AuthorizeRead(fin, doc))
		require.ErrorIs(t, policy.AuthorizeRead(eng, doc), ErrForbidden)
		require.ErrorIs(t, policy.AuthorizeRead(anon, doc), ErrUnauthenticated)
	})
}
