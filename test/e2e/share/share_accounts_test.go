package share_test

import (
	"testing"

	"github.com/aussiebroadwan/deptshare/pkg/sharesdk"
	"github.com/stretchr/testify/require"
)

// TestRegistrationRules covers duplicate emails and credential failures.
func TestRegistrationRules(t *testing.T) {
	baseURL, cleanup := setupShareContainer(t, nil)
	defer cleanup()

	ctx := t.Context()
	client := sharesdk.NewSDKClient(baseURL)

	session := registerAndLogin(t, client, "Grace Hopper", "grace@example.com", "Finance")

	_, err := client.Register(ctx, sharesdk.RegisterRequest{
		FullName:        "Someone Else",
		Email:           "GRACE@example.com",
		Department:      "Sales",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.ErrorIs(t, err, sharesdk.ErrEmailTaken)

	_, err = client.Login(ctx, sharesdk.LoginRequest{
		Identifier: session.Account().Identifier,
		Password:   "wrong-password",
	})
	require.ErrorIs(t, err, sharesdk.ErrInvalidCredentials)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "Finance", me.Department)

	depts, err := client.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, depts.Departments, 8)
}
