package sharesdk_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/deptshare/pkg/sharesdk"
	"github.com/stretchr/testify/require"
)

func validRegister() sharesdk.RegisterRequest {
	return sharesdk.RegisterRequest{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Department:      "Engineering",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	require.Nil(t, validRegister().Validate())

	req := validRegister()
	req.FullName = "A"
	req.Email = "not-an-email"
	req.Department = "Research"
	req.Password = "12345"
	req.ConfirmPassword = "54321"

	require.Equal(t, map[string]string{
		"full_name":        "Full name must be at least 2 characters",
		"email":            "Invalid email address",
		"department":       "Please select a department",
		"password":         "Password must be at least 6 characters",
		"confirm_password": "Passwords don't match",
	}, req.Validate())
}

func TestRegisterRequestPasswordMismatchOnly(t *testing.T) {
	req := validRegister()
	req.ConfirmPassword = "secret124"
	require.Equal(t, map[string]string{"confirm_password": "Passwords don't match"}, req.Validate())
}

func TestRegisterRequestPasswordTooLong(t *testing.T) {
	req := validRegister()
	req.Password = strings.Repeat("p", 73)
	req.ConfirmPassword = req.Password
	require.Equal(t, map[string]string{"password": "Password must be at most 72 bytes"}, req.Validate())

	req.Password = strings.Repeat("p", 72)
	req.ConfirmPassword = req.Password
	require.Nil(t, req.Validate())
}

func TestLoginRequestValidate(t *testing.T) {
	require.Nil(t, sharesdk.LoginRequest{Identifier: "FIN-7KQ2MX", Password: "x"}.Validate())
	require.Equal(t, map[string]string{
		"identifier": "Identifier is required",
		"password":   "Password is required",
	}, sharesdk.LoginRequest{}.Validate())
}

func TestWriteErrorRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sharesdk.ErrAccessDenied.WriteError(w)
	}))
	defer srv.Close()

	sess := sharesdk.NewSDKClient(srv.URL).NewSessionFromToken("token", 60)
	_, err := sess.GetFile(t.Context(), "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")

	require.ErrorIs(t, err, sharesdk.ErrAccessDenied)
	require.NotErrorIs(t, err, sharesdk.ErrFileNotFound)

	var apiErr *sharesdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "access denied", apiErr.Description)
}

func TestValidationErrorIsParsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sharesdk.ValidationErrorResponse{
			Code:    sharesdk.ErrorCodeValidation,
			Message: "invalid request",
			Details: map[string]string{"email": "Invalid email address"},
		})
	}))
	defer srv.Close()

	_, err := sharesdk.NewSDKClient(srv.URL).Register(t.Context(), validRegister())

	var apiErr *sharesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, sharesdk.ErrorCodeValidation, apiErr.Code)
	require.Equal(t, "Invalid email address", apiErr.Details["email"])
}

func TestUnparseableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := sharesdk.NewSDKClient(srv.URL).ListDepartments(t.Context())

	var apiErr *sharesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, sharesdk.ErrorCodeServerError, apiErr.Code)
}

func TestAuthenticateAndUpload(t *testing.T) {
	var gotAuth, gotName, gotBody string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/login", func(w http.ResponseWriter, r *http.Request) {
		var req sharesdk.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "FIN-7KQ2MX", req.Identifier)

		_ = json.NewEncoder(w).Encode(sharesdk.LoginResponse{
			AccessToken: "tok",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
			Account:     sharesdk.Account{Identifier: "FIN-7KQ2MX", Department: "Finance"},
		})
	})
	mux.HandleFunc("POST /v1/files", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotName, gotBody = hdr.Filename, string(b)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sharesdk.UploadResponse{
			Message: "File uploaded successfully",
			File:    sharesdk.File{ID: "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", OriginalName: hdr.Filename},
		})
	})
	mux.HandleFunc("POST /v1/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := sharesdk.NewSDKClient(srv.URL + "/")
	sess, err := client.AuthenticateWithPassword(t.Context(), "FIN-7KQ2MX", "secret123")
	require.NoError(t, err)
	require.Equal(t, "Finance", sess.Account().Department)
	require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt(), 5*time.Second)

	up, err := sess.UploadFile(t.Context(), "budget.xlsx", strings.NewReader("numbers"))
	require.NoError(t, err)
	require.Equal(t, "budget.xlsx", up.File.OriginalName)
	require.Equal(t, "Bearer tok", gotAuth)
	require.Equal(t, "budget.xlsx", gotName)
	require.Equal(t, "numbers", gotBody)

	require.NoError(t, sess.Logout(t.Context()))
	_, err = sess.ListFiles(t.Context())
	require.ErrorIs(t, err, sharesdk.ErrSessionExpired)
}

func TestExpiredSessionDoesNotCallServer(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	sess := sharesdk.NewSDKClient(srv.URL).NewSessionFromToken("tok", -1)
	_, err := sess.Me(t.Context())
	require.ErrorIs(t, err, sharesdk.ErrSessionExpired)
	require.False(t, called)
}

func TestDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/files/abc/content", r.URL.Path)
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	n, err := sharesdk.NewSDKClient(srv.URL).NewSessionFromToken("tok", 60).DownloadFile(t.Context(), "abc", &buf)
	require.NoError(t, err)
	require.EqualValues(t, 7, n)
	require.Equal(t, "payload", buf.String())
}
