package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/blob"
	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	sharehttp "github.com/aussiebroadwan/deptshare/internal/share/http"
	"github.com/aussiebroadwan/deptshare/internal/share/service"
	"github.com/aussiebroadwan/deptshare/internal/share/store/drivers/sqlite"
	"github.com/aussiebroadwan/deptshare/pkg/cryptox"
	"github.com/aussiebroadwan/deptshare/pkg/jwtx"
	"github.com/aussiebroadwan/deptshare/pkg/sharesdk"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testIssuer = "deptshare-test"

type testEnv struct {
	srv    *httptest.Server
	client *sharesdk.SDKClient
}

func newTestEnv(t *testing.T, maxFileSize int64) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "share.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	blobs, err := blob.NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, NumKeys: 2})
	require.NoError(t, err)

	creds := service.NewCredentialVerifier(st, &cryptox.PasswordHasher{Cost: bcrypt.MinCost})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := sharehttp.NewRouter(km.KeySet, km.Verifier, "test", st, blobs, logger)
	router.AccountService = &service.AccountService{
		Store:       st,
		Credentials: creds,
		Allocator:   &service.IdentityAllocator{},
	}
	router.SessionService = &service.SessionService{
		Store:       st,
		Credentials: creds,
		KeyManager:  km,
		Issuer:      testIssuer,
		TTL:         time.Hour,
	}
	router.FileService = &service.FileService{
		Store:       st,
		Blobs:       blobs,
		MaxFileSize: maxFileSize,
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, client: sharesdk.NewSDKClient(srv.URL)}
}

func (e *testEnv) signup(t *testing.T, name, email, dept string) *sharesdk.Session {
	t.Helper()

	reg, err := e.client.Register(t.Context(), sharesdk.RegisterRequest{
		FullName:        name,
		Email:           email,
		Department:      dept,
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)

	sess, err := e.client.AuthenticateWithPassword(t.Context(), reg.Identifier, "secret123")
	require.NoError(t, err)
	return sess
}

func TestDepartments(t *testing.T) {
	env := newTestEnv(t, 0)

	resp, err := env.client.ListDepartments(t.Context())
	require.NoError(t, err)
	require.Len(t, resp.Departments, 8)
	require.Equal(t, sharesdk.Department{Name: "HR", Code: "HR"}, resp.Departments[0])
	require.Contains(t, resp.Departments, sharesdk.Department{Name: "Finance", Code: "FIN"})
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := t.Context()

	req := sharesdk.RegisterRequest{
		FullName:        "Grace Hopper",
		Email:           "Grace@Example.com",
		Department:      "Finance",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}

	reg, err := env.client.Register(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "User registered successfully", reg.Message)
	require.True(t, strings.HasPrefix(reg.Identifier, "FIN-"), reg.Identifier)
	require.Equal(t, reg.Identifier, reg.User.Identifier)
	require.Equal(t, "grace@example.com", reg.User.Email)
	require.Equal(t, "Finance", reg.User.Department)

	req.Email = "GRACE@example.com"
	_, err = env.client.Register(ctx, req)
	require.ErrorIs(t, err, sharesdk.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, 0)

	_, err := env.client.Register(t.Context(), sharesdk.RegisterRequest{
		FullName:        "Grace Hopper",
		Email:           "grace@example.com",
		Department:      "Research",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	})

	var apiErr *sharesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, sharesdk.ErrorCodeValidation, apiErr.Code)
	require.Equal(t, map[string]string{
		"department":       "Please select a department",
		"confirm_password": "Passwords don't match",
	}, apiErr.Details)
}

func TestRegisterRejectsMalformedJSON(t *testing.T) {
	env := newTestEnv(t, 0)

	resp, err := http.Post(env.srv.URL+"/v1/register", "application/json", strings.NewReader(`{"full_name":`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := t.Context()

	sess := env.signup(t, "Ada Lovelace", "ada@example.com", "Engineering")
	identifier := sess.Account().Identifier

	_, errBadPassword := env.client.Login(ctx, sharesdk.LoginRequest{Identifier: identifier, Password: "wrong-password"})
	_, errUnknown := env.client.Login(ctx, sharesdk.LoginRequest{Identifier: "ENG-ZZZZZZ", Password: "secret123"})

	require.ErrorIs(t, errBadPassword, sharesdk.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, sharesdk.ErrInvalidCredentials)
	require.Equal(t, errBadPassword.Error(), errUnknown.Error())
}

func TestMe(t *testing.T) {
	env := newTestEnv(t, 0)
	sess := env.signup(t, "Ada Lovelace", "ada@example.com", "Engineering")

	me, err := sess.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", me.FullName)
	require.Equal(t, "Engineering", me.Department)
	require.Equal(t, sess.Account().Identifier, me.Identifier)
}

func TestFilesAreScopedToDepartment(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := t.Context()

	finance := env.signup(t, "Grace Hopper", "grace@example.com", "Finance")
	financeToo := env.signup(t, "Alan Turing", "alan@example.com", "Finance")
	engineering := env.signup(t, "Ada Lovelace", "ada@example.com", "Engineering")

	up, err := finance.UploadFile(ctx, "Budget 2025.xlsx", strings.NewReader("q1,q2\n1,2\n"))
	require.NoError(t, err)
	require.Equal(t, "File uploaded successfully", up.Message)
	require.Equal(t, "Budget 2025.xlsx", up.File.OriginalName)
	require.Equal(t, "Finance", up.File.Department)
	require.Equal(t, "Grace Hopper", up.File.Owner.FullName)
	require.NotContains(t, up.File.StoredName, "Budget")

	// Same department sees it.
	list, err := financeToo.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, list.Files, 1)
	require.Equal(t, up.File.ID, list.Files[0].ID)

	var buf bytes.Buffer
	_, err = financeToo.DownloadFile(ctx, up.File.ID, &buf)
	require.NoError(t, err)
	require.Equal(t, "q1,q2\n1,2\n", buf.String())

	// Other departments do not.
	list, err = engineering.ListFiles(ctx)
	require.NoError(t, err)
	require.Empty(t, list.Files)

	_, err = engineering.GetFile(ctx, up.File.ID)
	require.ErrorIs(t, err, sharesdk.ErrAccessDenied)

	_, err = engineering.DownloadFile(ctx, up.File.ID, io.Discard)
	require.ErrorIs(t, err, sharesdk.ErrAccessDenied)

	_, err = finance.GetFile(ctx, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	require.ErrorIs(t, err, sharesdk.ErrFileNotFound)
}

func TestDownloadIsAnAttachment(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := t.Context()

	sess := env.signup(t, "Grace Hopper", "grace@example.com", "Finance")
	up, err := sess.UploadFile(ctx, "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, env.srv.URL+"/v1/files/"+up.File.ID+"/content", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, `attachment; filename=notes.txt`, resp.Header.Get("Content-Disposition"))
	require.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
}

func TestUploadRejections(t *testing.T) {
	env := newTestEnv(t, 16)
	ctx := t.Context()
	sess := env.signup(t, "Grace Hopper", "grace@example.com", "Finance")

	_, err := sess.UploadFile(ctx, "run.exe", strings.NewReader("MZ"))
	require.ErrorIs(t, err, sharesdk.ErrInvalidFileType)

	_, err = sess.UploadFile(ctx, "big.txt", strings.NewReader(strings.Repeat("x", 100)))
	require.ErrorIs(t, err, sharesdk.ErrFileTooLarge)

	_, err = sess.UploadFile(ctx, "empty.txt", strings.NewReader(""))
	require.ErrorIs(t, err, sharesdk.ErrNoFile)

	// A form without the file field.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, env.srv.URL+"/v1/files", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	list, err := sess.ListFiles(ctx)
	require.NoError(t, err)
	require.Empty(t, list.Files)
}

func TestUnauthenticatedRequests(t *testing.T) {
	env := newTestEnv(t, 0)

	for _, path := range []string{"/v1/files", "/v1/me", "/v1/files/01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"} {
		resp, err := http.Get(env.srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		require.True(t, strings.HasPrefix(resp.Header.Get("WWW-Authenticate"), `Bearer error="invalid_token"`), path)
	}

	_, err := env.client.NewSessionFromToken("not.a.jwt", 60).ListFiles(t.Context())
	require.ErrorIs(t, err, sharesdk.ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := t.Context()

	sess := env.signup(t, "Ada Lovelace", "ada@example.com", "Engineering")
	token := sess.AccessToken()

	require.NoError(t, sess.Logout(ctx))

	_, err := env.client.NewSessionFromToken(token, 3600).ListFiles(ctx)
	require.ErrorIs(t, err, sharesdk.ErrInvalidToken)
}

func TestSystemEndpoints(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := t.Context()

	live, err := env.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := env.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, &sharesdk.HealthChecks{Database: "ok", Signer: "ok", Storage: "ok"}, ready.Checks)

	jwks, err := env.client.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 2)

	resp, err := http.Get(env.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	env := newTestEnv(t, 0)

	long := strings.Repeat("p", 80)
	_, err := env.client.Register(t.Context(), sharesdk.RegisterRequest{
		FullName:        "Grace Hopper",
		Email:           "grace@example.com",
		Department:      "Finance",
		Password:        long,
		ConfirmPassword: long,
	})

	var apiErr *sharesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, sharesdk.ErrorCodeValidation, apiErr.Code)
	require.Equal(t, map[string]string{"password": "Password must be at most 72 bytes"}, apiErr.Details)

	// Under the rune limit but over the byte limit.
	wide := strings.Repeat("é", 40)
	_, err = env.client.Register(t.Context(), sharesdk.RegisterRequest{
		FullName:        "Grace Hopper",
		Email:           "grace@example.com",
		Department:      "Finance",
		Password:        wide,
		ConfirmPassword: wide,
	})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, map[string]string{"password": "Password must be at most 72 bytes"}, apiErr.Details)
}

func TestClientSuppliedDepartmentIsIgnored(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := t.Context()

	finance := env.signup(t, "Grace Hopper", "grace@example.com", "Finance")
	engineering := env.signup(t, "Ada Lovelace", "ada@example.com", "Engineering")

	_, err := engineering.UploadFile(ctx, "design.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	// Upload with a forged department field alongside the file.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("department", "Engineering"))
	fw, err := mw.CreateFormFile("file", "ledger.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, env.srv.URL+"/v1/files?department=Engineering", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+finance.AccessToken())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var up sharesdk.UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))
	require.Equal(t, "Finance", up.File.Department)

	stored, err := finance.GetFile(ctx, up.File.ID)
	require.NoError(t, err)
	require.Equal(t, "Finance", stored.Department)

	// Listing with a forged department query stays in Finance.
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, env.srv.URL+"/v1/files?department=Engineering", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+finance.AccessToken())

	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list sharesdk.FilesResponse
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list.Files, 1)
	require.Equal(t, up.File.ID, list.Files[0].ID)
	for _, f := range list.Files {
		require.Equal(t, "Finance", f.Department)
	}

	// Engineering still sees only its own file.
	engList, err := engineering.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, engList.Files, 1)
	require.Equal(t, "design.pdf", engList.Files[0].OriginalName)
}

func TestSDKDepartmentsMatchServer(t *testing.T) {
	want := make([]string, 0, len(domain.Departments()))
	for _, d := range domain.Departments() {
		want = append(want, d.String())
	}
	require.ElementsMatch(t, want, sharesdk.DepartmentNames())
}

func TestMetricsLabelUnknownPathsAsOneSeries(t *testing.T) {
	env := newTestEnv(t, 0)

	for _, path := range []string{"/junk-one", "/junk-two", "/junk-three"} {
		resp, err := http.Get(env.srv.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	resp, err := http.Get(env.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	exposition := string(raw)
	require.Contains(t, exposition, `deptshare_http_requests_total{method="GET",path="unmatched",status="404"}`)
	require.NotContains(t, exposition, "junk-")
}
