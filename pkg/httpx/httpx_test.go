package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/deptshare/pkg/httpx"
	"github.com/aussiebroadwan/deptshare/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newKeyManager(t *testing.T) *jwtx.KeyManager {
	t.Helper()
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "test", NumKeys: 1})
	require.NoError(t, err)
	return km
}

func signed(t *testing.T, km *jwtx.KeyManager) (string, jwtx.Claims) {
	t.Helper()
	c := jwtx.NewSessionClaims("acct-1", "FIN-ABCDEF", "Finance", "F", "test", time.Minute, time.Now())
	tok, err := km.Sign(c)
	require.NoError(t, err)
	return tok, c
}

func TestAuthnMiddleware(t *testing.T) {
	km := newKeyManager(t)
	token, claims := signed(t, km)

	var seen jwtx.Claims
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		seen = c
		require.Equal(t, "acct-1", httpx.AccountIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}), httpx.AuthnMiddleware(km.Verifier))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, claims.ID, seen.ID)
		require.Equal(t, "Finance", seen.Department)
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"empty token":    "Bearer ",
		"garbage token":  "Bearer not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), `Bearer error="invalid_token"`))
		})
	}
}

func TestAuthnMiddlewareRunsChecks(t *testing.T) {
	km := newKeyManager(t)
	token, claims := signed(t, km)

	revoked := func(_ context.Context, c jwtx.Claims) error {
		if c.ID == claims.ID {
			return errors.New("revoked")
		}
		return nil
	}

	called := false
	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }),
		httpx.AuthnMiddleware(km.Verifier, revoked))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"ok": "yes"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, httpx.DecodeJSON(httptest.NewRecorder(), req, 1024, &dst))
	require.Equal(t, "x", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	require.Error(t, httpx.DecodeJSON(httptest.NewRecorder(), req, 1024, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("a", 100)+`"}`))
	require.Error(t, httpx.DecodeJSON(httptest.NewRecorder(), req, 16, &dst))
}

func TestRouteLabel(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/files/01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV/content", nil)
	require.Equal(t, httpx.UnmatchedRoute, httpx.RouteLabel(req))

	req.Pattern = "GET /v1/files/{id}/content"
	require.Equal(t, "/v1/files/{id}/content", httpx.RouteLabel(req))

	req.Pattern = "/swagger/"
	require.Equal(t, "/swagger/", httpx.RouteLabel(req))
}

// requestCount reads deptshare_http_requests_total for one label set.
func requestCount(t *testing.T, method, path, status string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "deptshare_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["method"] == method && labels["path"] == path && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetricsMiddlewareLabelsByRoute(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/files/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := httpx.Chain(mux, httpx.MetricsMiddleware())

	unmatchedBefore := requestCount(t, http.MethodGet, httpx.UnmatchedRoute, "404")
	routedBefore := requestCount(t, http.MethodGet, "/v1/files/{id}", "204")

	for _, path := range []string{"/junk-a", "/junk-b", "/v1/files/x/y/z"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	for _, id := range []string{"one", "two"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/files/"+id, nil))
	}

	require.Equal(t, unmatchedBefore+3, requestCount(t, http.MethodGet, httpx.UnmatchedRoute, "404"))
	require.Equal(t, routedBefore+2, requestCount(t, http.MethodGet, "/v1/files/{id}", "204"))
	require.Zero(t, requestCount(t, http.MethodGet, "/junk-a", "404"))
	require.Zero(t, requestCount(t, http.MethodGet, "/v1/files/one", "204"))
}

func TestMetricsMiddlewarePassesThrough(t *testing.T) {
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), httpx.MetricsMiddleware())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
}
