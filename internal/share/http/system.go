package http

import (
	"net/http"
	"os"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/blob"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/pkg/httpx"
	"github.com/aussiebroadwan/deptshare/pkg/jwtx"
	"github.com/aussiebroadwan/deptshare/pkg/sharesdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	sharesdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, sharesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint checking the database, the signing keys and the upload directory
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	sharesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	sharesdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
	blobs *blob.LocalStore,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &sharesdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
			Storage:  "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if fi, err := os.Stat(blobs.Dir()); err != nil || !fi.IsDir() {
			checks.Storage = "error: upload directory unavailable"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, sharesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// JWKSHandler exposes the keys that verify session tokens.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify session tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	sharesdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, sharesdk.JWKSResponse(keys.PublicJWKS()))
	}
}
