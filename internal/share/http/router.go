package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/blob"
	"github.com/aussiebroadwan/deptshare/internal/share/service"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/pkg/httpx"
	"github.com/aussiebroadwan/deptshare/pkg/jwtx"
	"github.com/aussiebroadwan/deptshare/pkg/slogx"

	_ "github.com/aussiebroadwan/deptshare/api/share" // Swagger docs
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	blobs          *blob.LocalStore
	AccountService *service.AccountService
	SessionService *service.SessionService
	FileService    *service.FileService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	blobs *blob.LocalStore,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		blobs:        blobs,
		logger:       logger,
	}

	// Set default middleware chain. Metrics wraps the mux directly so it can
	// read the matched pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.MetricsMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerFiles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			deptshare File Sharing API
//	@version		0.1.0
//	@description	Department scoped file sharing. Accounts register into one department and log in with a generated identifier.
//	@description
//	@description				Files are visible to every account of the uploader's department and to nobody else.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/deptshare
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /v1/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn verifies the bearer token and rejects logged out sessions.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.verifier, r.SessionService.CheckRevoked)
}

func (r *Router) registerAccounts() {
	r.Mux.Handle("POST /v1/register", &RegisterHandler{AccountService: r.AccountService})
	r.Mux.Handle("POST /v1/login", &LoginHandler{SessionService: r.SessionService})
	r.Mux.Handle("GET /v1/departments", DepartmentsHandler())

	r.Mux.Handle("POST /v1/logout", httpx.Chain(&LogoutHandler{SessionService: r.SessionService}, r.authn()))
	r.Mux.Handle("GET /v1/me", httpx.Chain(&MeHandler{AccountService: r.AccountService}, r.authn()))
}

func (r *Router) registerFiles() {
	h := &FilesHandler{FileService: r.FileService}

	r.Mux.Handle("GET /v1/files", httpx.Chain(http.HandlerFunc(h.HandleList), r.authn()))
	r.Mux.Handle("POST /v1/files", httpx.Chain(http.HandlerFunc(h.HandleUpload), r.authn()))
	r.Mux.Handle("GET /v1/files/{id}", httpx.Chain(http.HandlerFunc(h.HandleGet), r.authn()))
	r.Mux.Handle("GET /v1/files/{id}/content", httpx.Chain(http.HandlerFunc(h.HandleContent), r.authn()))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.blobs))
	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
