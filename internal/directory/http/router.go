package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openummah/masjidhub/internal/directory/service"
	"github.com/openummah/masjidhub/internal/directory/store"
	"github.com/openummah/masjidhub/pkg/httpx"
	"github.com/openummah/masjidhub/pkg/jwtx"
	"github.com/openummah/masjidhub/pkg/slogx"
)

// LoginPath is where the page gate sends unauthenticated browsers.
const LoginPath = "/login"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	secureCookie bool

	store             store.Store
	AuthService       *service.AuthService
	MosqueService     *service.MosqueService
	SalahTimesService *service.SalahTimesService
	EventService      *service.EventService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	secureCookie bool,
	metrics *httpx.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		secureCookie: secureCookie,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metrics.Middleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMosques()
	r.registerSalahTimes()
	r.registerEvents()
	r.registerPages()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:  r.AuthService,
		SecureCookie: r.secureCookie,
	}

	// credential endpoints take the strict limit: they are the brute-force
	// surface
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
}

func (r *Router) registerMosques() {
	h := &MosqueHandler{MosqueService: r.MosqueService}

	r.Mux.Handle("GET /api/mosques",
		httpx.Chain(http.HandlerFunc(h.HandleSearch),
			httpx.RateLimitByIP(httpx.PublicLimit),
		))
	r.Mux.Handle("GET /api/mosques/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		))
	r.Mux.Handle("POST /api/mosques",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("PUT /api/mosques/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
}

func (r *Router) registerSalahTimes() {
	h := &SalahTimesHandler{SalahTimesService: r.SalahTimesService}

	r.Mux.Handle("GET /api/salah-times",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		))
	r.Mux.Handle("POST /api/salah-times",
		httpx.Chain(http.HandlerFunc(h.HandleUpsert),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
}

func (r *Router) registerEvents() {
	h := &EventHandler{EventService: r.EventService}

	r.Mux.Handle("GET /api/events",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		))
	r.Mux.Handle("POST /api/events",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
}

func (r *Router) registerPages() {
	pages := NewPageHandler()

	r.Mux.Handle("GET "+LoginPath, http.HandlerFunc(pages.HandleLogin))

	// everything under /admin sits behind the redirect gate
	r.Mux.Handle("GET /admin",
		httpx.Chain(http.HandlerFunc(pages.HandleAdmin),
			httpx.GateMiddleware(r.verifier, LoginPath),
		))
	r.Mux.Handle("GET /admin/",
		httpx.Chain(http.HandlerFunc(pages.HandleAdmin),
			httpx.GateMiddleware(r.verifier, LoginPath),
		))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", httpx.MetricsHandler())
}
