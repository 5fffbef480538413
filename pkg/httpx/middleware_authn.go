package httpx

import (
	"net/http"

	"github.com/openummah/masjidhub/pkg/jwtx"
	"github.com/openummah/masjidhub/pkg/slogx"
)

// AuthTokenCookie is the http-only cookie carrying the bearer token for
// same-origin navigation. The route gate reads it before falling back to the
// Authorization header.
const AuthTokenCookie = "authToken"

// AuthnMiddleware guards JSON API endpoints. A missing or invalid token gets
// a 401 body; a valid token has its identity injected into the request
// context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := tokenFromRequest(r)
			if token == "" {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx = ContextWithIdentity(ctx, claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GateMiddleware guards server-rendered pages under a protected path prefix.
// Every verification failure, absent and invalid tokens alike, redirects to
// the login page; a valid token has its identity injected and the request
// proceeds. The gate is binary: any valid token passes regardless of role.
func GateMiddleware(v jwtx.Verifier, loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := tokenFromRequest(r)
			if token == "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				log.Warn("gate rejected token", "err", err)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx = ContextWithIdentity(ctx, claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest prefers the http-only cookie set at login, falling back
// to an Authorization bearer header for API clients.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AuthTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return jwtx.ExtractBearer(r)
}

func writeUnauthorized(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"error":   "Authentication required",
	})
}
