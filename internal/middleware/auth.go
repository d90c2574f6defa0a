package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/daybyday/internal/telemetry/tracing"
)

const AuthTokenHeader = "X-DAYBYDAY-TOKEN"

// AuthMiddlewareHandler guards the routes that trigger upstream calls or
// expose sync history. Everything else is open.
type AuthMiddlewareHandler struct {
	adminToken             string
	protectedPaths         map[string]bool
	protectedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(adminToken string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		adminToken: adminToken,
		protectedPaths: map[string]bool{
			"/gymstats/refresh": true,
			"/gymstats/syncs":   true,
		},
		protectedPathsPrefixes: []string{
			"/gymstats/debug/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsProtected(path string) bool {
	if h.protectedPaths[path] {
		return true
	}
	for _, prefix := range h.protectedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if !h.pathIsProtected(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(AuthTokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			// an unset admin token locks the protected routes
			if h.adminToken == "" || subtle.ConstantTimeCompare([]byte(authToken), []byte(h.adminToken)) != 1 {
				log.Warnf("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-auth-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
