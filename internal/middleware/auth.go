// Package middleware provides the HTTP middleware chain: CORS, request
// logging, metrics and bearer-token authentication.
package middleware

import (
	"net/http"
	"strings"

	"github.com/feliks3/asset-finance-backend/internal/errors"
	"github.com/feliks3/asset-finance-backend/internal/httputil"
	"github.com/feliks3/asset-finance-backend/internal/logging"
	"github.com/feliks3/asset-finance-backend/internal/token"
)

// skipPaths are served without authentication.
var skipPaths = map[string]bool{
	"/api/auth/register": true,
	"/api/auth/login":    true,
	"/healthz":           true,
	"/metrics":           true,
}

// Auth verifies the Authorization bearer token on every request outside
// skipPaths and threads the authenticated user id through the request
// context.
func Auth(issuer *token.Issuer, log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			raw := bearerToken(r)
			if raw == "" {
				httputil.WriteServiceError(w, errors.MissingToken())
				return
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				log.WithContext(r.Context()).WithError(err).Warn("rejected invalid token")
				httputil.WriteServiceError(w, errors.InvalidToken(err))
				return
			}

			ctx := logging.WithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}
