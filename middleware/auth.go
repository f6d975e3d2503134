package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/session"
	"go-storefront/utils"
)

// RequireAuth admits a request only when its Authorization header carries a
// token the session store knows. "Bearer " is optional.
func RequireAuth(sessions session.Store, logger *utils.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := utils.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if err := sessions.Lookup(r.Context(), token); err != nil {
				logger.LogSecurityEvent("unknown_token", r.RemoteAddr, map[string]interface{}{
					"path": r.URL.Path,
				})
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
