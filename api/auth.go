package api

import "net/http"

// Authentication happens at the fronting gateway, which verifies the
// caller's token and forwards the verified identity in these headers.
// The service trusts them as-is and never sees credentials.
const (
	userIDHeader    = "X-User-Id"
	userEmailHeader = "X-User-Email"
)

type principal struct {
	ID    string
	Email string
}

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := principal{
			ID:    r.Header.Get(userIDHeader),
			Email: r.Header.Get(userEmailHeader),
		}
		if p.ID == "" {
			a.writeError(w, http.StatusUnauthorized, AuthError, "Authorization required")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithPrincipal(r.Context(), p)))
	})
}
