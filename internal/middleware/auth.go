package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vallasmx/campaign-analytics-backend/internal/auth"
)

type contextKey string

// UserKey holds the authenticated username in the request context.
const UserKey contextKey = "user"

// RequireAuth validates the Authorization bearer token and stores the token
// subject in the request context. Any failure is a plain 401; the reason is
// never exposed.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				unauthorized(w)
				return
			}

			subject, err := tokens.Validate(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
}

// Username extracts the authenticated username from a request context.
func Username(ctx context.Context) string {
	if v, ok := ctx.Value(UserKey).(string); ok {
		return v
	}
	return ""
}
