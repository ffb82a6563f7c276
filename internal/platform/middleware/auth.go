package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// SessionValidator defines the interface for validating ATM session tokens.
type SessionValidator interface {
	ValidateSession(token string) (accountID string, err error)
}

type contextKeyAccountID struct{}

// ContextKeyAccountID is exported for use in handlers.
var ContextKeyAccountID = contextKeyAccountID{}

// GetAccountID retrieves the authenticated account ID from the context.
func GetAccountID(ctx context.Context) string {
	id, ok := ctx.Value(ContextKeyAccountID).(string)
	if !ok {
		return ""
	}
	return id
}

// RequireSession rejects requests without a valid bearer session token and
// places the account ID in the request context for handlers.
func RequireSession(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			accountID, err := validator.ValidateSession(token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected session token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAccountID, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"invalid or expired session"}`))
}
