package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/domainerr"
)

type contextKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

// RequireAuth rejects requests without a valid bearer token before they reach
// next.
func RequireAuth(verifier Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.Warn("unauthorized access - missing token", zap.String("path", r.URL.Path))
				writeUnauthorized(w, "Access denied. No token provided.")
				return
			}

			principal, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("unauthorized access - invalid token", zap.String("path", r.URL.Path), zap.Error(err))
				message := "Invalid token"
				if de, ok := domainerr.As(err); ok {
					message = de.Message
				}
				writeUnauthorized(w, message)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
