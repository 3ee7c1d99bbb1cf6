package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/pearlvault/backend/internal/logger"
	"github.com/pearlvault/backend/internal/model"
)

type contextKey string

const walletContextKey contextKey = "wallet"

// TokenValidator checks a session token and returns the wallet address it
// was issued for.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// NewAuthMiddleware returns middleware that requires a valid Bearer session
// token and puts the caller's wallet address in the request context.
func NewAuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			address, err := validator.Validate(parts[1])
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), walletContextKey, address)
			ctx = logger.WithWallet(ctx, address)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetWallet returns the wallet address stored by the auth middleware, or ""
// when the request is unauthenticated.
func GetWallet(ctx context.Context) string {
	address, _ := ctx.Value(walletContextKey).(string)
	return address
}

// GetSession builds the caller's wallet session from the request context.
func GetSession(ctx context.Context) model.WalletSession {
	address := GetWallet(ctx)
	return model.WalletSession{Connected: address != "", Address: address}
}
