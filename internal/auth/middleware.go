package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"complianceai/internal/models"
)

// UserResolver looks the token subject up so requests from deleted
// accounts are rejected even while their tokens are still unexpired.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth admits a request only when it carries a valid bearer token
// whose subject still resolves to a user. The rejection message tells
// apart a missing, malformed, expired and forged token; the status is
// 401 for all four.
func RequireAuth(tokens *TokenService, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				unauthorized(w, ErrTokenMissing)
				return
			}
			raw := strings.TrimPrefix(h, "Bearer ")
			uid, err := tokens.Validate(raw)
			if err != nil {
				unauthorized(w, err)
				return
			}
			u, err := users.FindByID(r.Context(), uid)
			if err != nil {
				unauthorized(w, ErrTokenMalformed)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), IdentityOf(u))))
		})
	}
}

// RequireRole rejects with 403 when the authenticated user's role is not
// in the allowed set. Must run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !FromContext(r.Context()).HasRole(roles...) {
				writeMessage(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	msg := "unauthorized"
	switch {
	case errors.Is(err, ErrTokenMissing):
		msg = "token is missing"
	case errors.Is(err, ErrTokenExpired):
		msg = "token has expired"
	case errors.Is(err, ErrBadSignature):
		msg = "token signature is invalid"
	case errors.Is(err, ErrTokenMalformed):
		msg = "token is invalid"
	}
	writeMessage(w, http.StatusUnauthorized, msg)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
