package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/config"
)

// ContextKey is a dedicated type for context keys to avoid collisions.
type ContextKey string

// UserIDKey is the key under which the authenticated user's id is stored in
// the request context.
const UserIDKey ContextKey = "userID"

// JWTMiddleware verifies the bearer token on protected routes and attaches
// the caller's user id to the request context. The token is read from the
// Authorization header ("Bearer {token}") or from the legacy x-auth-token
// header. A missing or invalid token yields 401 and the handler never runs.
func JWTMiddleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
				return
			}

			claims, err := ParseToken(tokenString, *cfg)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("Token is not valid", err))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	return r.Header.Get("x-auth-token")
}

// GetUserIDFromContext retrieves the authenticated user id set by the
// middleware. The second return value is false when the request did not pass
// through JWTMiddleware.
func GetUserIDFromContext(ctx context.Context) (int32, bool) {
	userID, ok := ctx.Value(UserIDKey).(int32)
	return userID, ok
}
