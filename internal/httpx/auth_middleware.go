package httpx

import (
	"net/http"
	"strings"

	"bookreview/internal/auth"
)

// AuthMiddleware rejects requests without a valid bearer token and puts
// the token's user id into the request context. The id is trusted as-is
// for downstream ownership checks; the user is not re-read from storage.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				JSONMessage(w, http.StatusUnauthorized, "No valid token.")
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONMessage(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			ctx := ContextWithUser(r.Context(), claims.User.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware resolves the acting user when a valid token is
// present and passes the request through anonymously otherwise. It never
// rejects.
func OptionalAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if claims, err := auth.ParseToken(secret, token); err == nil {
					r = r.WithContext(ContextWithUser(r.Context(), claims.User.ID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}
