// internal/api/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/preilly17/VacationSync-sub009/internal/service"
)

type contextKey string

const userIDKey contextKey = "user_id"

// CookieName is the session cookie the auth middleware reads.
const CookieName = "session_token"

// Auth resolves the session cookie and, when valid, injects the user id into
// the request context. Requests without a session pass through anonymous.
func Auth(authService service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				// Invalid or expired session; clear the cookie.
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID extracts the authenticated user id from context.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// WithUserID returns a context carrying the given user id, as Auth would set
// it. Intended for handler tests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
