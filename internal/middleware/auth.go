package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/iyunix/go-chat/internal/logger"
)

// TokenVerifier resolves a session token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Identity resolves the caller from a bearer token or the session cookie.
// Requests without a valid token continue unauthenticated; procedures decide.
func Identity(verifier TokenVerifier, cookieName string, log logger.Logger) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				log.Debug("session token rejected", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// WithUserID stores the authenticated user id on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFrom returns the authenticated user id, or "" for anonymous callers.
func UserIDFrom(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}
