package middleware

import (
	"context"
	"net/http"
	"strings"
)

// UserIDHeader carries the opaque user identifier. Authentication itself is
// out of scope for this service — a gateway in front of it validates the
// session and forwards the identity in this header.
const UserIDHeader = "X-User-ID"

// ctxKey is unexported so no other package can forge context values.
type ctxKey struct{}

// RequireUser extracts the caller's user id from the X-User-ID header and
// stores it in the request context. Requests without one are rejected with
// 401 before reaching any handler.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing ` + UserIDHeader + ` header"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

// UserID returns the user id stored by RequireUser, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
