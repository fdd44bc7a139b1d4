package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// sessionCookie names the cookie that keys carts and wishlists.
const sessionCookie = "session_id"

// sessionKey is the context key for the session ID.
type sessionKey struct{}

// Session assigns each visitor a session ID. An existing cookie is reused;
// otherwise a fresh ID is minted and set on the response.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sessionID = c.Value
		} else {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   60 * 60 * 24 * 30,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session ID assigned by Session, or "" when the
// middleware is not in the chain.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
