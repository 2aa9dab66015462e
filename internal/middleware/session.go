package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// CookieName identifies the session cookie.
const CookieName = "session_id"

type contextKey int

const sessionIDKey contextKey = iota

// Session assigns a session cookie to first-time visitors and puts the
// session ID on the request context for handlers.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
			id = cookie.Value
		} else {
			id = newSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session ID stored by the middleware, or "" when the
// request did not pass through it.
func SessionID(r *http.Request) string {
	if id, ok := r.Context().Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// newSessionID returns 128 random bits as hex.
func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// reasonable fallback for identifiers.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
