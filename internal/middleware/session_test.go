package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_AssignsCookie(t *testing.T) {
	var seen string
	handler := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	require.Len(t, seen, 32) // 128 bits hex-encoded

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, CookieName, cookies[0].Name)
	require.Equal(t, seen, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func TestSession_ReusesExistingCookie(t *testing.T) {
	var seen string
	handler := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "existing-session"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "existing-session", seen)
	require.Empty(t, rec.Result().Cookies())
}

func TestSessionID_WithoutMiddleware(t *testing.T) {
	require.Empty(t, SessionID(httptest.NewRequest(http.MethodGet, "/", nil)))
}
