package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"infrawatch/internal/config"
	"infrawatch/internal/handlers"
	"infrawatch/internal/logger"
	"infrawatch/internal/metrics"
	"infrawatch/internal/middleware"
	"infrawatch/internal/notify"
	"infrawatch/internal/session"
	"infrawatch/internal/storage"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>dashboard</html>"), 0644))

	log := logger.New(t.TempDir())
	uploads, err := storage.NewTempStore(t.TempDir(), log)
	require.NoError(t, err)

	return Setup(&handlers.Deps{
		Config: &config.Config{
			Port:            8080,
			ModelPath:       "models/absent.onnx",
			MaxUploadMB:     10,
			ConfThreshold:   0.25,
			IOUThreshold:    0.45,
			StaticDirectory: staticDir,
		},
		Logger:   log,
		Sessions: session.NewManager(),
		Uploads:  uploads,
		Metrics:  metrics.New(),
		Notifier: notify.Nop{},
	})
}

func TestRoutes_HealthAndSessionCookie(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, middleware.CookieName, cookies[0].Name)
}

func TestRoutes_Metrics(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "infrawatch_scans_total")
}

func TestRoutes_DashboardPage(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "dashboard")
}

func TestRoutes_UnknownPage(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_SessionStats(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"total_scans":0`)
}
