package routes

import (
	"net/http"

	"infrawatch/internal/handlers"
	"infrawatch/internal/middleware"
)

// Setup registers the API endpoints, static file serving and the dashboard
// page, and wraps the mux with the session middleware.
func Setup(d *handlers.Deps) http.Handler {
	mux := http.NewServeMux()

	// Static assets
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(d.Config.StaticDirectory))))

	// API endpoints
	mux.HandleFunc("/api/scan", handlers.ScanHandler(d))
	mux.HandleFunc("/api/session/stats", handlers.SessionStatsHandler(d))
	mux.HandleFunc("/api/session/history", handlers.SessionHistoryHandler(d))
	mux.HandleFunc("/api/model", handlers.ModelInfoHandler(d))
	mux.HandleFunc("/api/live", handlers.LiveHandler(d))

	// Operational endpoints
	mux.Handle("/metrics", d.Metrics.Handler())
	mux.HandleFunc("/healthz", handlers.HealthHandler())

	// HTML pages: /settings -> static/settings.html, / -> static/index.html
	mux.HandleFunc("/", handlers.PageHandler(d.Config.StaticDirectory))

	return middleware.Session(mux)
}
