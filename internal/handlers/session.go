package handlers

import (
	"net/http"

	"infrawatch/internal/analytics"
	"infrawatch/internal/middleware"
	"infrawatch/internal/models"
)

// SessionStatsResponse summarizes the caller's session.
type SessionStatsResponse struct {
	TotalScans    int                       `json:"total_scans"`
	TotalDefects  int                       `json:"total_defects"`
	DetectionRate float64                   `json:"detection_rate"`
	Historical    analytics.HistoricalStats `json:"historical_stats"`
}

// SessionStatsHandler returns lifetime counters plus rollups over the capped
// history for the caller's session.
func SessionStatsHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		state := d.Sessions.Get(middleware.SessionID(r))
		respondJSON(w, http.StatusOK, SessionStatsResponse{
			TotalScans:    state.TotalScans,
			TotalDefects:  state.TotalDefects,
			DetectionRate: analytics.DetectionRate(state.TotalScans, state.TotalDefects),
			Historical:    analytics.Historical(state.History),
		})
	}
}

// SessionHistoryHandler returns the capped scan history, newest first.
func SessionHistoryHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		state := d.Sessions.Get(middleware.SessionID(r))
		history := state.History
		if history == nil {
			history = []models.DetectionRecord{}
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"history": history,
		})
	}
}
