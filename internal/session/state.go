// Package session keeps per-session scan bookkeeping in memory. Nothing here
// survives a restart; state lives exactly as long as the process.
package session

import (
	"time"

	"infrawatch/internal/models"
)

// HistoryLimit caps the stored per-session history. Older records are evicted
// first (FIFO by age); the lifetime counters are not capped.
const HistoryLimit = 10

// State is the scan bookkeeping for one user session. It is not safe for
// concurrent use on its own; each session is owned by a single logical caller
// at a time, and the Manager only guards the session map.
type State struct {
	History      []models.DetectionRecord `json:"history"` // newest first
	TotalScans   int                      `json:"total_scans"`
	TotalDefects int                      `json:"total_defects"`
}

// RecordScan registers one completed scan: builds the record, bumps the
// lifetime counters and prepends the record to the capped history.
func (s *State) RecordScan(detectionCount int, confidenceThreshold float64) models.DetectionRecord {
	rec := models.NewDetectionRecord(detectionCount, confidenceThreshold, time.Now())

	s.TotalScans++
	s.TotalDefects += detectionCount

	s.History = append([]models.DetectionRecord{rec}, s.History...)
	if len(s.History) > HistoryLimit {
		s.History = s.History[:HistoryLimit]
	}

	return rec
}
