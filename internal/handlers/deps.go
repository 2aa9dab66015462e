package handlers

import (
	"infrawatch/internal/config"
	"infrawatch/internal/detector"
	"infrawatch/internal/logger"
	"infrawatch/internal/metrics"
	"infrawatch/internal/notify"
	"infrawatch/internal/session"
	"infrawatch/internal/storage"
	"infrawatch/internal/ws"
)

// Deps bundles everything the API handlers share.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Detector detector.Detector
	Vocab    detector.Vocabulary
	Sessions *session.Manager
	Uploads  *storage.TempStore
	Hub      *ws.Hub
	Metrics  *metrics.Metrics
	Notifier notify.Notifier
}
