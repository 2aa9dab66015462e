// Package notify pushes alerts for scans that found defects.
package notify

import (
	"infrawatch/internal/models"
)

// Notifier receives each Critical scan. Implementations must not block the
// scan response for long; failures are for the caller to log, not retry.
type Notifier interface {
	ScanAlert(record models.DetectionRecord, items []models.DetectionItem) error
}

// Nop is the notifier used when no alert channel is configured.
type Nop struct{}

// ScanAlert does nothing.
func (Nop) ScanAlert(models.DetectionRecord, []models.DetectionItem) error { return nil }
