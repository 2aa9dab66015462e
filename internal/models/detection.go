package models

import "time"

// Severity is the operator-facing bucket derived from a detection's confidence.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Bucket boundaries. A confidence exactly on a boundary falls to the lower bucket.
const (
	severityHighAbove   = 0.7
	severityMediumAbove = 0.4
)

// SeverityFor buckets a confidence score into High/Medium/Low.
func SeverityFor(confidence float64) Severity {
	switch {
	case confidence > severityHighAbove:
		return SeverityHigh
	case confidence > severityMediumAbove:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ScanStatus tags a completed scan. There are no transitions; the status is
// fixed when the record is created.
type ScanStatus string

const (
	StatusCritical ScanStatus = "Critical"
	StatusSafe     ScanStatus = "Safe"
)

// DetectionItem is one detected box within a single scan. Items are returned
// with the scan response and never persisted; history keeps per-scan summaries.
type DetectionItem struct {
	Index      int      `json:"index"`
	ClassName  string   `json:"class_name"`
	Confidence float64  `json:"confidence"`
	Severity   Severity `json:"severity"`
}

// DetectionRecord summarizes one completed scan.
type DetectionRecord struct {
	Timestamp           time.Time  `json:"timestamp"`
	DetectionCount      int        `json:"detection_count"`
	ConfidenceThreshold float64    `json:"confidence_threshold"`
	Status              ScanStatus `json:"status"`
}

// NewDetectionRecord builds a record for a finished scan. Status is derived
// from the count here and nowhere else, so the two cannot desync. Timestamps
// keep second precision.
func NewDetectionRecord(detectionCount int, confidenceThreshold float64, at time.Time) DetectionRecord {
	status := StatusSafe
	if detectionCount > 0 {
		status = StatusCritical
	}
	return DetectionRecord{
		Timestamp:           at.Truncate(time.Second),
		DetectionCount:      detectionCount,
		ConfidenceThreshold: confidenceThreshold,
		Status:              status,
	}
}
