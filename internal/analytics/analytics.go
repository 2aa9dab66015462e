// Package analytics computes aggregate statistics over scan results and
// session history. All functions are pure; callers are responsible for
// supplying well-formed confidence values in [0, 1].
package analytics

import (
	"math"

	"infrawatch/internal/models"
)

// Stats holds descriptive statistics for a set of confidence scores.
type Stats struct {
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
	Std  float64 `json:"std"`
}

// ConfidenceStats returns mean/max/min and population standard deviation.
// An empty input yields all-zero fields.
func ConfidenceStats(confidences []float64) Stats {
	if len(confidences) == 0 {
		return Stats{}
	}

	sum := 0.0
	min := confidences[0]
	max := confidences[0]
	for _, c := range confidences {
		sum += c
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	mean := sum / float64(len(confidences))

	variance := 0.0
	for _, c := range confidences {
		d := c - mean
		variance += d * d
	}
	variance /= float64(len(confidences))

	return Stats{
		Mean: mean,
		Max:  max,
		Min:  min,
		Std:  math.Sqrt(variance),
	}
}

// Distribution counts detections per severity bucket. All three buckets are
// always present in the JSON output, possibly zero.
type Distribution struct {
	High   int `json:"High"`
	Medium int `json:"Medium"`
	Low    int `json:"Low"`
}

// Total returns the number of detections covered by the distribution.
func (d Distribution) Total() int {
	return d.High + d.Medium + d.Low
}

// SeverityDistribution buckets each confidence score and counts per bucket.
func SeverityDistribution(confidences []float64) Distribution {
	var dist Distribution
	for _, c := range confidences {
		switch models.SeverityFor(c) {
		case models.SeverityHigh:
			dist.High++
		case models.SeverityMedium:
			dist.Medium++
		default:
			dist.Low++
		}
	}
	return dist
}

// HistoricalStats aggregates a slice of detection records. It describes only
// the supplied slice; history is capped, so these are not lifetime totals.
type HistoricalStats struct {
	TotalDetections  int     `json:"total_detections"`
	AveragePerScan   float64 `json:"average_per_scan"`
	ScansWithDefects int     `json:"scans_with_defects"`
	TotalScans       int     `json:"total_scans"`
}

// Historical computes rollups over the supplied history slice.
func Historical(history []models.DetectionRecord) HistoricalStats {
	if len(history) == 0 {
		return HistoricalStats{}
	}

	stats := HistoricalStats{TotalScans: len(history)}
	for _, rec := range history {
		stats.TotalDetections += rec.DetectionCount
		if rec.DetectionCount > 0 {
			stats.ScansWithDefects++
		}
	}
	stats.AveragePerScan = float64(stats.TotalDetections) / float64(len(history))
	return stats
}

// DetectionRate returns defects per scan as a percentage of lifetime totals.
func DetectionRate(totalScans, totalDefects int) float64 {
	if totalScans == 0 {
		return 0
	}
	return float64(totalDefects) / float64(totalScans) * 100
}

// TypeDistribution counts detections per class name within one scan.
func TypeDistribution(items []models.DetectionItem) map[string]int {
	counts := make(map[string]int, len(items))
	for _, item := range items {
		counts[item.ClassName]++
	}
	return counts
}
