package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"infrawatch/internal/models"
)

func TestConfidenceStats_Empty(t *testing.T) {
	stats := ConfidenceStats(nil)
	require.Equal(t, Stats{}, stats)
}

func TestConfidenceStats_Values(t *testing.T) {
	stats := ConfidenceStats([]float64{0.2, 0.4, 0.6, 0.8})

	require.InDelta(t, 0.5, stats.Mean, 1e-9)
	require.InDelta(t, 0.8, stats.Max, 1e-9)
	require.InDelta(t, 0.2, stats.Min, 1e-9)
	// population std of {0.2,0.4,0.6,0.8}
	require.InDelta(t, 0.2236067977, stats.Std, 1e-9)
}

func TestConfidenceStats_SingleValue(t *testing.T) {
	stats := ConfidenceStats([]float64{0.5})
	require.InDelta(t, 0.5, stats.Mean, 1e-9)
	require.InDelta(t, 0.5, stats.Max, 1e-9)
	require.InDelta(t, 0.5, stats.Min, 1e-9)
	require.Zero(t, stats.Std)
}

func TestSeverityDistribution_CountsSumToInput(t *testing.T) {
	tests := [][]float64{
		nil,
		{0.9},
		{0.1, 0.5, 0.9},
		{0.4, 0.7, 0.71, 0.41, 0.39},
		{0.25, 0.25, 0.25, 0.25, 0.25, 0.25},
	}

	for _, confidences := range tests {
		dist := SeverityDistribution(confidences)
		require.Equal(t, len(confidences), dist.Total())
	}
}

func TestSeverityDistribution_Buckets(t *testing.T) {
	dist := SeverityDistribution([]float64{0.9, 0.75, 0.7, 0.5, 0.4, 0.2})

	require.Equal(t, 2, dist.High)
	require.Equal(t, 2, dist.Medium) // 0.7 falls to Medium, 0.5 is Medium
	require.Equal(t, 2, dist.Low)    // 0.4 falls to Low, 0.2 is Low
}

func record(detections int) models.DetectionRecord {
	return models.NewDetectionRecord(detections, 0.25, time.Now())
}

func TestHistorical_Empty(t *testing.T) {
	require.Equal(t, HistoricalStats{}, Historical(nil))
}

func TestHistorical_Rollup(t *testing.T) {
	history := []models.DetectionRecord{record(3), record(0), record(5)}

	stats := Historical(history)
	require.Equal(t, 8, stats.TotalDetections)
	require.InDelta(t, 8.0/3.0, stats.AveragePerScan, 1e-9)
	require.Equal(t, 2, stats.ScansWithDefects)
	require.Equal(t, 3, stats.TotalScans)
}

func TestDetectionRate(t *testing.T) {
	require.Zero(t, DetectionRate(0, 0))
	require.InDelta(t, 150.0, DetectionRate(4, 6), 1e-9)
	require.InDelta(t, 0.0, DetectionRate(10, 0), 1e-9)
}

func TestTypeDistribution(t *testing.T) {
	items := []models.DetectionItem{
		{Index: 1, ClassName: "crack", Confidence: 0.9},
		{Index: 2, ClassName: "pothole", Confidence: 0.6},
		{Index: 3, ClassName: "crack", Confidence: 0.5},
	}

	counts := TypeDistribution(items)
	require.Equal(t, map[string]int{"crack": 2, "pothole": 1}, counts)
}
