package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"infrawatch/internal/models"
)

func TestRecordScan_CountersAndStatus(t *testing.T) {
	state := &State{}

	rec := state.RecordScan(4, 0.3)
	require.Equal(t, models.StatusCritical, rec.Status)
	require.Equal(t, 4, rec.DetectionCount)
	require.Equal(t, 0.3, rec.ConfidenceThreshold)
	require.Equal(t, 1, state.TotalScans)
	require.Equal(t, 4, state.TotalDefects)

	rec = state.RecordScan(0, 0.5)
	require.Equal(t, models.StatusSafe, rec.Status)
	require.Equal(t, 2, state.TotalScans)
	require.Equal(t, 4, state.TotalDefects)
}

func TestRecordScan_HistoryCapNewestFirst(t *testing.T) {
	state := &State{}

	// Detection counts 0..10; the oldest record (count 0) must be evicted.
	for i := 0; i <= 10; i++ {
		state.RecordScan(i, 0.25)
	}

	require.Len(t, state.History, HistoryLimit)
	require.Equal(t, 11, state.TotalScans)
	require.True(t, state.TotalScans >= len(state.History))

	// Newest first: counts 10 down to 1.
	for i, rec := range state.History {
		require.Equal(t, 10-i, rec.DetectionCount)
	}
}

func TestManager_GetCreatesOnce(t *testing.T) {
	mgr := NewManager()

	a := mgr.Get("alpha")
	require.NotNil(t, a)
	require.Zero(t, a.TotalScans)

	a.RecordScan(2, 0.25)

	again := mgr.Get("alpha")
	require.Same(t, a, again)
	require.Equal(t, 1, again.TotalScans)

	b := mgr.Get("beta")
	require.NotSame(t, a, b)
	require.Zero(t, b.TotalScans)
	require.Equal(t, 2, mgr.Count())
}
