package handlers

import (
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"infrawatch/internal/detector"
	"infrawatch/internal/models"
	"infrawatch/internal/ws"
)

func TestLiveHandler_WithoutHub(t *testing.T) {
	d := testDeps(t, &fakeDetector{})

	rec := httptest.NewRecorder()
	LiveHandler(d)(rec, httptest.NewRequest(http.MethodGet, "/api/live", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "live updates are not available")
}

func TestScanHandler_PushesSummaryToLiveClients(t *testing.T) {
	fake := &fakeDetector{detections: []detector.Detection{
		{ClassID: 1, ClassName: "crack", Confidence: 0.85, Bounds: image.Rect(5, 5, 30, 30)},
	}}
	d := testDeps(t, fake)
	d.Hub = ws.NewHub(d.Logger, d.Metrics)
	go d.Hub.Run()

	srv := httptest.NewServer(LiveHandler(d))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()
	require.Eventually(t, func() bool { return d.Hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	ScanHandler(d)(rec, multipartScan(t, "bridge.png", pngUpload(t), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := client.ReadMessage()
	require.NoError(t, err)

	var summary struct {
		Record       models.DetectionRecord `json:"record"`
		TotalScans   int                    `json:"total_scans"`
		TotalDefects int                    `json:"total_defects"`
	}
	require.NoError(t, json.Unmarshal(msg, &summary))
	require.Equal(t, 1, summary.TotalScans)
	require.Equal(t, 1, summary.TotalDefects)
	require.Equal(t, models.StatusCritical, summary.Record.Status)
	require.Equal(t, 1, summary.Record.DetectionCount)
}
