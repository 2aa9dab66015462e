package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"infrawatch/internal/analytics"
	"infrawatch/internal/annotate"
	"infrawatch/internal/detector"
	"infrawatch/internal/middleware"
	"infrawatch/internal/models"
	"infrawatch/internal/session"
	"infrawatch/internal/storage"
)

// ScanResponse is the full payload the dashboard renders after one scan.
type ScanResponse struct {
	Record               models.DetectionRecord    `json:"record"`
	Items                []models.DetectionItem    `json:"items"`
	ConfidenceStats      analytics.Stats           `json:"confidence_stats"`
	SeverityDistribution analytics.Distribution    `json:"severity_distribution"`
	TypeDistribution     map[string]int            `json:"type_distribution"`
	Historical           analytics.HistoricalStats `json:"historical_stats"`
	TotalScans           int                       `json:"total_scans"`
	TotalDefects         int                       `json:"total_defects"`
	DetectionRate        float64                   `json:"detection_rate"`
	AnnotatedImage       string                    `json:"annotated_image,omitempty"` // base64 JPEG
}

// scanSummary is the compact form pushed to live dashboard clients.
type scanSummary struct {
	Record       models.DetectionRecord `json:"record"`
	TotalScans   int                    `json:"total_scans"`
	TotalDefects int                    `json:"total_defects"`
}

// ScanHandler accepts a multipart image upload, runs detection and returns
// the scan result plus updated session statistics.
func ScanHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		started := time.Now()

		// Slack over the documented limit so ValidateUpload produces the
		// user-facing message instead of a truncated body error.
		r.Body = http.MaxBytesReader(w, r.Body, d.Config.MaxUploadBytes()+1<<20)

		file, header, err := r.FormFile("image")
		if err != nil {
			d.Metrics.RejectedUploadsTotal.Inc()
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				d.Logger.Warning("Rejected upload: body exceeds %d bytes", maxBytesErr.Limit)
				respondError(w, http.StatusBadRequest,
					fmt.Sprintf("file too large: upload exceeds the %d MB limit", d.Config.MaxUploadMB))
				return
			}
			respondError(w, http.StatusBadRequest, "missing image file in upload")
			return
		}
		defer file.Close()

		if err := storage.ValidateUpload(header.Filename, header.Size, d.Config.MaxUploadBytes()); err != nil {
			d.Metrics.RejectedUploadsTotal.Inc()
			d.Logger.Warning("Rejected upload %q: %v", header.Filename, err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read upload")
			return
		}

		confThreshold := formFloat(r, "confidence", d.Config.ConfThreshold)
		iouThreshold := formFloat(r, "iou", d.Config.IOUThreshold)

		tempPath, err := d.Uploads.Save(data, filepath.Ext(header.Filename))
		if err != nil {
			d.Logger.Error("Failed to store upload: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to store upload")
			return
		}
		defer d.Uploads.Cleanup(tempPath)

		detections, err := d.Detector.Detect(r.Context(), data, detector.Options{
			ConfThreshold: confThreshold,
			IOUThreshold:  iouThreshold,
			InferenceSize: d.Config.InferenceSize,
		})
		if err != nil {
			d.Metrics.ScanErrorsTotal.Inc()
			if errors.Is(err, detector.ErrModelNotFound) {
				d.Logger.Error("Model artifact missing: %v", err)
				respondError(w, http.StatusServiceUnavailable, "detection model is not available; check the models directory")
				return
			}
			d.Logger.Error("Detection failed: %v", err)
			respondError(w, http.StatusInternalServerError, "detection failed")
			return
		}

		items := extractItems(detections)
		state := d.Sessions.Get(middleware.SessionID(r))
		record := state.RecordScan(len(items), confThreshold)

		confidences := make([]float64, len(items))
		for i, item := range items {
			confidences[i] = item.Confidence
		}

		resp := ScanResponse{
			Record:               record,
			Items:                items,
			ConfidenceStats:      analytics.ConfidenceStats(confidences),
			SeverityDistribution: analytics.SeverityDistribution(confidences),
			TypeDistribution:     analytics.TypeDistribution(items),
			Historical:           analytics.Historical(state.History),
			TotalScans:           state.TotalScans,
			TotalDefects:         state.TotalDefects,
			DetectionRate:        analytics.DetectionRate(state.TotalScans, state.TotalDefects),
		}

		if annotated, err := annotate.Render(data, detections); err != nil {
			d.Logger.Warning("Failed to annotate image: %v", err)
		} else {
			resp.AnnotatedImage = base64.StdEncoding.EncodeToString(annotated)
		}

		d.Metrics.ScansTotal.Inc()
		d.Metrics.DefectsTotal.Add(float64(len(items)))
		d.Metrics.ScanDuration.Observe(time.Since(started).Seconds())

		broadcastSummary(d, record, state)

		if record.Status == models.StatusCritical {
			if err := d.Notifier.ScanAlert(record, items); err != nil {
				d.Logger.Warning("Alert delivery failed: %v", err)
			}
		}

		respondJSON(w, http.StatusOK, resp)
	}
}

// extractItems maps raw detections to presentation records, 1-based.
func extractItems(detections []detector.Detection) []models.DetectionItem {
	items := make([]models.DetectionItem, 0, len(detections))
	for i, det := range detections {
		items = append(items, models.DetectionItem{
			Index:      i + 1,
			ClassName:  det.ClassName,
			Confidence: det.Confidence,
			Severity:   models.SeverityFor(det.Confidence),
		})
	}
	return items
}

// broadcastSummary pushes the new record to live dashboard clients. The hub
// is optional; tests run handlers without one.
func broadcastSummary(d *Deps, record models.DetectionRecord, state *session.State) {
	if d.Hub == nil {
		return
	}
	payload, err := json.Marshal(scanSummary{
		Record:       record,
		TotalScans:   state.TotalScans,
		TotalDefects: state.TotalDefects,
	})
	if err != nil {
		d.Logger.Error("Failed to encode scan summary: %v", err)
		return
	}
	d.Hub.Broadcast(payload)
}

// formFloat reads a [0,1] float form value, falling back to the default on
// absent or out-of-range input.
func formFloat(r *http.Request, key string, defaultValue float64) float64 {
	if value := r.FormValue(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
	}
	return defaultValue
}
