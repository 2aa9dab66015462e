//go:build !gocv
// +build !gocv

package detector

import (
	"context"
	"errors"

	"infrawatch/internal/logger"
)

// DNNDetector stub for builds without OpenCV. Detect always fails; the rest
// of the server still runs, which keeps tests and non-inference builds light.
type DNNDetector struct {
	modelPath  string
	configPath string
	vocab      Vocabulary
	logger     *logger.Logger
}

// NewDNNDetector creates a detector stub (built without the gocv tag).
func NewDNNDetector(modelPath, configPath string, vocab Vocabulary, log *logger.Logger) *DNNDetector {
	return &DNNDetector{
		modelPath:  modelPath,
		configPath: configPath,
		vocab:      vocab,
		logger:     log,
	}
}

// Detect reports that inference is unavailable in this build.
func (d *DNNDetector) Detect(ctx context.Context, imageData []byte, opts Options) ([]Detection, error) {
	_ = ctx
	_ = imageData
	_ = opts
	return nil, errors.New("inference is unavailable: built without the gocv tag")
}

// Close is a no-op without a loaded network.
func (d *DNNDetector) Close() {}

var _ Detector = (*DNNDetector)(nil)
