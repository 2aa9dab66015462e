//go:build gocv
// +build gocv

package detector

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"infrawatch/internal/logger"
)

// DNNDetector runs a pretrained detection network through gocv. The network
// is loaded lazily on first use and reused for the process lifetime.
type DNNDetector struct {
	modelPath  string
	configPath string
	vocab      Vocabulary
	logger     *logger.Logger

	loadOnce sync.Once
	loadErr  error
	loaded   bool
	net      gocv.Net

	// gocv.Net forward passes are not safe to run concurrently.
	mu sync.Mutex
}

// NewDNNDetector creates a detector for the given model artifact. The model
// is not touched until the first Detect call.
func NewDNNDetector(modelPath, configPath string, vocab Vocabulary, log *logger.Logger) *DNNDetector {
	return &DNNDetector{
		modelPath:  modelPath,
		configPath: configPath,
		vocab:      vocab,
		logger:     log,
	}
}

// ensureNet loads the network exactly once. A load failure is sticky for the
// process lifetime; every request surfaces the same error.
func (d *DNNDetector) ensureNet() error {
	d.loadOnce.Do(func() {
		if _, err := os.Stat(d.modelPath); os.IsNotExist(err) {
			d.loadErr = fmt.Errorf("%w: %s", ErrModelNotFound, d.modelPath)
			return
		}
		if d.configPath != "" {
			if _, err := os.Stat(d.configPath); os.IsNotExist(err) {
				d.loadErr = fmt.Errorf("%w: %s", ErrModelNotFound, d.configPath)
				return
			}
		}

		net := gocv.ReadNet(d.modelPath, d.configPath)
		if net.Empty() {
			d.loadErr = fmt.Errorf("failed to load network from %s", d.modelPath)
			return
		}

		if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
			d.loadErr = fmt.Errorf("failed to set network backend: %w", err)
			return
		}
		if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
			d.loadErr = fmt.Errorf("failed to set network target: %w", err)
			return
		}

		d.net = net
		d.loaded = true
		d.logger.Info("Detection network loaded from %s", d.modelPath)
	})
	return d.loadErr
}

// Detect decodes the image, runs a forward pass and returns the boxes that
// survive the confidence filter and non-max suppression.
func (d *DNNDetector) Detect(ctx context.Context, imageData []byte, opts Options) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := d.ensureNet(); err != nil {
		return nil, err
	}

	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("decoded image is empty")
	}

	size := opts.InferenceSize
	if size <= 0 {
		size = 640
	}

	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(size, size), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	d.mu.Unlock()
	defer output.Close()

	imgWidth := float32(mat.Cols())
	imgHeight := float32(mat.Rows())

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	// Output rows are [batch, class, confidence, left, top, right, bottom]
	// with normalized coordinates.
	rows := output.Total() / 7
	for i := 0; i < rows; i++ {
		confidence := output.GetFloatAt(0, i*7+2)
		if float64(confidence) < opts.ConfThreshold {
			continue
		}

		classID := int(output.GetFloatAt(0, i*7+1))
		left := output.GetFloatAt(0, i*7+3) * imgWidth
		top := output.GetFloatAt(0, i*7+4) * imgHeight
		right := output.GetFloatAt(0, i*7+5) * imgWidth
		bottom := output.GetFloatAt(0, i*7+6) * imgHeight

		boxes = append(boxes, image.Rect(int(left), int(top), int(right), int(bottom)))
		scores = append(scores, confidence)
		classIDs = append(classIDs, classID)
	}

	if len(boxes) == 0 {
		return nil, nil
	}

	indices := gocv.NMSBoxes(boxes, scores, float32(opts.ConfThreshold), float32(opts.IOUThreshold))

	detections := make([]Detection, 0, len(indices))
	for _, idx := range indices {
		detections = append(detections, Detection{
			ClassID:    classIDs[idx],
			ClassName:  d.vocab.Label(classIDs[idx]),
			Confidence: float64(scores[idx]),
			Bounds:     boxes[idx],
		})
	}

	return detections, nil
}

// Close releases the loaded network.
func (d *DNNDetector) Close() {
	if d.loaded {
		d.net.Close()
	}
}

var _ Detector = (*DNNDetector)(nil)
