// Package detector wraps the pretrained object-detection model. The model is
// consumed as an opaque artifact; inference runs through gocv and nothing in
// this package trains or modifies it.
package detector

import (
	"context"
	"errors"
	"image"
)

// ErrModelNotFound is returned when the model artifact is missing on disk.
// Handlers surface it as a user-facing error instead of failing the process.
var ErrModelNotFound = errors.New("model artifact not found")

// Detection is one box reported by the model, with pixel coordinates.
type Detection struct {
	ClassID    int
	ClassName  string
	Confidence float64
	Bounds     image.Rectangle
}

// Options carries per-request inference parameters.
type Options struct {
	ConfThreshold float64
	IOUThreshold  float64
	InferenceSize int
}

// Detector runs the pretrained model over an encoded image.
type Detector interface {
	Detect(ctx context.Context, imageData []byte, opts Options) ([]Detection, error)
}
