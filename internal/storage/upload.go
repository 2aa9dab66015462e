// Package storage handles the upload boundary: validating incoming image
// files and holding them on disk for the duration of one scan.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"infrawatch/internal/logger"
)

// Validation failures the handlers translate into 400 responses.
var (
	ErrBadExtension = errors.New("unsupported file type")
	ErrTooLarge     = errors.New("file too large")
	ErrEmptyUpload  = errors.New("empty upload")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ValidateUpload checks extension and size before anything touches the
// detector. The returned error message is safe to show to the operator.
func ValidateUpload(filename string, size, maxBytes int64) error {
	if size <= 0 {
		return ErrEmptyUpload
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w %q: supported types are jpg, jpeg, png", ErrBadExtension, ext)
	}

	if size > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %d MB limit", ErrTooLarge, size, maxBytes/(1024*1024))
	}

	return nil
}

// TempStore writes uploads to a scratch directory for the duration of a scan.
type TempStore struct {
	dir    string
	logger *logger.Logger
}

// NewTempStore creates the scratch directory if needed.
func NewTempStore(dir string, log *logger.Logger) (*TempStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &TempStore{dir: dir, logger: log}, nil
}

// Save writes the upload to a uniquely named temp file and returns its path.
func (t *TempStore) Save(data []byte, ext string) (string, error) {
	file, err := os.CreateTemp(t.dir, "scan-*"+strings.ToLower(ext))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	return file.Name(), nil
}

// Cleanup removes a stored temp file. Removal failures are logged and never
// block the response.
func (t *TempStore) Cleanup(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		t.logger.Warning("Failed to remove temp file %s: %v", path, err)
	}
}
