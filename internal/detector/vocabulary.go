package detector

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary maps model class indexes to human-readable labels. It ships as a
// YAML sidecar next to the model artifact.
type Vocabulary map[int]string

// LoadVocabulary reads a class-index-to-label mapping from a YAML file.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class vocabulary: %w", err)
	}

	vocab := make(Vocabulary)
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse class vocabulary: %w", err)
	}

	return vocab, nil
}

// Label returns the label for a class index, or a stable placeholder when the
// index is not in the vocabulary.
func (v Vocabulary) Label(classID int) string {
	if label, ok := v[classID]; ok {
		return label
	}
	return fmt.Sprintf("class_%d", classID)
}
