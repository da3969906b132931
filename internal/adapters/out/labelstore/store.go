// Package labelstore caches downloaded label artifacts on the local
// filesystem. The carrier's artifact reference stays authoritative; the
// local copy exists for printing and manual review.
package labelstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fulfillment/internal/pkg/errs"
)

// FileStore writes label artifacts under a base directory. Implements
// ports.LabelStore.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a label store rooted at baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, errs.NewValueIsRequiredError("baseDir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Store writes the artifact as <orderID>_<timestamp>.pdf and returns the
// path. The timestamp keeps re-runs from overwriting an earlier artifact.
func (s *FileStore) Store(orderID string, artifact []byte) (string, error) {
	if orderID == "" {
		return "", errs.NewValueIsRequiredError("orderID")
	}
	if len(artifact) == 0 {
		return "", errs.NewValueIsRequiredError("artifact")
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create label directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.pdf", orderID, time.Now().UTC().Format("20060102150405"))
	path := filepath.Join(s.baseDir, name)

	if err := os.WriteFile(path, artifact, 0o644); err != nil {
		return "", fmt.Errorf("write label artifact: %w", err)
	}

	return path, nil
}
