package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes payloads under a local directory, for deployments that
// serve uploads straight from the application host.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore ensures dir exists and returns a store whose URLs are
// baseURL plus the stored file name.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("media: directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create directory: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" {
		return "", ErrMissingName
	}
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stored := uuid.NewString() + "-" + sanitizeName(name)
	if err := os.WriteFile(filepath.Join(s.dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("media: write file: %w", err)
	}
	return s.baseURL + "/" + stored, nil
}

// Dir returns the storage directory, for mounting as a static file root.
func (s *DiskStore) Dir() string { return s.dir }
