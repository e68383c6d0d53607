// Package store persists exported artifacts to a storage backend:
// local filesystem or S3-compatible object storage.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flightdeck-io/flightdeck/types"
)

// Store persists artifacts.
type Store interface {
	// Put writes the artifact under key and returns the full storage path.
	Put(ctx context.Context, key string, artifact *types.AnimatedArtifact) (string, error)
	// Close releases backend resources.
	Close() error
}

// FSStore writes artifacts to a local directory.
type FSStore struct {
	root string
}

// NewFSStore creates a filesystem store rooted at root. The directory is
// created if missing.
func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		return nil, fmt.Errorf("fs store: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, WrapInitError(err, root)
	}
	return &FSStore{root: root}, nil
}

// Put writes the artifact to root/key.
func (s *FSStore) Put(ctx context.Context, key string, artifact *types.AnimatedArtifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", WrapWriteError(err, path)
	}
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", WrapWriteError(err, path)
	}
	return path, nil
}

// Close is a no-op for the filesystem backend.
func (s *FSStore) Close() error {
	return nil
}

var _ Store = (*FSStore)(nil)

// ArtifactKey builds the default storage key for an export:
// <dataset>/<export_id>.<format>, or <export_id>.<format> when the dataset
// label is empty.
func ArtifactKey(meta *types.ExportMeta, format types.ArtifactFormat) string {
	name := fmt.Sprintf("%s.%s", meta.ExportID, format)
	if meta.Dataset != "" {
		return filepath.Join(meta.Dataset, name)
	}
	return name
}
