package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"neighborhelp-backend/config"
)

var (
	// ErrNotFound is returned when no asset exists under the key
	ErrNotFound = errors.New("asset not found")
	// ErrInvalidPath is returned for keys that escape the storage root
	ErrInvalidPath = errors.New("invalid asset path")
)

// Storage interface for static asset operations
type Storage interface {
	// Open retrieves an asset by key
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Upload stores an asset under key, replacing any existing one
	Upload(ctx context.Context, key string, data io.Reader) error

	// Delete removes an asset by key
	Delete(ctx context.Context, key string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// NewStorageFromConfig creates a storage instance from the application config
func NewStorageFromConfig(cfg config.StorageConfig) (Storage, error) {
	switch StorageType(cfg.Type) {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// cleanKey normalizes a slash separated asset key. Keys with ".." segments
// are rejected.
func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}

	cleaned := strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+key)), "/")
	if cleaned == "" {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// ContentType determines content type from an asset name
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "text/javascript; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
