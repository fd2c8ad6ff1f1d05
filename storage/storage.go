// Package storage archives exported notebook files on local disk or S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage interface for archived export files
type Storage interface {
	// Upload stores an export and returns its storage path
	Upload(ctx context.Context, exportID uuid.UUID, filename string, data io.Reader) (string, error)

	// Download retrieves an export by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes an export by storage path
	Delete(ctx context.Context, storagePath string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	S3Endpoint   string // Optional, for S3-compatible services
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", StorageTypeLocal:
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./storage/exports"
		}
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 storage requires a bucket")
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "ap-northeast-2"
		}
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

var now = time.Now

// generateStoragePath groups exports by day: exports/2024/01/10/<id>_<name>.xlsx
func generateStoragePath(exportID uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	baseName := strings.TrimSuffix(filepath.Base(filename), ext)
	baseName = strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(baseName)
	return path.Join("exports", now().Format("2006/01/02"), fmt.Sprintf("%s_%s%s", exportID, baseName, ext))
}

// contentType determines content type from filename
func contentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
