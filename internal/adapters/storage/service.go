// Package storage provides a domain-agnostic interface for S3-compatible object storage.
package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by GetObject for a missing key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore defines the object storage operations used by the application.
type ObjectStore interface {
	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error

	// PutObject writes data under key, replacing any existing object.
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error

	// GetObject reads a whole object. Returns ErrObjectNotFound for a missing key.
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	// ListKeys returns every key under prefix.
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	IsMinIOEnabled() bool
}
