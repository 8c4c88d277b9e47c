// Package storage is the object storage layer behind the bucket-backed film store.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions carries upload parameters. Size is the exact byte count, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the subset of S3 operations the film store needs. There is no delete: records are append-only.
type Storage interface {
	// Put uploads r under key. Readers never observe a partially written object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get streams an object's content alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// List returns info for every object under prefix in lexical key order.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Ping checks that the bucket is reachable.
	Ping(ctx context.Context) error
}
