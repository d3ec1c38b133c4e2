// File: internal/filestorage/service.go
package filestorage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/PhangZT0803/EcoTrip/internal/firebase"
)

// ObjectInfo describes a stored object for listing operations.
type ObjectInfo struct {
	Key     string
	Created time.Time
}

// ObjectStore provides operations against the public photo bucket.
type ObjectStore interface {
	// Put writes data under key and makes the object publicly readable.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// PublicURL returns the stable public URL for a key. It does not check
	// that the object exists.
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

type gcsObjectStore struct {
	bucket     *storage.BucketHandle
	bucketName string
	logger     *zap.Logger
}

// NewGCSObjectStore creates an ObjectStore backed by the app's default
// Cloud Storage bucket.
func NewGCSObjectStore(fb *firebase.Service, logger *zap.Logger) ObjectStore {
	return &gcsObjectStore{
		bucket:     fb.Bucket(),
		bucketName: fb.BucketName(),
		logger:     logger,
	}
}

func (s *gcsObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("writing object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing object %s: %w", key, err)
	}

	// Best effort: on buckets with uniform access control, per-object ACLs are
	// rejected and public access comes from the bucket policy instead.
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		s.logger.Debug("Could not set public-read ACL on object",
			zap.String("key", key), zap.Error(err))
	}

	return nil
}

func (s *gcsObjectStore) PublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key)
}

func (s *gcsObjectStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}
	return nil
}

func (s *gcsObjectStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var objects []ObjectInfo
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects with prefix %s: %w", prefix, err)
		}
		objects = append(objects, ObjectInfo{Key: attrs.Name, Created: attrs.Created})
	}
	return objects, nil
}
