package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

type object struct {
	data      []byte
	etag      string
	updatedAt time.Time
}

// Backend is an in-memory implementation of the simpleblog.BlobStore interface
type Backend struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects: make(map[string]object),
	}
}

// GetObjectMeta retrieves metadata for an object in memory
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*simpleblog.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, exists := b.objects[objectKey]
	if !exists {
		return nil, notFound(objectKey)
	}

	return &simpleblog.ObjectMeta{
		Key:       objectKey,
		Size:      int64(len(obj.data)),
		UpdatedAt: obj.updatedAt,
		ETag:      obj.etag,
	}, nil
}

// Upload replaces the content stored under objectKey
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectKey] = object{
		data:      data,
		etag:      uuid.NewString(),
		updatedAt: time.Now().UTC(),
	}
	return nil
}

// Download returns a copy of the content stored under objectKey
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, exists := b.objects[objectKey]
	if !exists {
		return nil, notFound(objectKey)
	}

	return io.NopCloser(bytes.NewReader(bytes.Clone(obj.data))), nil
}

// Delete deletes content
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return notFound(objectKey)
	}

	delete(b.objects, objectKey)
	return nil
}

func notFound(objectKey string) error {
	return fmt.Errorf("%w: %s", simpleblog.ErrObjectNotFound, objectKey)
}
