package simpleblog

import (
	"bytes"
	"context"
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Collection keys relative to the configured prefix
const (
	BlogsKey      = "blogs.json"
	CategoriesKey = "categories.json"
	TagsKey       = "tags.json"
	AuthorsKey    = "authors.json"
)

// collectionJSON matches JSON.stringify output: no HTML escaping and struct
// fields in declaration order.
var collectionJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Collection persists a list of T as a single JSON array under one key.
// There is no partial-write API: callers read the full list, compute the
// new list and write it back.
type Collection[T any] struct {
	store   BlobStore
	backend string
	key     string
}

// NewCollection creates a collection stored under key. backend is the
// backend name reported in storage errors.
func NewCollection[T any](store BlobStore, backend, key string) *Collection[T] {
	return &Collection[T]{
		store:   store,
		backend: backend,
		key:     key,
	}
}

// Key returns the storage key of the collection
func (c *Collection[T]) Key() string {
	return c.key
}

// ReadAll loads the full collection. A missing key reads as an empty list,
// as does a document that is valid JSON but not an array.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	rc, err := c.store.Download(ctx, c.key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return []T{}, nil
		}
		return nil, c.storageError("read", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, c.storageError("read", err)
	}

	// Valid rejects empty and whitespace-only documents, so trimmed is
	// never empty below.
	if !collectionJSON.Valid(data) {
		return nil, c.storageError("decode", errors.New("malformed JSON document"))
	}
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] != '[' {
		return []T{}, nil
	}

	var items []T
	if err := collectionJSON.Unmarshal(trimmed, &items); err != nil {
		return nil, c.storageError("decode", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// WriteAll serializes the entire list, pretty-printed with a trailing
// newline, and replaces the stored document.
func (c *Collection[T]) WriteAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := collectionJSON.MarshalIndent(items, "", "  ")
	if err != nil {
		return c.storageError("encode", err)
	}
	data = append(data, '\n')

	if err := c.store.Upload(ctx, c.key, bytes.NewReader(data)); err != nil {
		return c.storageError("write", err)
	}
	return nil
}

func (c *Collection[T]) storageError(op string, err error) error {
	return &StorageError{
		Backend: c.backend,
		Key:     c.key,
		Op:      op,
		Err:     err,
	}
}
