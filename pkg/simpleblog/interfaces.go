package simpleblog

import (
	"context"
	"io"
	"time"
)

// BlobStore defines the interface for storage backends. Keys are stable
// location strings such as "blogs.json".
type BlobStore interface {
	// Upload atomically replaces the content stored under objectKey,
	// creating any containing structure first
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// Download returns the full content of objectKey. It returns an error
	// wrapping ErrObjectNotFound when the key does not exist.
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete removes objectKey
	Delete(ctx context.Context, objectKey string) error

	// GetObjectMeta retrieves metadata for an object
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// ObjectMeta contains metadata about an object in storage
type ObjectMeta struct {
	Key       string
	Size      int64
	UpdatedAt time.Time
	ETag      string
}

// Service defines the main interface for the simple-blog library
type Service interface {
	// Blog operations
	ListBlogs(ctx context.Context) ([]Blog, error)
	GetBlog(ctx context.Context, slug string) (*Blog, error)
	CreateBlog(ctx context.Context, req CreateBlogRequest) (*Blog, error)
	DeleteBlog(ctx context.Context, slug string) (bool, error)
	ExpandBlog(ctx context.Context, blog Blog) (*ExpandedBlog, error)

	// Taxonomy operations. Create is idempotent by case-insensitive name.
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
	ListTags(ctx context.Context) ([]Tag, error)
	CreateTag(ctx context.Context, name string) (*Tag, error)
	ListAuthors(ctx context.Context) ([]Author, error)
	CreateAuthor(ctx context.Context, name, bio string) (*Author, error)
}
