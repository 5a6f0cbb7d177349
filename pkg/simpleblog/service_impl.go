package simpleblog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tendant/simple-blog/pkg/simpleblog/idgen"
	"github.com/tendant/simple-blog/pkg/simpleblog/slug"
)

// service implements the Service interface
type service struct {
	store       BlobStore
	backendName string
	prefix      string
	now         func() time.Time
	ids         *idgen.Generator
	logger      *slog.Logger

	blogs      *Collection[Blog]
	categories *Collection[Category]
	tags       *Collection[Tag]
	authors    *Collection[Author]
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithBlobStore sets the storage backend holding the collections. name is
// reported in storage errors.
func WithBlobStore(name string, store BlobStore) Option {
	return func(s *service) {
		s.backendName = name
		s.store = store
	}
}

// WithCollectionPrefix prepends prefix to every collection key, e.g. "data/"
func WithCollectionPrefix(prefix string) Option {
	return func(s *service) {
		s.prefix = prefix
	}
}

// WithClock sets the time source used for createdAt stamps
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithIDGenerator sets the identifier generator
func WithIDGenerator(g *idgen.Generator) Option {
	return func(s *service) {
		s.ids = g
	}
}

// WithLogger sets the logger used for mutation events
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		now: time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.backendName == "" {
		s.backendName = "default"
	}
	if s.ids == nil {
		s.ids = idgen.New(idgen.WithClock(s.now))
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.blogs = NewCollection[Blog](s.store, s.backendName, s.prefix+BlogsKey)
	s.categories = NewCollection[Category](s.store, s.backendName, s.prefix+CategoriesKey)
	s.tags = NewCollection[Tag](s.store, s.backendName, s.prefix+TagsKey)
	s.authors = NewCollection[Author](s.store, s.backendName, s.prefix+AuthorsKey)

	return s, nil
}

// Blog operations

func (s *service) ListBlogs(ctx context.Context) ([]Blog, error) {
	blogs, err := s.blogs.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(blogs, func(a, b Blog) int {
		return strings.Compare(b.CreatedAt, a.CreatedAt)
	})
	return blogs, nil
}

func (s *service) GetBlog(ctx context.Context, slugValue string) (*Blog, error) {
	blogs, err := s.blogs.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range blogs {
		if blogs[i].Slug == slugValue {
			return &blogs[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "blog", Key: slugValue}
}

func (s *service) CreateBlog(ctx context.Context, req CreateBlogRequest) (*Blog, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	authorID := strings.TrimSpace(req.AuthorID)

	switch {
	case title == "":
		return nil, &ValidationError{Field: "title", Reason: "required"}
	case content == "":
		return nil, &ValidationError{Field: "content", Reason: "required"}
	case req.CategoryIDs == nil:
		return nil, &ValidationError{Field: "categoryIds", Reason: "required"}
	case req.TagIDs == nil:
		return nil, &ValidationError{Field: "tagIds", Reason: "required"}
	case authorID == "":
		return nil, &ValidationError{Field: "authorId", Reason: "required"}
	}

	authors, err := s.authors.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(authors, func(a Author) bool { return a.ID == authorID }) {
		return nil, &ValidationError{Field: "authorId", Reason: "unknown author"}
	}

	blogs, err := s.blogs.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	used := make(map[string]struct{}, len(blogs))
	for _, b := range blogs {
		used[b.Slug] = struct{}{}
	}
	slugValue := slug.Unique(title, used)
	if slugValue == "" {
		return nil, &ValidationError{Field: "title", Reason: "must contain at least one letter or digit"}
	}

	blog := Blog{
		ID:          s.ids.Generate(BlogIDPrefix),
		Slug:        slugValue,
		Title:       title,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Content:     content,
		CategoryIDs: dedupe(req.CategoryIDs),
		TagIDs:      dedupe(req.TagIDs),
		AuthorID:    authorID,
		CreatedAt:   FormatTimestamp(s.now()),
	}

	blogs = slices.Insert(blogs, 0, blog)
	if err := s.blogs.WriteAll(ctx, blogs); err != nil {
		return nil, err
	}

	s.logger.Info("blog created", "id", blog.ID, "slug", blog.Slug)
	return &blog, nil
}

func (s *service) DeleteBlog(ctx context.Context, slugValue string) (bool, error) {
	blogs, err := s.blogs.ReadAll(ctx)
	if err != nil {
		return false, err
	}
	idx := slices.IndexFunc(blogs, func(b Blog) bool { return b.Slug == slugValue })
	if idx < 0 {
		return false, nil
	}
	blogs = slices.Delete(blogs, idx, idx+1)
	if err := s.blogs.WriteAll(ctx, blogs); err != nil {
		return false, err
	}

	s.logger.Info("blog deleted", "slug", slugValue)
	return true, nil
}

func (s *service) ExpandBlog(ctx context.Context, blog Blog) (*ExpandedBlog, error) {
	var (
		categories []Category
		tags       []Tag
		authors    []Author
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.categories.ReadAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = s.tags.ReadAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		authors, err = s.authors.ReadAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	expanded := &ExpandedBlog{
		Blog:       blog,
		Categories: lookup(blog.CategoryIDs, categories, func(c Category) string { return c.ID }),
		Tags:       lookup(blog.TagIDs, tags, func(t Tag) string { return t.ID }),
	}
	for i := range authors {
		if authors[i].ID == blog.AuthorID {
			expanded.Author = &authors[i]
			break
		}
	}
	return expanded, nil
}

// Taxonomy operations

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	return listByName(ctx, s.categories, func(c Category) string { return c.Name })
}

func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	return createByName(ctx, s, s.categories, name, func(c Category) string { return c.Name },
		func(name string) Category {
			return Category{ID: s.ids.Generate(CategoryIDPrefix), Name: name}
		})
}

func (s *service) ListTags(ctx context.Context) ([]Tag, error) {
	return listByName(ctx, s.tags, func(t Tag) string { return t.Name })
}

func (s *service) CreateTag(ctx context.Context, name string) (*Tag, error) {
	return createByName(ctx, s, s.tags, name, func(t Tag) string { return t.Name },
		func(name string) Tag {
			return Tag{ID: s.ids.Generate(TagIDPrefix), Name: name}
		})
}

func (s *service) ListAuthors(ctx context.Context) ([]Author, error) {
	return listByName(ctx, s.authors, func(a Author) string { return a.Name })
}

func (s *service) CreateAuthor(ctx context.Context, name, bio string) (*Author, error) {
	return createByName(ctx, s, s.authors, name, func(a Author) string { return a.Name },
		func(name string) Author {
			return Author{ID: s.ids.Generate(AuthorIDPrefix), Name: name, Bio: strings.TrimSpace(bio)}
		})
}

// Helper methods

func listByName[T any](ctx context.Context, c *Collection[T], nameOf func(T) string) ([]T, error) {
	items, err := c.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b T) int {
		return strings.Compare(nameOf(a), nameOf(b))
	})
	return items, nil
}

// createByName returns the existing entity whose name matches
// case-insensitively, or appends a new one built from the trimmed name.
func createByName[T any](ctx context.Context, s *service, c *Collection[T], name string, nameOf func(T) string, build func(string) T) (*T, error) {
	name = strings.TrimSpace(name)

	items, err := c.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if strings.EqualFold(nameOf(items[i]), name) {
			return &items[i], nil
		}
	}

	item := build(name)
	items = append(items, item)
	if err := c.WriteAll(ctx, items); err != nil {
		return nil, err
	}

	s.logger.Info("taxonomy entry created", "collection", c.Key(), "name", name)
	return &item, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func lookup[T any](ids []string, items []T, idOf func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[idOf(item)] = item
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
