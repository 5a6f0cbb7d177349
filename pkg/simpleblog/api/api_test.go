package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-blog/pkg/simpleblog"
	memorystorage "github.com/tendant/simple-blog/pkg/simpleblog/storage/memory"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// setupAPITest creates a router over an in-memory service
func setupAPITest(t *testing.T) (http.Handler, simpleblog.Service) {
	t.Helper()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	service, err := simpleblog.New(
		simpleblog.WithBlobStore("memory", memorystorage.New()),
		simpleblog.WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}),
	)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Mount("/api", Routes(service))
	return router, service
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func createTestAuthor(t *testing.T, h http.Handler) simpleblog.Author {
	t.Helper()
	w, env := doRequest(t, h, http.MethodPost, "/api/authors", map[string]string{"name": "Ada", "bio": "Math"})
	require.Equal(t, http.StatusCreated, w.Code)

	var author simpleblog.Author
	require.NoError(t, json.Unmarshal(env.Data, &author))
	return author
}

func TestBlogs_CreateGetDelete(t *testing.T) {
	h, _ := setupAPITest(t)
	author := createTestAuthor(t, h)

	w, env := doRequest(t, h, http.MethodPost, "/api/blogs", map[string]any{
		"title":       "Hello World",
		"content":     "Some content",
		"categoryIds": []string{},
		"tagIds":      []string{},
		"authorId":    author.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created simpleblog.Blog
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "hello-world", created.Slug)

	w, env = doRequest(t, h, http.MethodGet, "/api/blogs/hello-world", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched simpleblog.Blog
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created, fetched)

	w, env = doRequest(t, h, http.MethodGet, "/api/blogs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []simpleblog.Blog
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	w, env = doRequest(t, h, http.MethodDelete, "/api/blogs/hello-world", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, string(env.Data))

	w, env = doRequest(t, h, http.MethodGet, "/api/blogs/hello-world", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", env.Error)

	w, env = doRequest(t, h, http.MethodDelete, "/api/blogs/hello-world", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", env.Error)
}

func TestBlogs_CreateInvalidPayload(t *testing.T) {
	h, _ := setupAPITest(t)
	author := createTestAuthor(t, h)

	tests := []struct {
		name string
		body any
	}{
		{"malformed json", `{"title":`},
		{"missing title", map[string]any{"content": "c", "categoryIds": []string{}, "tagIds": []string{}, "authorId": author.ID}},
		{"blank content", map[string]any{"title": "t", "content": "  ", "categoryIds": []string{}, "tagIds": []string{}, "authorId": author.ID}},
		{"missing categoryIds", map[string]any{"title": "t", "content": "c", "tagIds": []string{}, "authorId": author.ID}},
		{"categoryIds not array", map[string]any{"title": "t", "content": "c", "categoryIds": "cat_1", "tagIds": []string{}, "authorId": author.ID}},
		{"missing authorId", map[string]any{"title": "t", "content": "c", "categoryIds": []string{}, "tagIds": []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doRequest(t, h, http.MethodPost, "/api/blogs", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, msgInvalidBlogPayload, env.Error)
		})
	}
}

func TestBlogs_CreateUnknownAuthor(t *testing.T) {
	h, _ := setupAPITest(t)

	w, env := doRequest(t, h, http.MethodPost, "/api/blogs", map[string]any{
		"title": "t", "content": "c", "categoryIds": []string{}, "tagIds": []string{}, "authorId": "auth_missing",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "authorId")
}

func TestBlogs_Expanded(t *testing.T) {
	h, service := setupAPITest(t)
	author := createTestAuthor(t, h)
	ctx := context.Background()

	cat, err := service.CreateCategory(ctx, "Go")
	require.NoError(t, err)
	_, err = service.CreateBlog(ctx, simpleblog.CreateBlogRequest{
		Title: "Joined", Content: "c", CategoryIDs: []string{cat.ID}, TagIDs: []string{}, AuthorID: author.ID,
	})
	require.NoError(t, err)

	w, env := doRequest(t, h, http.MethodGet, "/api/blogs/joined/expanded", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var expanded simpleblog.ExpandedBlog
	require.NoError(t, json.Unmarshal(env.Data, &expanded))
	assert.Equal(t, "joined", expanded.Blog.Slug)
	assert.Equal(t, []simpleblog.Category{*cat}, expanded.Categories)
	require.NotNil(t, expanded.Author)
	assert.Equal(t, "Ada", expanded.Author.Name)

	w, _ = doRequest(t, h, http.MethodGet, "/api/blogs/missing/expanded", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaxonomy_CreateAndList(t *testing.T) {
	h, _ := setupAPITest(t)

	for _, path := range []string{"/api/categories", "/api/tags", "/api/authors"} {
		t.Run(path, func(t *testing.T) {
			w, env := doRequest(t, h, http.MethodPost, path, map[string]string{"name": " Zeta "})
			require.Equal(t, http.StatusCreated, w.Code)
			var first map[string]any
			require.NoError(t, json.Unmarshal(env.Data, &first))
			assert.Equal(t, "Zeta", first["name"])

			w, env = doRequest(t, h, http.MethodPost, path, map[string]string{"name": "zeta"})
			require.Equal(t, http.StatusCreated, w.Code)
			var second map[string]any
			require.NoError(t, json.Unmarshal(env.Data, &second))
			assert.Equal(t, first["id"], second["id"])

			_, _ = doRequest(t, h, http.MethodPost, path, map[string]string{"name": "Alpha"})

			w, env = doRequest(t, h, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var list []map[string]any
			require.NoError(t, json.Unmarshal(env.Data, &list))
			require.Len(t, list, 2)
			assert.Equal(t, "Alpha", list[0]["name"])
			assert.Equal(t, "Zeta", list[1]["name"])
		})
	}
}

func TestTaxonomy_NameRequired(t *testing.T) {
	h, _ := setupAPITest(t)

	for _, body := range []any{map[string]string{"name": "   "}, map[string]string{}, `not json`} {
		w, env := doRequest(t, h, http.MethodPost, "/api/tags", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Name is required", env.Error)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := setupAPITest(t)

	w, _ := doRequest(t, h, http.MethodPut, "/api/blogs/some-slug", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

type failingStore struct {
	simpleblog.BlobStore
}

func (failingStore) Download(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("backend unavailable")
}

func TestStorageFailureIs500(t *testing.T) {
	service, err := simpleblog.New(simpleblog.WithBlobStore("broken", failingStore{}))
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Mount("/api", Routes(service))

	for _, path := range []string{"/api/blogs", "/api/categories", "/api/catalog"} {
		w, env := doRequest(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Equal(t, "Internal Server Error", env.Error, path)
	}
}
