package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

const msgInvalidBlogPayload = "Invalid payload. Required: title, content, categoryIds[], tagIds[], authorId"

// CreateBlogRequest is the request body for creating a blog
type CreateBlogRequest struct {
	Title       string   `json:"title" validate:"required,notblank"`
	ImageURL    string   `json:"imageUrl"`
	Content     string   `json:"content" validate:"required,notblank"`
	CategoryIDs []string `json:"categoryIds" validate:"required"`
	TagIDs      []string `json:"tagIds" validate:"required"`
	AuthorID    string   `json:"authorId" validate:"required,notblank"`
}

// BlogHandler handles HTTP requests for blogs
type BlogHandler struct {
	service  simpleblog.Service
	validate *validator.Validate
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(service simpleblog.Service, validate *validator.Validate) *BlogHandler {
	return &BlogHandler{
		service:  service,
		validate: validate,
	}
}

// Routes returns the routes for blogs
func (h *BlogHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListBlogs)
	r.Post("/", h.CreateBlog)
	r.Get("/{slug}", h.GetBlog)
	r.Delete("/{slug}", h.DeleteBlog)
	r.Get("/{slug}/expanded", h.GetExpandedBlog)

	return r
}

// ListBlogs returns all blogs, newest first
func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.ListBlogs(r.Context())
	if err != nil {
		respondServiceError(w, r, "list_blogs", err)
		return
	}
	respondData(w, r, http.StatusOK, blogs)
}

// CreateBlog creates a blog from a JSON body
func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, msgInvalidBlogPayload)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		slog.Debug("Invalid blog payload", "error", err)
		respondError(w, r, http.StatusBadRequest, msgInvalidBlogPayload)
		return
	}

	blog, err := h.service.CreateBlog(r.Context(), simpleblog.CreateBlogRequest{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Content:     req.Content,
		CategoryIDs: req.CategoryIDs,
		TagIDs:      req.TagIDs,
		AuthorID:    req.AuthorID,
	})
	if err != nil {
		respondServiceError(w, r, "create_blog", err)
		return
	}
	respondData(w, r, http.StatusCreated, blog)
}

// GetBlog returns a single blog by slug
func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.service.GetBlog(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, r, "get_blog", err)
		return
	}
	respondData(w, r, http.StatusOK, blog)
}

// GetExpandedBlog returns a blog joined with its categories, tags and author
func (h *BlogHandler) GetExpandedBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.service.GetBlog(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, r, "get_blog", err)
		return
	}
	expanded, err := h.service.ExpandBlog(r.Context(), *blog)
	if err != nil {
		respondServiceError(w, r, "expand_blog", err)
		return
	}
	respondData(w, r, http.StatusOK, expanded)
}

// DeleteBlog deletes a blog by slug
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.DeleteBlog(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, r, "delete_blog", err)
		return
	}
	if !deleted {
		respondError(w, r, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(w, r, http.StatusOK, map[string]bool{"deleted": true})
}
