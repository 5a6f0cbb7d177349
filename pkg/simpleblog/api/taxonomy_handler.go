package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

const msgNameRequired = "Name is required"

// CreateTaxonomyRequest is the request body for creating a category, tag or
// author. Bio is only used for authors.
type CreateTaxonomyRequest struct {
	Name string `json:"name" validate:"required,notblank"`
	Bio  string `json:"bio,omitempty"`
}

// TaxonomyHandler serves list and idempotent create for one taxonomy
// collection.
type TaxonomyHandler struct {
	kind     string
	list     func(ctx context.Context) (any, error)
	create   func(ctx context.Context, req CreateTaxonomyRequest) (any, error)
	validate *validator.Validate
}

// NewCategoryHandler serves /categories
func NewCategoryHandler(service simpleblog.Service, validate *validator.Validate) *TaxonomyHandler {
	return &TaxonomyHandler{
		kind: "categories",
		list: func(ctx context.Context) (any, error) {
			return service.ListCategories(ctx)
		},
		create: func(ctx context.Context, req CreateTaxonomyRequest) (any, error) {
			return service.CreateCategory(ctx, req.Name)
		},
		validate: validate,
	}
}

// NewTagHandler serves /tags
func NewTagHandler(service simpleblog.Service, validate *validator.Validate) *TaxonomyHandler {
	return &TaxonomyHandler{
		kind: "tags",
		list: func(ctx context.Context) (any, error) {
			return service.ListTags(ctx)
		},
		create: func(ctx context.Context, req CreateTaxonomyRequest) (any, error) {
			return service.CreateTag(ctx, req.Name)
		},
		validate: validate,
	}
}

// NewAuthorHandler serves /authors
func NewAuthorHandler(service simpleblog.Service, validate *validator.Validate) *TaxonomyHandler {
	return &TaxonomyHandler{
		kind: "authors",
		list: func(ctx context.Context) (any, error) {
			return service.ListAuthors(ctx)
		},
		create: func(ctx context.Context, req CreateTaxonomyRequest) (any, error) {
			return service.CreateAuthor(ctx, req.Name, req.Bio)
		},
		validate: validate,
	}
}

// Routes returns the routes for the collection
func (h *TaxonomyHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)

	return r
}

// List returns the collection sorted by name
func (h *TaxonomyHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.list(r.Context())
	if err != nil {
		respondServiceError(w, r, "list_"+h.kind, err)
		return
	}
	respondData(w, r, http.StatusOK, items)
}

// Create returns the existing entry with the same name, ignoring case, or
// creates a new one.
func (h *TaxonomyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaxonomyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, msgNameRequired)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, msgNameRequired)
		return
	}

	item, err := h.create(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "create_"+h.kind, err)
		return
	}
	respondData(w, r, http.StatusCreated, item)
}
