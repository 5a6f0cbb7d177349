// Package api exposes the blog service over HTTP. Every response body is a
// JSON envelope: {"data": ...} on success, {"error": "..."} on failure.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/tendant/simple-blog/pkg/simpleblog"
	"github.com/tendant/simple-blog/pkg/simpleblog/catalog"
)

const (
	msgNotFound      = "Not found"
	msgInternalError = "Internal Server Error"
)

// DataResponse wraps a successful result
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse wraps a failure message
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewValidator returns a validator with the "notblank" rule registered
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Routes mounts every resource on a new router. Mount the result under /api.
func Routes(service simpleblog.Service, catalogOpts ...catalog.Option) chi.Router {
	v := NewValidator()

	r := chi.NewRouter()
	r.Mount("/blogs", NewBlogHandler(service, v).Routes())
	r.Mount("/categories", NewCategoryHandler(service, v).Routes())
	r.Mount("/tags", NewTagHandler(service, v).Routes())
	r.Mount("/authors", NewAuthorHandler(service, v).Routes())
	r.Mount("/catalog", NewCatalogHandler(service, catalogOpts...).Routes())
	return r
}

func respondData(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, DataResponse{Data: data})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

// respondServiceError maps service errors onto status codes. Storage and
// unexpected failures are logged and reported without detail.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var vErr *simpleblog.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, r, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, simpleblog.ErrNotFound):
		respondError(w, r, http.StatusNotFound, msgNotFound)
	default:
		slog.Error("Request failed", "op", op, "path", r.URL.Path, "error", err)
		respondError(w, r, http.StatusInternalServerError, msgInternalError)
	}
}
