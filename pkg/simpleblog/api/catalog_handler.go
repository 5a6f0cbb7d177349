package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tendant/simple-blog/pkg/simpleblog"
	"github.com/tendant/simple-blog/pkg/simpleblog/catalog"
	"github.com/tendant/simple-blog/pkg/simpleblog/filtersync"
)

// CatalogItem is a blog with a short preview of its content
type CatalogItem struct {
	simpleblog.Blog
	Excerpt string `json:"excerpt"`
}

// CatalogResponse is one page of the filtered catalog
type CatalogResponse struct {
	Items     []CatalogItem  `json:"items"`
	Total     int            `json:"total"`
	Page      int            `json:"page"`
	PageSize  int            `json:"pageSize"`
	PageCount int            `json:"pageCount"`
	Pages     []int          `json:"pages"`
	Filter    catalog.Filter `json:"filter"`
	Query     string         `json:"query"`
}

// CatalogHandler serves filtered, sorted and paginated blog listings
type CatalogHandler struct {
	service simpleblog.Service
	opts    []catalog.Option
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service simpleblog.Service, opts ...catalog.Option) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		opts:    opts,
	}
}

// Routes returns the routes for the catalog
func (h *CatalogHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Query)
	return r
}

// Query reads the filter from the request's query string and returns the
// matching page. When the canonical query string differs from the request,
// it is sent back in the Content-Location header.
func (h *CatalogHandler) Query(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.ListBlogs(r.Context())
	if err != nil {
		respondServiceError(w, r, "catalog", err)
		return
	}

	resp, changed, err := BuildCatalogResponse(blogs, r.URL.RawQuery, h.opts...)
	if err != nil {
		slog.Warn("Failed to canonicalize catalog query", "error", err)
	}
	if changed {
		u := *r.URL
		u.RawQuery = resp.Query
		w.Header().Set("Content-Location", u.RequestURI())
	}

	respondData(w, r, http.StatusOK, resp)
}

// BuildCatalogResponse hydrates a filter from rawQuery, runs it over blogs
// and returns the page together with the canonical query string. changed
// reports whether the canonical form differs from rawQuery.
func BuildCatalogResponse(blogs []simpleblog.Blog, rawQuery string, opts ...catalog.Option) (resp CatalogResponse, changed bool, err error) {
	loc := filtersync.NewURLLocation(&url.URL{RawQuery: rawQuery})
	syncer := filtersync.New(loc)

	filter := catalog.DefaultFilter()
	syncer.Hydrate(&filter)
	changed, err = syncer.Mirror(filter)

	page := catalog.Query(blogs, filter, opts...)

	items := make([]CatalogItem, 0, len(page.Items))
	for _, b := range page.Items {
		items = append(items, CatalogItem{
			Blog:    b,
			Excerpt: simpleblog.Excerpt(b.Content, simpleblog.DefaultExcerptWords),
		})
	}

	resp = CatalogResponse{
		Items:     items,
		Total:     page.Total,
		Page:      page.Page,
		PageSize:  page.PageSize,
		PageCount: page.PageCount,
		Pages:     catalog.Window(page.Page, page.PageCount, catalog.WindowSize),
		Filter:    filter,
		Query:     loc.RawQuery(),
	}
	return resp, changed, err
}
