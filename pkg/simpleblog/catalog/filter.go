package catalog

// SortBy selects the field blogs are ordered by
type SortBy string

// SortOrder selects the sort direction
type SortOrder string

const (
	SortByDate  SortBy = "date"
	SortByTitle SortBy = "title"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Filter is the caller-owned state of a catalog view. An empty AuthorID
// means no author filter.
type Filter struct {
	Q           string    `json:"q"`
	CategoryIDs []string  `json:"categoryIds"`
	TagIDs      []string  `json:"tagIds"`
	AuthorID    string    `json:"authorId,omitempty"`
	SortBy      SortBy    `json:"sortBy"`
	SortOrder   SortOrder `json:"sortOrder"`
	Page        int       `json:"page"`
}

// DefaultFilter returns the initial state: no predicates, newest first,
// first page.
func DefaultFilter() Filter {
	return Filter{
		Q:           "",
		CategoryIDs: []string{},
		TagIDs:      []string{},
		SortBy:      SortByDate,
		SortOrder:   OrderDesc,
		Page:        1,
	}
}

// The setters below change one facet and, except for SetPage, return to the
// first page.

func (f *Filter) SetQuery(q string) {
	f.Q = q
	f.Page = 1
}

func (f *Filter) SetCategoryIDs(ids []string) {
	f.CategoryIDs = ids
	f.Page = 1
}

func (f *Filter) SetTagIDs(ids []string) {
	f.TagIDs = ids
	f.Page = 1
}

func (f *Filter) SetAuthorID(id string) {
	f.AuthorID = id
	f.Page = 1
}

func (f *Filter) SetSort(by SortBy, order SortOrder) {
	f.SortBy = by
	f.SortOrder = order
	f.Page = 1
}

// SetPage sets the page, clamped to at least 1
func (f *Filter) SetPage(page int) {
	f.Page = max(1, page)
}

// Reset restores DefaultFilter
func (f *Filter) Reset() {
	*f = DefaultFilter()
}
