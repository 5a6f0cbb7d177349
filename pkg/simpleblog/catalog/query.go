// Package catalog filters, sorts and paginates blog lists. Query is a pure
// function of its inputs and never mutates the slice it is given.
package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// Page is one page of a query result. Total counts every blog that matched,
// not just the ones on this page.
type Page struct {
	Items     []simpleblog.Blog `json:"items"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"pageSize"`
	PageCount int               `json:"pageCount"`
}

type options struct {
	lang     language.Tag
	pageSize int
}

// Option configures a query
type Option func(*options)

// WithLanguage sets the language whose collation orders titles
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}

// WithPageSize overrides DefaultPageSize
func WithPageSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

// Query applies the filter predicates conjunctively, sorts the matches
// stably and returns the requested page. A page past the end yields no
// items but still reports the true total.
func Query(blogs []simpleblog.Blog, f Filter, opts ...Option) Page {
	o := options{lang: language.English, pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}

	matched := make([]simpleblog.Blog, 0, len(blogs))
	for _, b := range blogs {
		if matches(b, f) {
			matched = append(matched, b)
		}
	}

	sortBlogs(matched, f, o.lang)

	page := max(1, f.Page)
	pageCount := PageCount(len(matched), o.pageSize)

	// page is only multiplied once it is known to be in range, so large
	// page numbers cannot overflow.
	start := len(matched)
	if page <= pageCount {
		start = min((page-1)*o.pageSize, len(matched))
	}
	end := min(start+o.pageSize, len(matched))

	return Page{
		Items:     slices.Clone(matched[start:end]),
		Total:     len(matched),
		Page:      page,
		PageSize:  o.pageSize,
		PageCount: pageCount,
	}
}

func matches(b simpleblog.Blog, f Filter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Q)); q != "" {
		haystack := strings.ToLower(b.Title + " " + b.Content)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	if len(f.CategoryIDs) > 0 && !intersects(f.CategoryIDs, b.CategoryIDs) {
		return false
	}
	if len(f.TagIDs) > 0 && !intersects(f.TagIDs, b.TagIDs) {
		return false
	}
	if f.AuthorID != "" && b.AuthorID != f.AuthorID {
		return false
	}
	return true
}

func intersects(wanted, have []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, id := range have {
		set[id] = struct{}{}
	}
	for _, id := range wanted {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

func sortBlogs(blogs []simpleblog.Blog, f Filter, lang language.Tag) {
	var cmp func(a, b simpleblog.Blog) int
	if f.SortBy == SortByTitle {
		c := collate.New(lang)
		cmp = func(a, b simpleblog.Blog) int {
			return c.CompareString(a.Title, b.Title)
		}
	} else {
		cmp = func(a, b simpleblog.Blog) int {
			return strings.Compare(a.CreatedAt, b.CreatedAt)
		}
	}

	desc := f.SortOrder != OrderAsc
	slices.SortStableFunc(blogs, func(a, b simpleblog.Blog) int {
		if desc {
			return -cmp(a, b)
		}
		return cmp(a, b)
	})
}
