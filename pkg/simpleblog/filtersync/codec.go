package filtersync

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tendant/simple-blog/pkg/simpleblog/catalog"
)

// Query parameter names
const (
	ParamQuery      = "q"
	ParamCategories = "categories"
	ParamTags       = "tags"
	ParamAuthor     = "author"
	ParamSort       = "sort"
	ParamOrder      = "order"
	ParamPage       = "page"
)

// Decode applies the parameters in values to base and returns the result.
// Absent or empty list parameters leave base untouched; sort and order are
// always applied, falling back to date and desc. A page that does not start
// with an integer is ignored.
func Decode(values url.Values, base catalog.Filter) catalog.Filter {
	f := base

	if _, ok := values[ParamQuery]; ok {
		f.SetQuery(values.Get(ParamQuery))
	}
	if c := values.Get(ParamCategories); c != "" {
		f.SetCategoryIDs(strings.Split(c, ","))
	}
	if t := values.Get(ParamTags); t != "" {
		f.SetTagIDs(strings.Split(t, ","))
	}
	if a := values.Get(ParamAuthor); a != "" {
		f.SetAuthorID(a)
	}

	sortBy := catalog.SortByDate
	if values.Get(ParamSort) == string(catalog.SortByTitle) {
		sortBy = catalog.SortByTitle
	}
	order := catalog.OrderDesc
	if values.Get(ParamOrder) == string(catalog.OrderAsc) {
		order = catalog.OrderAsc
	}
	f.SetSort(sortBy, order)

	rawPage := "1"
	if _, ok := values[ParamPage]; ok {
		rawPage = values.Get(ParamPage)
	}
	if page, ok := parseLeadingInt(rawPage); ok {
		f.SetPage(page)
	}

	return f
}

// Encode renders f as a form-encoded query string with keys in a fixed
// order. Empty search, empty lists, unset author and page 1 are omitted.
func Encode(f catalog.Filter) string {
	var b strings.Builder
	add := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEscape(key))
		b.WriteByte('=')
		b.WriteString(formEscape(value))
	}

	if f.Q != "" {
		add(ParamQuery, f.Q)
	}
	if len(f.CategoryIDs) > 0 {
		add(ParamCategories, strings.Join(f.CategoryIDs, ","))
	}
	if len(f.TagIDs) > 0 {
		add(ParamTags, strings.Join(f.TagIDs, ","))
	}
	if f.AuthorID != "" {
		add(ParamAuthor, f.AuthorID)
	}
	add(ParamSort, string(f.SortBy))
	add(ParamOrder, string(f.SortOrder))
	if f.Page != 0 && f.Page != 1 {
		add(ParamPage, strconv.Itoa(f.Page))
	}

	return b.String()
}

// formEscape applies application/x-www-form-urlencoded escaping as browsers
// do it: like url.QueryEscape except that '*' stays literal and '~' is
// percent-encoded.
func formEscape(s string) string {
	return formEscapeReplacer.Replace(url.QueryEscape(s))
}

var formEscapeReplacer = strings.NewReplacer("%2A", "*", "~", "%7E")

// parseLeadingInt parses an optionally signed run of decimal digits at the
// start of s, after leading whitespace. Trailing characters are ignored.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
