package catalog

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func blogAt(id, title string, day int) simpleblog.Blog {
	return simpleblog.Blog{
		ID:          id,
		Slug:        id,
		Title:       title,
		Content:     "content of " + id,
		CategoryIDs: []string{},
		TagIDs:      []string{},
		AuthorID:    "auth_1",
		CreatedAt:   simpleblog.FormatTimestamp(base.AddDate(0, 0, day)),
	}
}

func ids(blogs []simpleblog.Blog) []string {
	out := make([]string, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, b.ID)
	}
	return out
}

func TestQuery_DefaultNewestFirst(t *testing.T) {
	blogs := []simpleblog.Blog{blogAt("a", "A", 1), blogAt("c", "C", 3), blogAt("b", "B", 2)}

	page := Query(blogs, DefaultFilter())
	assert.Equal(t, []string{"c", "b", "a"}, ids(page.Items))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.PageCount)
	assert.Equal(t, DefaultPageSize, page.PageSize)
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	blogs := []simpleblog.Blog{blogAt("a", "A", 1), blogAt("c", "C", 3), blogAt("b", "B", 2)}

	Query(blogs, DefaultFilter())
	assert.Equal(t, []string{"a", "c", "b"}, ids(blogs))
}

func TestQuery_Search(t *testing.T) {
	first := blogAt("a", "Learning Go", 1)
	second := blogAt("b", "Cooking", 2)
	second.Content = "A recipe that mentions GOlang once"
	third := blogAt("c", "Gardening", 3)

	f := DefaultFilter()
	f.SetQuery("  golang ")
	page := Query([]simpleblog.Blog{first, second, third}, f)
	assert.Equal(t, []string{"b"}, ids(page.Items))

	f.SetQuery("go")
	page = Query([]simpleblog.Blog{first, second, third}, f)
	assert.Equal(t, []string{"b", "a"}, ids(page.Items))

	f.SetQuery("   ")
	page = Query([]simpleblog.Blog{first, second, third}, f)
	assert.Equal(t, 3, page.Total)
}

func TestQuery_Conjunction(t *testing.T) {
	b1 := blogAt("b1", "One", 1)
	b1.CategoryIDs = []string{"cat_go"}
	b1.TagIDs = []string{"tag_web"}

	b2 := blogAt("b2", "Two", 2)
	b2.CategoryIDs = []string{"cat_go", "cat_db"}
	b2.TagIDs = []string{"tag_sql"}

	b3 := blogAt("b3", "Three", 3)
	b3.CategoryIDs = []string{"cat_db"}
	b3.TagIDs = []string{"tag_web"}
	b3.AuthorID = "auth_2"

	blogs := []simpleblog.Blog{b1, b2, b3}

	tests := []struct {
		name   string
		modify func(f *Filter)
		want   []string
	}{
		{"category any-of", func(f *Filter) { f.SetCategoryIDs([]string{"cat_go"}) }, []string{"b2", "b1"}},
		{"category union", func(f *Filter) { f.SetCategoryIDs([]string{"cat_go", "cat_db"}) }, []string{"b3", "b2", "b1"}},
		{"tag", func(f *Filter) { f.SetTagIDs([]string{"tag_web"}) }, []string{"b3", "b1"}},
		{"category and tag", func(f *Filter) {
			f.SetCategoryIDs([]string{"cat_db"})
			f.SetTagIDs([]string{"tag_web"})
		}, []string{"b3"}},
		{"author", func(f *Filter) { f.SetAuthorID("auth_1") }, []string{"b2", "b1"}},
		{"all predicates no match", func(f *Filter) {
			f.SetCategoryIDs([]string{"cat_go"})
			f.SetTagIDs([]string{"tag_web"})
			f.SetAuthorID("auth_2")
		}, []string{}},
		{"unknown category", func(f *Filter) { f.SetCategoryIDs([]string{"cat_none"}) }, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilter()
			tt.modify(&f)
			page := Query(blogs, f)
			assert.Equal(t, tt.want, ids(page.Items))
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestQuery_SortByTitle(t *testing.T) {
	blogs := []simpleblog.Blog{
		blogAt("1", "banana", 1),
		blogAt("2", "Apple", 2),
		blogAt("3", "Éclair", 3),
		blogAt("4", "cherry", 4),
	}

	f := DefaultFilter()
	f.SetSort(SortByTitle, OrderAsc)
	page := Query(blogs, f)
	assert.Equal(t, []string{"2", "1", "4", "3"}, ids(page.Items))

	f.SetSort(SortByTitle, OrderDesc)
	page = Query(blogs, f)
	assert.Equal(t, []string{"3", "4", "1", "2"}, ids(page.Items))
}

func TestQuery_SortByDateAsc(t *testing.T) {
	blogs := []simpleblog.Blog{blogAt("b", "B", 2), blogAt("a", "A", 1), blogAt("c", "C", 3)}

	f := DefaultFilter()
	f.SetSort(SortByDate, OrderAsc)
	assert.Equal(t, []string{"a", "b", "c"}, ids(Query(blogs, f).Items))
}

func TestQuery_SortIsStable(t *testing.T) {
	blogs := []simpleblog.Blog{
		blogAt("x", "Same", 1),
		blogAt("y", "Same", 1),
		blogAt("z", "Same", 1),
	}

	for _, order := range []SortOrder{OrderAsc, OrderDesc} {
		for _, by := range []SortBy{SortByDate, SortByTitle} {
			f := DefaultFilter()
			f.SetSort(by, order)
			assert.Equal(t, []string{"x", "y", "z"}, ids(Query(blogs, f).Items), "%s %s", by, order)
		}
	}
}

func TestQuery_PaginationExact(t *testing.T) {
	blogs := make([]simpleblog.Blog, 0, 13)
	for i := 0; i < 13; i++ {
		blogs = append(blogs, blogAt(fmt.Sprintf("b%02d", i), "T", i))
	}

	f := DefaultFilter()
	wantSizes := map[int]int{1: 6, 2: 6, 3: 1, 4: 0}
	seen := map[string]bool{}
	for page := 1; page <= 4; page++ {
		f.SetPage(page)
		result := Query(blogs, f)
		assert.Len(t, result.Items, wantSizes[page], "page %d", page)
		assert.Equal(t, 13, result.Total)
		assert.Equal(t, 3, result.PageCount)
		assert.Equal(t, page, result.Page)
		for _, b := range result.Items {
			require.False(t, seen[b.ID], "blog %s on two pages", b.ID)
			seen[b.ID] = true
		}
	}
	assert.Len(t, seen, 13)
}

func TestQuery_PageBoundaries(t *testing.T) {
	blogs := make([]simpleblog.Blog, 0, 13)
	for i := 0; i < 13; i++ {
		blogs = append(blogs, blogAt(fmt.Sprintf("b%02d", i), "T", i))
	}

	tests := []struct {
		name      string
		blogs     []simpleblog.Blog
		page      int
		wantPage  int
		wantItems int
	}{
		{"zero treated as first", blogs, 0, 1, 6},
		{"negative treated as first", blogs, -1, 1, 6},
		{"last page", blogs, 3, 3, 1},
		{"one past last", blogs, 4, 4, 0},
		{"far past last", blogs, 1537228672809129303, 1537228672809129303, 0},
		{"max int", blogs, math.MaxInt, math.MaxInt, 0},
		{"single blog far past last", blogs[:1], 1537228672809129303, 1537228672809129303, 0},
		{"empty input max int", nil, math.MaxInt, math.MaxInt, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilter()
			f.Page = tt.page

			var result Page
			require.NotPanics(t, func() { result = Query(tt.blogs, f) })
			assert.Len(t, result.Items, tt.wantItems)
			assert.Equal(t, len(tt.blogs), result.Total)
			assert.Equal(t, tt.wantPage, result.Page)
			assert.Equal(t, PageCount(len(tt.blogs), DefaultPageSize), result.PageCount)
		})
	}
}

func TestQuery_PageSizeOption(t *testing.T) {
	blogs := []simpleblog.Blog{blogAt("a", "A", 1), blogAt("b", "B", 2), blogAt("c", "C", 3)}

	page := Query(blogs, DefaultFilter(), WithPageSize(2), WithLanguage(language.German))
	assert.Equal(t, []string{"c", "b"}, ids(page.Items))
	assert.Equal(t, 2, page.PageCount)
	assert.Equal(t, 2, page.PageSize)
}

func TestQuery_EmptyInput(t *testing.T) {
	page := Query(nil, DefaultFilter())
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.PageCount)
}
