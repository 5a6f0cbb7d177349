package presets

import (
	"context"
	"fmt"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// FixtureBlog references its taxonomy by name
type FixtureBlog struct {
	Title      string
	Content    string
	Author     string
	Categories []string
	Tags       []string
}

// Fixtures is the sample data loaded by LoadFixtures. Blogs are created in
// order, so the last one is the newest.
var Fixtures = struct {
	Authors    []simpleblog.Author
	Categories []string
	Tags       []string
	Blogs      []FixtureBlog
}{
	Authors: []simpleblog.Author{
		{Name: "Ada Lovelace", Bio: "Analyst of engines"},
		{Name: "Grace Hopper", Bio: "Compiler pioneer"},
	},
	Categories: []string{"Engineering", "Design"},
	Tags:       []string{"go", "web", "testing"},
	Blogs: []FixtureBlog{
		{
			Title:      "Getting Started with Go",
			Content:    "Go is a small language with a large standard library.",
			Author:     "Grace Hopper",
			Categories: []string{"Engineering"},
			Tags:       []string{"go"},
		},
		{
			Title:      "Designing Calm Interfaces",
			Content:    "Good interfaces get out of the way.",
			Author:     "Ada Lovelace",
			Categories: []string{"Design"},
			Tags:       []string{"web"},
		},
		{
			Title:      "Table-Driven Tests",
			Content:    "A table of cases keeps tests short and honest.",
			Author:     "Grace Hopper",
			Categories: []string{"Engineering"},
			Tags:       []string{"go", "testing"},
		},
		{
			Title:      "Shipping a Web Catalog",
			Content:    "Filtering, sorting and paging over a small dataset.",
			Author:     "Ada Lovelace",
			Categories: []string{"Engineering", "Design"},
			Tags:       []string{"web"},
		},
	},
}

// LoadFixtures creates the Fixtures data through svc. Taxonomy creation is
// idempotent, so loading twice only duplicates the blogs.
func LoadFixtures(ctx context.Context, svc simpleblog.Service) error {
	authors := make(map[string]string, len(Fixtures.Authors))
	for _, a := range Fixtures.Authors {
		author, err := svc.CreateAuthor(ctx, a.Name, a.Bio)
		if err != nil {
			return fmt.Errorf("create author %q: %w", a.Name, err)
		}
		authors[a.Name] = author.ID
	}

	categories := make(map[string]string, len(Fixtures.Categories))
	for _, name := range Fixtures.Categories {
		c, err := svc.CreateCategory(ctx, name)
		if err != nil {
			return fmt.Errorf("create category %q: %w", name, err)
		}
		categories[name] = c.ID
	}

	tags := make(map[string]string, len(Fixtures.Tags))
	for _, name := range Fixtures.Tags {
		tag, err := svc.CreateTag(ctx, name)
		if err != nil {
			return fmt.Errorf("create tag %q: %w", name, err)
		}
		tags[name] = tag.ID
	}

	for _, b := range Fixtures.Blogs {
		req := simpleblog.CreateBlogRequest{
			Title:       b.Title,
			Content:     b.Content,
			AuthorID:    authors[b.Author],
			CategoryIDs: resolve(b.Categories, categories),
			TagIDs:      resolve(b.Tags, tags),
		}
		if _, err := svc.CreateBlog(ctx, req); err != nil {
			return fmt.Errorf("create blog %q: %w", b.Title, err)
		}
	}

	return nil
}

func resolve(names []string, ids map[string]string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, ids[name])
	}
	return out
}
