package simpleblog

import "time"

// TimestampLayout is the ISO-8601 form used for Blog.CreatedAt. Timestamps are
// always UTC with millisecond precision so that string order equals
// chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ID prefixes used when generating entity identifiers
const (
	BlogIDPrefix     = "blog"
	CategoryIDPrefix = "cat"
	TagIDPrefix      = "tag"
	AuthorIDPrefix   = "auth"
)

// Author writes blogs
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

// Category groups blogs by topic
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tag is a free-form label attached to blogs
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Blog is a single post. Slug and CreatedAt are assigned at creation and
// never change.
type Blog struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Content     string   `json:"content"`
	CategoryIDs []string `json:"categoryIds"`
	TagIDs      []string `json:"tagIds"`
	AuthorID    string   `json:"authorId"`
	CreatedAt   string   `json:"createdAt"`
}

// CreatedTime parses CreatedAt. It returns the zero time if the stored value
// is not a valid timestamp.
func (b Blog) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, b.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ExpandedBlog is a blog joined with the taxonomy entities it references.
// It is built at read time and never persisted.
type ExpandedBlog struct {
	Blog       Blog       `json:"blog"`
	Categories []Category `json:"categories"`
	Tags       []Tag      `json:"tags"`
	Author     *Author    `json:"author"`
}

// CreateBlogRequest contains the input for creating a blog. CategoryIDs and
// TagIDs must be non-nil; they may be empty.
type CreateBlogRequest struct {
	Title       string
	ImageURL    string
	Content     string
	CategoryIDs []string
	TagIDs      []string
	AuthorID    string
}

// FormatTimestamp renders t in the persisted CreatedAt form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
