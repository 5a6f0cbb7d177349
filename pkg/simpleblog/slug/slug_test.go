package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation runs", "Go:  the   good -- parts!", "go-the-good-parts"},
		{"leading and trailing", "  --Hello--  ", "hello"},
		{"diacritics", "Café Crème Brûlée", "cafe-creme-brulee"},
		{"digits", "Top 10 tips for 2024", "top-10-tips-for-2024"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
		{"non latin dropped", "日本語 blog", "blog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestUnique_Sequence(t *testing.T) {
	used := map[string]struct{}{}

	first := Unique("Hello World", used)
	assert.Equal(t, "hello-world", first)
	used[first] = struct{}{}

	second := Unique("Hello World", used)
	assert.Equal(t, "hello-world-2", second)
	used[second] = struct{}{}

	third := Unique("hello, world!", used)
	assert.Equal(t, "hello-world-3", third)
}

func TestUnique_SkipsTakenSuffixes(t *testing.T) {
	used := map[string]struct{}{
		"post":   {},
		"post-2": {},
		"post-4": {},
	}
	assert.Equal(t, "post-3", Unique("Post", used))
	assert.Len(t, used, 3)
}

func TestUnique_EmptySlug(t *testing.T) {
	assert.Equal(t, "", Unique("???", nil))
	assert.Equal(t, "-2", Unique("???", map[string]struct{}{"": {}}))
}
