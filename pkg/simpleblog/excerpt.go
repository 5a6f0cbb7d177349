package simpleblog

import "strings"

// DefaultExcerptWords is the word count used by list views
const DefaultExcerptWords = 30

// Excerpt returns the first words whitespace-separated words of content,
// followed by an ellipsis when content was truncated.
func Excerpt(content string, words int) string {
	if words <= 0 {
		words = DefaultExcerptWords
	}
	tokens := strings.Fields(content)
	if len(tokens) <= words {
		return strings.Join(tokens, " ")
	}
	return strings.Join(tokens[:words], " ") + "…"
}
