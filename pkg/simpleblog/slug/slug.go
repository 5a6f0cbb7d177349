// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lower-cases s, strips diacritics and collapses every run of
// characters outside [a-z0-9] into a single hyphen. Leading and trailing
// hyphens are removed, so the result may be empty.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Unique returns Slugify(title) if it is not in used, otherwise the first
// of base-2, base-3, ... that is free. used is not modified.
func Unique(title string, used map[string]struct{}) string {
	base := Slugify(title)
	if _, taken := used[base]; !taken {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}
