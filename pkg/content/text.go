package content

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// StripHTML removes all markup from s and collapses whitespace
func StripHTML(s string) string {
	// paragraph tags carry no whitespace in HN item text, keep words apart
	s = strings.NewReplacer("<p>", " <p>", "<br>", " <br>", "</li>", "</li> ").Replace(s)
	text := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// Truncate cuts s to at most limit bytes without splitting a rune. limit <= 0 means no limit.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	s = s[:limit]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
