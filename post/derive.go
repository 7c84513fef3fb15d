package post

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// MaxSlugLen is the slug length cap.
	MaxSlugLen = 60
	// ExcerptRunes is the character budget taken from the raw content.
	ExcerptRunes = 200
	// WordsPerMinute converts word count to read time.
	WordsPerMinute = 200
	// MinReadTime is the read time floor in minutes.
	MinReadTime = 3
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	stripPolicy    = bluemonday.StrictPolicy()
)

// Slug lowercases title, drops everything outside [a-z0-9], whitespace and
// hyphens, turns whitespace runs into single hyphens, trims hyphens and
// truncates. Slugs are not checked for collisions.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugLen {
		s = s[:MaxSlugLen]
	}
	return s
}

// Excerpt takes the first ExcerptRunes characters of content, strips markup,
// trims and appends an ellipsis. The budget applies before stripping.
func Excerpt(content string) string {
	prefix := content
	if r := []rune(content); len(r) > ExcerptRunes {
		prefix = string(r[:ExcerptRunes])
	}
	return strings.TrimSpace(stripMarkup(prefix)) + "..."
}

// stripMarkup returns the plain text of s. Entities are decoded, and any
// markup the decoding produces is stripped again, so escaped tags in the
// source never come back as live ones.
func stripMarkup(s string) string {
	text := html.UnescapeString(stripPolicy.Sanitize(s))
	for range 8 {
		again := html.UnescapeString(stripPolicy.Sanitize(text))
		if again == text {
			break
		}
		text = again
	}
	return text
}

// ReadTime estimates minutes to read content.
func ReadTime(content string) int {
	return max(MinReadTime, len(strings.Fields(content))/WordsPerMinute)
}
