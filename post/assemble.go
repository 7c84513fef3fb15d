package post

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Field names produced by the response parser.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldMeta    = "meta"
)

// RequiredFields must be present for a draft to become a post.
var RequiredFields = []string{FieldTitle, FieldContent}

// ErrMissingField is returned when a required field is absent or blank.
var ErrMissingField = errors.New("missing required field")

// Details are the values Assemble does not derive from the generated fields.
type Details struct {
	Keyword string
	Image   string
	Author  string
	Now     time.Time
}

// Assemble validates parsed fields and builds a post with derived slug,
// excerpt and read time. The id is left unset; the store assigns it.
func Assemble(fields map[string]string, d Details) (Post, error) {
	var missing []string
	for _, f := range RequiredFields {
		if strings.TrimSpace(fields[f]) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Post{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	title := fields[FieldTitle]
	content := fields[FieldContent]
	return Post{
		Title:    title,
		Slug:     Slug(title),
		Content:  content,
		Excerpt:  Excerpt(content),
		Image:    d.Image,
		Meta:     fields[FieldMeta],
		Date:     d.Now.Format(DateLayout),
		Author:   d.Author,
		ReadTime: ReadTime(content),
		Keyword:  d.Keyword,
	}, nil
}

// MissingLinks returns the hrefs from required that no anchor in content
// points at. Trailing slashes are ignored when comparing.
func MissingLinks(content string, required []string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	found := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		found[normalizeHref(href)] = true
	})

	var missing []string
	for _, href := range required {
		if !found[normalizeHref(href)] {
			missing = append(missing, href)
		}
	}
	return missing, nil
}

func normalizeHref(href string) string {
	return strings.TrimRight(strings.TrimSpace(href), "/")
}
