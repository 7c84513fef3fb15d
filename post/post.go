// Package post defines the published blog item and the derivations that turn
// a generated draft into one: slug, excerpt, read time and backlink audit.
package post

import (
	"time"
)

// DateLayout is the human-readable date stored on every post.
const DateLayout = "January 2, 2006"

// Post is one record in the content store.
type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Image    string `json:"image"`
	Meta     string `json:"meta"`
	Date     string `json:"date"`
	Author   string `json:"author"`
	ReadTime int    `json:"readTime"`
	// Keyword is the queue keyword the post was generated for. Empty on
	// posts written before keywords were recorded.
	Keyword string `json:"keyword,omitempty"`
}

// PublishedAt parses Date. ok is false when Date is not in DateLayout.
func (p Post) PublishedAt() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NextID returns one more than the highest id in posts, or 1 when empty.
func NextID(posts []Post) int {
	maxID := 0
	for _, p := range posts {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// Latest returns the post with the highest id.
func Latest(posts []Post) (Post, bool) {
	if len(posts) == 0 {
		return Post{}, false
	}
	latest := posts[0]
	for _, p := range posts[1:] {
		if p.ID > latest.ID {
			latest = p
		}
	}
	return latest, true
}

// Titles returns the titles of posts in store order.
func Titles(posts []Post) []string {
	titles := make([]string, len(posts))
	for i, p := range posts {
		titles[i] = p.Title
	}
	return titles
}
