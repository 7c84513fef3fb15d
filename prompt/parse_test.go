package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Fields
	}{
		{
			name: "exact format",
			raw:  "---TITLE---\nMy Title\n\n---CONTENT---\n<h2>A</h2><p>Body</p>\n\n---META---\nShort meta\n\n---END---",
			want: Fields{"title": "My Title", "content": "<h2>A</h2><p>Body</p>", "meta": "Short meta"},
		},
		{
			name: "preamble and trailing chatter",
			raw:  "Sure! Here is your post.\n---TITLE---\nT\n---CONTENT---\nC\n---META---\nM\n---END---\nLet me know if you need changes.",
			want: Fields{"title": "T", "content": "C", "meta": "M"},
		},
		{
			name: "markdown styled markers",
			raw:  "**---TITLE---**\n## My Title\n\n### ---CONTENT---\n<p>Body</p>\n`---META---`\nMeta text\n__---END---__",
			want: Fields{"title": "My Title", "content": "<p>Body</p>", "meta": "Meta text"},
		},
		{
			name: "spaced and lowercase markers",
			raw:  "--- title ---\nT\n--- Content ---\nC\n---meta---\nM\n---end---",
			want: Fields{"title": "T", "content": "C", "meta": "M"},
		},
		{
			name: "inline title",
			raw:  "---TITLE--- \"Quoted Title\"\n---CONTENT---\nC\n---META---\nM\n---END---",
			want: Fields{"title": "Quoted Title", "content": "C", "meta": "M"},
		},
		{
			name: "content in code fence",
			raw:  "---TITLE---\nT\n---CONTENT---\n```html\n<p>Body</p>\n```\n---META---\nM\n---END---",
			want: Fields{"title": "T", "content": "<p>Body</p>", "meta": "M"},
		},
		{
			name: "missing end omits meta",
			raw:  "---TITLE---\nT\n---CONTENT---\nC\n---META---\nM",
			want: Fields{"title": "T", "content": "C"},
		},
		{
			name: "missing content marker omits title and content",
			raw:  "---TITLE---\nT\n<p>C</p>\n---META---\nM\n---END---",
			want: Fields{"meta": "M"},
		},
		{
			name: "blank field omitted",
			raw:  "---TITLE---\n   \n---CONTENT---\nC\n---META---\n---END---",
			want: Fields{"content": "C"},
		},
		{
			name: "first closing marker wins",
			raw:  "---TITLE---\nT\n---CONTENT---\nC1\n---META---\nM1\n---END---\n---CONTENT---\nC2\n---META---\nM2\n---END---",
			want: Fields{"title": "T", "content": "C1", "meta": "M1"},
		},
		{
			name: "markers out of order",
			raw:  "---CONTENT---\nC\n---TITLE---\nT\n---META---\nM\n---END---",
			want: Fields{"meta": "M"},
		},
		{
			name: "garbage",
			raw:  "I cannot help with that.",
			want: Fields{},
		},
		{
			name: "empty",
			raw:  "",
			want: Fields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}
