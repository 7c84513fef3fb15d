package post

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"How to Reduce Turnitin Similarity Score!", "how-to-reduce-turnitin-similarity-score"},
		{"  Citation Styles: APA vs. MLA  ", "citation-styles-apa-vs-mla"},
		{"Plagiarism Checker Rs 200 -- India", "plagiarism-checker-rs-200----india"},
		{"Émigré Café Guide", "migr-caf-guide"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.title))
		})
	}
}

func TestSlugTruncates(t *testing.T) {
	title := strings.Repeat("plagiarism ", 10)
	s := Slug(title)
	assert.Len(t, s, MaxSlugLen)
	assert.True(t, strings.HasPrefix(s, "plagiarism-plagiarism"))
}

func TestExcerptStripsTags(t *testing.T) {
	assert.Equal(t, "AHello world...", Excerpt("<h2>A</h2><p>Hello world</p>"))
}

func TestExcerptBudgetAppliesBeforeStripping(t *testing.T) {
	content := "<h2>Intro</h2><p>" + strings.Repeat("word ", 100) + "</p>"
	got := Excerpt(content)

	want := strings.TrimSpace(strings.NewReplacer("<h2>", "", "</h2>", "", "<p>", "").Replace(content[:ExcerptRunes])) + "..."
	assert.Equal(t, want, got)
}

func TestExcerptCountsRunes(t *testing.T) {
	content := strings.Repeat("é", 250)
	got := Excerpt(content)
	assert.Equal(t, strings.Repeat("é", ExcerptRunes)+"...", got)
}

func TestExcerptKeepsPunctuation(t *testing.T) {
	assert.Equal(t, "Don't panic & cite...", Excerpt("<p>Don't panic & cite</p>"))
	assert.Equal(t, "Scores < 20% pass...", Excerpt("<p>Scores &lt; 20% pass</p>"))
}

func TestExcerptEscapedMarkupStaysInert(t *testing.T) {
	got := Excerpt("<p>Use the &lt;script&gt;alert(1)&lt;/script&gt; trick</p>")

	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "</script>")
	assert.True(t, strings.HasPrefix(got, "Use the"), got)
	assert.True(t, strings.HasSuffix(got, "trick..."), got)

	got = Excerpt("<p>&lt;b&gt;bold&lt;/b&gt; claims</p>")
	assert.Equal(t, "bold claims...", got)
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, MinReadTime, ReadTime("short post"))
	assert.Equal(t, MinReadTime, ReadTime(strings.Repeat("w ", 799)))
	assert.Equal(t, 8, ReadTime(strings.Repeat("w ", 1650)))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 8, NextID([]Post{{ID: 3}, {ID: 7}, {ID: 2}}))
}

func TestLatest(t *testing.T) {
	_, ok := Latest(nil)
	assert.False(t, ok)

	p, ok := Latest([]Post{{ID: 4, Title: "four"}, {ID: 9, Title: "nine"}, {ID: 5}})
	require.True(t, ok)
	assert.Equal(t, "nine", p.Title)
}

func TestPublishedAt(t *testing.T) {
	ts, ok := Post{Date: "December 15, 2024"}.PublishedAt()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC), ts)

	_, ok = Post{Date: "2024-12-15"}.PublishedAt()
	assert.False(t, ok)
}

func TestAssemble(t *testing.T) {
	now := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	content := "<h2>Intro</h2><p>Hello world</p>"
	p, err := Assemble(map[string]string{
		FieldTitle:   "Turnitin Guide for Students",
		FieldContent: content,
		FieldMeta:    "A guide.",
	}, Details{Keyword: "turnitin guide", Image: "https://img/x.jpg", Author: "Team", Now: now})
	require.NoError(t, err)

	assert.Zero(t, p.ID)
	assert.Equal(t, "turnitin-guide-for-students", p.Slug)
	assert.Equal(t, "IntroHello world...", p.Excerpt)
	assert.Equal(t, "March 4, 2025", p.Date)
	assert.Equal(t, MinReadTime, p.ReadTime)
	assert.Equal(t, "https://img/x.jpg", p.Image)
	assert.Equal(t, "A guide.", p.Meta)
	assert.Equal(t, "Team", p.Author)
	assert.Equal(t, "turnitin guide", p.Keyword)
}

func TestAssembleMissingFields(t *testing.T) {
	_, err := Assemble(map[string]string{FieldMeta: "only meta"}, Details{})
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "title, content")

	_, err = Assemble(map[string]string{FieldTitle: "T", FieldContent: "   "}, Details{})
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "content")
}

func TestAssembleMetaOptional(t *testing.T) {
	p, err := Assemble(map[string]string{FieldTitle: "T", FieldContent: "<p>c</p>"}, Details{Now: time.Now()})
	require.NoError(t, err)
	assert.Empty(t, p.Meta)
}

func TestMissingLinks(t *testing.T) {
	content := `<p>Try <a href="https://site.example/">Checker</a> and
<a href='https://site.example/#pricing'>pricing</a>.</p>`

	missing, err := MissingLinks(content, []string{
		"https://site.example/",
		"https://site.example/#services",
		"https://site.example/#pricing",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://site.example/#services"}, missing)
}
