package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinex/inkwell/post"
)

func fixedClock() time.Time {
	return time.Date(2025, time.March, 4, 9, 30, 0, 0, time.UTC)
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "blogs-data.js"), nil).WithClock(fixedClock)
}

func samplePost(title string) post.Post {
	return post.Post{
		Title:    title,
		Slug:     post.Slug(title),
		Content:  `<h2>Intro</h2><p>Body with "quotes" & <a href="https://example.com/">link</a></p>`,
		Excerpt:  "Intro Body...",
		Image:    "https://images.example.com/a.jpg",
		Meta:     "meta description",
		Date:     "March 4, 2025",
		Author:   "Team",
		ReadTime: 3,
		Keyword:  strings.ToLower(title),
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	s := newTestFileStore(t)
	posts := s.Load(context.Background())
	require.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestFileStoreLoadGarbage(t *testing.T) {
	s := newTestFileStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("this is not javascript"), 0o644))

	assert.Empty(t, s.Load(context.Background()))
}

func TestFileStoreAppendAssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestFileStore(t)

	first, err := s.Append(ctx, samplePost("First Post"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := s.Append(ctx, samplePost("Second Post"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	posts := s.Load(ctx)
	require.Len(t, posts, 2)
	assert.Equal(t, "Second Post", posts[1].Title, "newest is appended last")
}

func TestFileStoreAppendAfterGap(t *testing.T) {
	ctx := context.Background()
	s := newTestFileStore(t)
	existing := `const allBlogs = [{"id": 7, "title": "Old", "slug": "old", "content": "x", "excerpt": "", "image": "", "meta": "", "date": "January 1, 2024", "author": "", "readTime": 3}, {"id": 3, "title": "Older", "slug": "older", "content": "y", "excerpt": "", "image": "", "meta": "", "date": "January 1, 2023", "author": "", "readTime": 3}];`
	require.NoError(t, os.WriteFile(s.Path(), []byte(existing), 0o644))

	stored, err := s.Append(ctx, samplePost("New"))
	require.NoError(t, err)
	assert.Equal(t, 8, stored.ID)
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestFileStore(t)

	var want []post.Post
	for _, title := range []string{"Alpha", "Beta – ünïcode", "Gamma <b>bold</b>"} {
		stored, err := s.Append(ctx, samplePost(title))
		require.NoError(t, err)
		want = append(want, stored)
	}

	assert.Equal(t, want, s.Load(ctx))
}

func TestFileStoreFileLayout(t *testing.T) {
	s := newTestFileStore(t)
	_, err := s.Append(context.Background(), samplePost("Layout"))
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "// Auto-generated blog data\n// Last updated: 2025-03-04 09:30:00\n\nconst allBlogs = [\n"))
	assert.True(t, strings.HasSuffix(text, "];\n"))
	assert.Contains(t, text, `"readTime": 3`)
	assert.Contains(t, text, `<a href=`, "markup is not HTML-escaped")
}

func TestFileStoreRefusesToOverwriteCorruptFile(t *testing.T) {
	s := newTestFileStore(t)
	corrupt := []byte("const allBlogs = [{\"id\": 1,")
	require.NoError(t, os.WriteFile(s.Path(), corrupt, 0o644))

	_, err := s.Append(context.Background(), samplePost("Lost"))
	require.Error(t, err)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, corrupt, data)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	s := newTestFileStore(t)
	_, err := s.Append(context.Background(), samplePost("Clean"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "blogs-data.js", entries[0].Name())
}
