package seo

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/external"
	"github.com/richinex/inkwell/post"
)

var now = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestBuildSitemap(t *testing.T) {
	site := config.DefaultProfile()
	posts := []post.Post{
		{ID: 1, Date: "January 15, 2025"},
		{ID: 2, Date: "not a date"},
	}

	data, err := BuildSitemap(posts, site, now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, string(data), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)

	var set urlSet
	require.NoError(t, xml.Unmarshal(data, &set))
	require.Len(t, set.URLs, 4)

	assert.Equal(t, urlEntry{Loc: "https://coach365.github.io/turnitinpaperchecker/", LastMod: "2025-06-01", ChangeFreq: "daily", Priority: "1.0"}, set.URLs[0])
	assert.Equal(t, urlEntry{Loc: "https://coach365.github.io/turnitinpaperchecker/blog.html", LastMod: "2025-06-01", ChangeFreq: "daily", Priority: "0.9"}, set.URLs[1])
	assert.Equal(t, urlEntry{Loc: "https://coach365.github.io/turnitinpaperchecker/blog-post.html?id=1", LastMod: "2025-01-15", ChangeFreq: "monthly", Priority: "0.8"}, set.URLs[2])
	assert.Equal(t, "2025-06-01", set.URLs[3].LastMod, "unparsable date falls back to now")
}

func TestBuildSitemapEscapesQuery(t *testing.T) {
	data, err := BuildSitemap([]post.Post{{ID: 3}}, config.DefaultProfile(), now)
	require.NoError(t, err)
	// '?' is legal in XML text; '&' would have to be escaped.
	assert.Contains(t, string(data), "<loc>https://coach365.github.io/turnitinpaperchecker/blog-post.html?id=3</loc>")
}

func TestWriteSitemap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemap.xml")
	require.NoError(t, WriteSitemap(path, []byte("<urlset/>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<urlset/>", string(data))
}

func TestPing(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("sitemap")
	}))
	defer srv.Close()

	res := NewPinger(external.NewClient(time.Second)).WithEndpoint(srv.URL).Ping(context.Background(), "https://example.org/sitemap.xml")
	assert.True(t, res.Success(), res.String())
	assert.Equal(t, "https://example.org/sitemap.xml", got)
}

func TestPingNon200IsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res := NewPinger(external.NewClient(time.Second)).WithEndpoint(srv.URL).Ping(context.Background(), "x")
	assert.False(t, res.Success())
}

func TestIndexNowNotify(t *testing.T) {
	var body indexNowRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	site := config.DefaultProfile()
	n := NewIndexNow(external.NewClient(time.Second), "abc123", site).WithEndpoint(srv.URL)
	res := n.Notify(context.Background(), site.PostURL(5))

	assert.True(t, res.Success(), res.String())
	assert.Equal(t, indexNowRequest{
		Host:        "coach365.github.io",
		Key:         "abc123",
		KeyLocation: "https://coach365.github.io/turnitinpaperchecker/abc123.txt",
		URLList:     []string{"https://coach365.github.io/turnitinpaperchecker/blog-post.html?id=5"},
	}, body)
}

func TestIndexNowSkipsWithoutKey(t *testing.T) {
	n := NewIndexNow(external.NewClient(time.Second), "", config.DefaultProfile())
	res := n.Notify(context.Background(), "https://example.org/")
	assert.False(t, res.Success())
	assert.Contains(t, res.Reason(), "skipped")
}

func TestIndexNowRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n := NewIndexNow(external.NewClient(time.Second), "k", config.DefaultProfile()).WithEndpoint(srv.URL)
	res := n.Notify(context.Background(), "https://example.org/")
	assert.False(t, res.Success())
	assert.Contains(t, res.Reason(), "403")
}
