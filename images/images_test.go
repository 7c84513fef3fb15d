package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinex/inkwell/external"
)

const defaultImage = "https://images.example.com/default.jpg"

func TestQueryTerms(t *testing.T) {
	tests := []struct {
		keyword string
		want    []string
	}{
		{"how to reduce turnitin similarity score", []string{"reduce", "turnitin", "similarity"}},
		{"AI content detection for students", []string{"content", "detection", "students"}},
		{"plagiarism checker Rs 200 India", []string{"plagiarism", "checker", "india"}},
		{"how to do it", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QueryTerms(tt.keyword), tt.keyword)
	}
}

func TestQuery(t *testing.T) {
	got := Query("citation styles guide APA MLA", []string{"student", "education", "academic"})
	assert.Equal(t, "citation styles guide student education academic", got)
}

func TestUnsplashSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Client-ID ukey", r.Header.Get("Authorization"))
		assert.Equal(t, "reduce turnitin student", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, "landscape", r.URL.Query().Get("orientation"))
		_, _ = w.Write([]byte(`{"results":[{"urls":{"regular":"https://u.example/1.jpg"}},{"urls":{"regular":"https://u.example/2.jpg"}}]}`))
	}))
	defer srv.Close()

	u := NewUnsplash(external.NewClient(time.Second), "ukey").WithEndpoint(srv.URL)
	url, res := u.Search(context.Background(), "reduce turnitin student")
	require.True(t, res.Success(), res.String())
	assert.Equal(t, "https://u.example/1.jpg", url)
}

func TestPexelsSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pkey", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"photos":[{"src":{"large":"https://p.example/1.jpg"}}]}`))
	}))
	defer srv.Close()

	p := NewPexels(external.NewClient(time.Second), "pkey").WithEndpoint(srv.URL)
	url, res := p.Search(context.Background(), "q")
	require.True(t, res.Success(), res.String())
	assert.Equal(t, "https://p.example/1.jpg", url)
}

func TestResolverFallsThroughToSecondary(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer primary.Close()
	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "reduce turnitin similarity student education", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"photos":[{"src":{"large":"https://p.example/fallback.jpg"}}]}`))
	}))
	defer secondary.Close()

	client := external.NewClient(time.Second)
	r := NewResolver(defaultImage, nil,
		Step{Source: NewUnsplash(client, "k").WithEndpoint(primary.URL), Context: []string{"student", "education", "academic"}},
		Step{Source: NewPexels(client, "k").WithEndpoint(secondary.URL), Context: []string{"student", "education"}},
	)

	res := r.ResolveDetailed(context.Background(), "how to reduce turnitin similarity score")
	assert.Equal(t, "https://p.example/fallback.jpg", res.URL)
	assert.Equal(t, "pexels", res.Source)
	require.Len(t, res.Attempts, 2)
	assert.False(t, res.Attempts[0].Result.Success())
}

func TestResolverDefaultWhenUnconfigured(t *testing.T) {
	client := external.NewClient(time.Second)
	r := NewResolver(defaultImage, nil,
		Step{Source: NewUnsplash(client, "")},
		Step{Source: NewPexels(client, "")},
	)

	res := r.ResolveDetailed(context.Background(), "anything")
	assert.Equal(t, defaultImage, res.URL)
	assert.Equal(t, "default", res.Source)
	for _, a := range res.Attempts {
		assert.Contains(t, a.Result.Reason(), "skipped")
	}
}

func TestResolverDefaultWhenUnreachable(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()
	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	client := external.NewClient(50 * time.Millisecond)
	r := NewResolver(defaultImage, nil,
		Step{Source: NewUnsplash(client, "k").WithEndpoint(failing.URL)},
		Step{Source: NewPexels(client, "k").WithEndpoint(slow.URL)},
		Step{Source: NewPexels(client, "k").WithEndpoint(closedURL)},
	)

	assert.Equal(t, defaultImage, r.Resolve(context.Background(), "keyword"))
}

func TestResolverMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	r := NewResolver(defaultImage, nil, Step{Source: NewUnsplash(external.NewClient(time.Second), "k").WithEndpoint(srv.URL)})
	assert.Equal(t, defaultImage, r.Resolve(context.Background(), "keyword"))
}
