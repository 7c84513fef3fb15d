package images

import (
	"context"

	"github.com/richinex/inkwell/external"
)

// UnsplashEndpoint is the Unsplash photo search API.
const UnsplashEndpoint = "https://api.unsplash.com/search/photos"

// Unsplash searches Unsplash with a Client-ID access key.
type Unsplash struct {
	client   *external.Client
	key      string
	endpoint string
}

// NewUnsplash creates an Unsplash source. An empty key makes every search skip.
func NewUnsplash(client *external.Client, accessKey string) *Unsplash {
	return &Unsplash{client: client, key: accessKey, endpoint: UnsplashEndpoint}
}

// WithEndpoint overrides the search URL.
func (u *Unsplash) WithEndpoint(endpoint string) *Unsplash {
	u.endpoint = endpoint
	return u
}

// Name returns "unsplash".
func (u *Unsplash) Name() string { return "unsplash" }

type unsplashResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// Search returns the regular-size URL of the first result.
func (u *Unsplash) Search(ctx context.Context, query string) (string, external.Result) {
	if u.key == "" {
		return "", external.Skipped("UNSPLASH_ACCESS_KEY not set")
	}

	var resp unsplashResponse
	if res := searchJSON(ctx, u.client, u.endpoint, query, "Client-ID "+u.key, &resp); !res.Success() {
		return "", res
	}
	if len(resp.Results) == 0 || resp.Results[0].URLs.Regular == "" {
		return "", external.Failedf("no results for %q", query)
	}
	return resp.Results[0].URLs.Regular, external.Succeeded(resp.Results[0].URLs.Regular)
}
