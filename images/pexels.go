package images

import (
	"context"

	"github.com/richinex/inkwell/external"
)

// PexelsEndpoint is the Pexels photo search API.
const PexelsEndpoint = "https://api.pexels.com/v1/search"

// Pexels searches Pexels with a raw API key in the Authorization header.
type Pexels struct {
	client   *external.Client
	key      string
	endpoint string
}

// NewPexels creates a Pexels source. An empty key makes every search skip.
func NewPexels(client *external.Client, apiKey string) *Pexels {
	return &Pexels{client: client, key: apiKey, endpoint: PexelsEndpoint}
}

// WithEndpoint overrides the search URL.
func (p *Pexels) WithEndpoint(endpoint string) *Pexels {
	p.endpoint = endpoint
	return p
}

// Name returns "pexels".
func (p *Pexels) Name() string { return "pexels" }

type pexelsResponse struct {
	Photos []struct {
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// Search returns the large-size URL of the first photo.
func (p *Pexels) Search(ctx context.Context, query string) (string, external.Result) {
	if p.key == "" {
		return "", external.Skipped("PEXELS_API_KEY not set")
	}

	var resp pexelsResponse
	if res := searchJSON(ctx, p.client, p.endpoint, query, p.key, &resp); !res.Success() {
		return "", res
	}
	if len(resp.Photos) == 0 || resp.Photos[0].Src.Large == "" {
		return "", external.Failedf("no results for %q", query)
	}
	return resp.Photos[0].Src.Large, external.Succeeded(resp.Photos[0].Src.Large)
}
