// Package images resolves a stock photo for a keyword.
//
// Information Hiding:
// - Provider endpoints, auth schemes and response shapes hidden behind Source
// - Fallback order and the constant last-resort image hidden behind Resolver
// - No call here returns an error or panics; failures become external.Results
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/richinex/inkwell/external"
)

// PageSize is how many results each search asks for.
const PageSize = 5

// Source searches one image provider.
type Source interface {
	Name() string
	// Search returns the URL of the first result for query.
	Search(ctx context.Context, query string) (string, external.Result)
}

// searchJSON runs a GET search and decodes the JSON body into out.
func searchJSON(ctx context.Context, client *external.Client, endpoint, query, auth string, out any) external.Result {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(PageSize))
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return external.Failed(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Accept", "application/json")

	body, res := client.Do(req, http.StatusOK)
	if !res.Success() {
		return res
	}
	if err := json.Unmarshal(body, out); err != nil {
		return external.Failed(fmt.Errorf("failed to decode response: %w", err))
	}
	return res
}
