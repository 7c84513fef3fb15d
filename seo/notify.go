package seo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/external"
)

// Default notification endpoints.
const (
	GooglePingEndpoint = "https://www.google.com/ping"
	IndexNowEndpoint   = "https://api.indexnow.org/indexnow"
)

// Pinger tells a search engine the sitemap changed.
type Pinger struct {
	client   *external.Client
	endpoint string
}

// NewPinger creates a pinger for Google's sitemap ping endpoint.
func NewPinger(client *external.Client) *Pinger {
	return &Pinger{client: client, endpoint: GooglePingEndpoint}
}

// WithEndpoint overrides the ping URL.
func (p *Pinger) WithEndpoint(endpoint string) *Pinger {
	p.endpoint = endpoint
	return p
}

// Ping sends GET <endpoint>?sitemap=<sitemapURL>. Only 200 counts as success.
func (p *Pinger) Ping(ctx context.Context, sitemapURL string) external.Result {
	target := p.endpoint + "?" + url.Values{"sitemap": {sitemapURL}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return external.Failed(fmt.Errorf("failed to build ping request: %w", err))
	}
	_, res := p.client.Do(req, http.StatusOK)
	if res.Success() {
		return external.Succeeded("sitemap pinged")
	}
	return res
}

// IndexNow submits changed URLs to the IndexNow protocol.
type IndexNow struct {
	client   *external.Client
	key      string
	host     string
	siteURL  string
	endpoint string
}

// NewIndexNow creates a notifier for site. An empty key makes Notify skip.
func NewIndexNow(client *external.Client, key string, site config.Profile) *IndexNow {
	return &IndexNow{
		client:   client,
		key:      key,
		host:     site.Host,
		siteURL:  site.URL,
		endpoint: IndexNowEndpoint,
	}
}

// WithEndpoint overrides the submission URL.
func (n *IndexNow) WithEndpoint(endpoint string) *IndexNow {
	n.endpoint = endpoint
	return n
}

type indexNowRequest struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation"`
	URLList     []string `json:"urlList"`
}

// Notify submits urls. 200 and 202 both count as accepted.
func (n *IndexNow) Notify(ctx context.Context, urls ...string) external.Result {
	if n.key == "" {
		return external.Skipped("INDEXNOW_API_KEY not set")
	}
	if len(urls) == 0 {
		return external.Skipped("no URLs to submit")
	}

	body, err := json.Marshal(indexNowRequest{
		Host:        n.host,
		Key:         n.key,
		KeyLocation: n.siteURL + n.key + ".txt",
		URLList:     urls,
	})
	if err != nil {
		return external.Failed(fmt.Errorf("failed to encode IndexNow request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return external.Failed(fmt.Errorf("failed to build IndexNow request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	if _, res := n.client.Do(req, http.StatusOK, http.StatusAccepted); !res.Success() {
		return res
	}
	return external.Succeeded(fmt.Sprintf("%d URL(s) submitted", len(urls)))
}
