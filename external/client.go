package external

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// DefaultTimeout applies when a Client is built with a zero timeout.
const DefaultTimeout = 10 * time.Second

// Client makes bounded-time HTTP requests to external APIs.
type Client struct {
	client         *http.Client
	timeout        time.Duration
	allowedDomains []string
}

// NewClient creates a client whose every request is bounded by timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// WithAllowedDomains restricts requests to the given hosts and their subdomains.
func (c *Client) WithAllowedDomains(domains []string) *Client {
	c.allowedDomains = domains
	return c
}

// WithHTTPClient swaps the transport, keeping the configured timeout.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc.Timeout == 0 {
		hc.Timeout = c.timeout
	}
	c.client = hc
	return c
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Do sends req and reads the body. The result fails when the request cannot
// be made, the host is not allowed, or the status is not one of want
// (any 2xx when want is empty). The body is returned even on status failure.
func (c *Client) Do(req *http.Request, want ...int) ([]byte, Result) {
	if !c.isDomainAllowed(req.URL) {
		return nil, Failedf("access to host %q is not allowed", req.URL.Hostname())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, Failedf("request to %s timed out after %s", req.URL.Host, c.timeout)
		}
		return nil, Failed(fmt.Errorf("request to %s failed: %w", req.URL.Host, redact(err)))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, Failed(fmt.Errorf("failed to read response body: %w", err))
	}

	if !statusOK(resp.StatusCode, want) {
		return body, Failedf("%s returned %s", req.URL.Host, resp.Status)
	}
	return body, Succeeded(resp.Status)
}

func statusOK(code int, want []int) bool {
	if len(want) == 0 {
		return code >= 200 && code < 300
	}
	return slices.Contains(want, code)
}

// isDomainAllowed checks the URL's host against the allowlist.
func (c *Client) isDomainAllowed(u *url.URL) bool {
	if len(c.allowedDomains) == 0 {
		return true
	}
	if u == nil {
		return false
	}
	host := u.Hostname()
	for _, domain := range c.allowedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// redact drops the request URL from transport errors; query strings may carry keys.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
