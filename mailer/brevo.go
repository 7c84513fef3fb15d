// Package mailer sends the new-post newsletter through Brevo's
// transactional email API.
//
// Information Hiding:
// - Brevo endpoint, auth header and payload shape hidden behind Brevo.Send
// - Email markup hidden behind RenderPost
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/richinex/inkwell/external"
)

// BrevoEndpoint is Brevo's transactional email API.
const BrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// Address is a sender or recipient.
type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Message is one email sent to every recipient at once.
type Message struct {
	Sender  Address
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) external.Result
}

// Brevo sends email through the Brevo API.
type Brevo struct {
	client   *external.Client
	key      string
	endpoint string
}

// NewBrevo creates a Brevo sender.
func NewBrevo(client *external.Client, apiKey string) *Brevo {
	return &Brevo{client: client, key: apiKey, endpoint: BrevoEndpoint}
}

// WithEndpoint overrides the API URL.
func (b *Brevo) WithEndpoint(endpoint string) *Brevo {
	b.endpoint = endpoint
	return b
}

type brevoRequest struct {
	Sender      Address   `json:"sender"`
	To          []Address `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

type brevoError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Send posts msg. Only 201 Created counts as success.
func (b *Brevo) Send(ctx context.Context, msg Message) external.Result {
	if b.key == "" {
		return external.Skipped("BREVO_API_KEY not set")
	}
	if len(msg.To) == 0 {
		return external.Skipped("no recipients")
	}

	to := make([]Address, len(msg.To))
	for i, addr := range msg.To {
		to[i] = Address{Email: addr}
	}
	body, err := json.Marshal(brevoRequest{
		Sender:      msg.Sender,
		To:          to,
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	})
	if err != nil {
		return external.Failed(fmt.Errorf("failed to encode email: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return external.Failed(fmt.Errorf("failed to build email request: %w", err))
	}
	req.Header.Set("api-key", b.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	respBody, res := b.client.Do(req, http.StatusCreated)
	if !res.Success() {
		var apiErr brevoError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return external.Failedf("%s: %s", res.Reason(), apiErr.Message)
		}
		return res
	}
	return external.Succeeded(fmt.Sprintf("sent to %d recipient(s)", len(msg.To)))
}
