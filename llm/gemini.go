// Google Gemini Provider implementation using official google.golang.org/genai SDK.
//
// Information Hiding:
// - API authentication and client creation
// - Request/response format for Gemini API
// - System instruction handling via config

package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	initErr     error // Stores client initialization error for deferred reporting
}

// NewGeminiProvider creates a new Gemini provider.
// If client initialization fails, the error is stored and returned on first use.
func NewGeminiProvider(apiKey, model string, maxTokens uint32, temperature float32) *GeminiProvider {
	return newGeminiProvider("", apiKey, model, maxTokens, temperature)
}

func newGeminiProvider(baseURL, apiKey, model string, maxTokens uint32, temperature float32) *GeminiProvider {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	p := &GeminiProvider{
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
	}
	client, err := genai.NewClient(context.Background(), cfg)
	if err != nil {
		// Store initialization error to return on first use - preserves constructor signature
		p.initErr = fmt.Errorf("failed to initialize Gemini client: %w", err)
		return p
	}
	p.client = client
	return p
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the current model.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Chat sends one GenerateContent request.
func (p *GeminiProvider) Chat(ctx context.Context, messages []ChatMessage) (LLMResponse, error) {
	if p.initErr != nil {
		return LLMResponse{}, p.initErr
	}

	system, turns := splitSystem(messages)
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.temperature),
		MaxOutputTokens: p.maxTokens,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	response, err := p.client.Models.GenerateContent(ctx, p.model, toGeminiContents(turns), cfg)
	if err != nil {
		return LLMResponse{}, fmt.Errorf("gemini generate content failed: %w", err)
	}

	res := LLMResponse{Content: response.Text()}
	if len(response.Candidates) > 0 {
		res.Truncated = response.Candidates[0].FinishReason == genai.FinishReasonMaxTokens
	}
	if m := response.UsageMetadata; m != nil {
		res.Usage = &TokenUsage{
			PromptTokens:     uint32(m.PromptTokenCount),
			CompletionTokens: uint32(m.CandidatesTokenCount),
			TotalTokens:      uint32(m.TotalTokenCount),
		}
	}
	return res, nil
}

func toGeminiContents(turns []ChatMessage) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, msg := range turns {
		role := genai.RoleUser
		if msg.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(msg.Content, genai.Role(role)))
	}
	return out
}

var _ Provider = (*GeminiProvider)(nil)
