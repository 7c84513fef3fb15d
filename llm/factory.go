// LLM Provider Factory - builder-first API for creating LLM providers.
//
// Quick Start:
//
//	// From loaded settings
//	provider, err := llm.FromConfig(settings.LLM)
//
//	// Full configuration
//	custom, err := llm.ProviderAnthropic.
//	    Model(llm.ModelAnthropicClaudeSonnet4).
//	    MaxTokens(8192).
//	    Temperature(0.3).
//	    APIKey("sk-ant-...")
//
// Credentials are always passed in; this package never reads the environment.

package llm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/richinex/inkwell/config"
)

// ProviderType represents supported LLM providers.
type ProviderType int

const (
	// ProviderGroq is Groq's hosted open models (OpenAI-compatible API).
	ProviderGroq ProviderType = iota
	// ProviderOpenAI is the OpenAI provider (GPT models).
	ProviderOpenAI
	// ProviderAnthropic is the Anthropic provider (Claude models).
	ProviderAnthropic
	// ProviderDeepSeek is the DeepSeek provider.
	ProviderDeepSeek
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini
)

// providerSpec describes one provider type.
type providerSpec struct {
	name         string
	aliases      []string
	defaultModel string
	baseURL      string // OpenAI-compatible vendors only
}

var specs = map[ProviderType]providerSpec{
	ProviderGroq:      {name: "groq", defaultModel: ModelGroqLlama33, baseURL: groqBaseURL},
	ProviderOpenAI:    {name: "openai", aliases: []string{"gpt"}, defaultModel: ModelOpenAIGPT4o},
	ProviderAnthropic: {name: "anthropic", aliases: []string{"claude"}, defaultModel: ModelAnthropicClaudeSonnet4},
	ProviderDeepSeek:  {name: "deepseek", defaultModel: ModelDeepSeekChat, baseURL: deepseekBaseURL},
	ProviderGemini:    {name: "gemini", aliases: []string{"google"}, defaultModel: ModelGeminiFlash25},
}

// String returns the canonical provider name.
func (p ProviderType) String() string {
	if spec, ok := specs[p]; ok {
		return spec.name
	}
	return "unknown"
}

// DefaultModel returns the default model for this provider.
func (p ProviderType) DefaultModel() string {
	return specs[p].defaultModel
}

// ParseProviderType parses a provider name or alias (case-insensitive).
func ParseProviderType(s string) (ProviderType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, spec := range specs {
		if spec.name == name || slices.Contains(spec.aliases, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown provider: %s", s)
}

// Model starts configuring this provider with a specific model.
func (p ProviderType) Model(model string) *ProviderBuilder {
	return NewProviderBuilder(p).Model(model)
}

// APIKey creates a provider with an explicit API key (uses defaults for everything else).
func (p ProviderType) APIKey(key string) (Provider, error) {
	return NewProviderBuilder(p).APIKey(key)
}

// FromConfig builds the configured provider. A missing API key is an error.
func FromConfig(cfg config.LLMConfig) (Provider, error) {
	providerType, err := ParseProviderType(cfg.Provider)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %s environment variable not set", providerType, cfg.APIKeyEnv)
	}
	return NewProviderBuilder(providerType).
		Model(cfg.Model).
		MaxTokens(cfg.MaxTokens).
		Temperature(float32(cfg.Temperature)).
		APIKey(cfg.APIKey)
}

// ProviderBuilder is a builder for configuring LLM providers.
type ProviderBuilder struct {
	providerType ProviderType
	model        string
	maxTokens    uint32
	temperature  *float32
	baseURL      string
}

// NewProviderBuilder creates a new builder for the given provider.
func NewProviderBuilder(providerType ProviderType) *ProviderBuilder {
	return &ProviderBuilder{
		providerType: providerType,
	}
}

// Model sets the model to use.
func (b *ProviderBuilder) Model(model string) *ProviderBuilder {
	b.model = model
	return b
}

// MaxTokens sets maximum tokens for responses.
func (b *ProviderBuilder) MaxTokens(tokens uint32) *ProviderBuilder {
	b.maxTokens = tokens
	return b
}

// Temperature sets temperature (0.0 = deterministic, 1.0 = creative).
func (b *ProviderBuilder) Temperature(temp float32) *ProviderBuilder {
	b.temperature = &temp
	return b
}

// BaseURL points the provider at a different endpoint (proxies, tests).
func (b *ProviderBuilder) BaseURL(url string) *ProviderBuilder {
	b.baseURL = url
	return b
}

// APIKey builds the provider with an explicit API key.
func (b *ProviderBuilder) APIKey(key string) (Provider, error) {
	return b.build(key)
}

func (b *ProviderBuilder) build(apiKey string) (Provider, error) {
	model := b.model
	if model == "" {
		model = b.providerType.DefaultModel()
	}

	maxTokens := b.maxTokens
	if maxTokens == 0 {
		maxTokens = 4000
	}

	temperature := float32(0.7) // default
	if b.temperature != nil {
		temperature = *b.temperature
	}

	switch b.providerType {
	case ProviderGroq, ProviderOpenAI, ProviderDeepSeek:
		spec := specs[b.providerType]
		return NewCompatProvider(spec.name, b.urlOr(spec.baseURL), apiKey, model, maxTokens, temperature), nil
	case ProviderAnthropic:
		return newAnthropicProvider(b.baseURL, apiKey, model, maxTokens, temperature), nil
	case ProviderGemini:
		return newGeminiProvider(b.baseURL, apiKey, model, maxTokens, temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %v", b.providerType)
	}
}

func (b *ProviderBuilder) urlOr(fallback string) string {
	if b.baseURL != "" {
		return b.baseURL
	}
	return fallback
}

// Model identifier constants for all supported providers.

// Groq model identifiers
const (
	// ModelGroqLlama33 is Llama 3.3 70B Versatile.
	ModelGroqLlama33 = "llama-3.3-70b-versatile"
	// ModelGroqLlama31Instant is Llama 3.1 8B Instant: fast and cheap.
	ModelGroqLlama31Instant = "llama-3.1-8b-instant"
)

// OpenAI model identifiers
const (
	// ModelOpenAIGPT4o is GPT-4o.
	ModelOpenAIGPT4o = "gpt-4o"
	// ModelOpenAIGPT4oMini is GPT-4o-mini.
	ModelOpenAIGPT4oMini = "gpt-4o-mini"
)

// Anthropic model identifiers
const (
	// ModelAnthropicClaudeSonnet4 is Claude Sonnet 4: Balanced performance.
	ModelAnthropicClaudeSonnet4 = "claude-sonnet-4-20250514"
)

// DeepSeek model identifiers
const (
	// ModelDeepSeekChat is DeepSeek's general chat model.
	ModelDeepSeekChat = "deepseek-chat"
)

// Gemini model identifiers
const (
	// ModelGeminiFlash25 is Gemini 2.5 Flash.
	ModelGeminiFlash25 = "gemini-2.5-flash"
)
