// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// - Provider-specific credential and model lookup
// - Loading the site profile (embedded default or SITE_PROFILE override)
//
// This is the only package that reads the process environment. Every other
// component receives the values it needs through its constructor.

package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Settings holds all application configuration.
type Settings struct {
	LLM      LLMConfig
	HTTP     HTTPConfig
	Keys     APIKeys
	Store    StoreConfig
	Pipeline PipelineConfig
	Schedule ScheduleConfig
	Log      LogConfig
	Profile  Profile
}

// LLMConfig holds generation provider configuration.
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	APIKeyEnv   string
	MaxTokens   uint32
	Temperature float64
	Timeout     time.Duration
}

// HTTPConfig holds the uniform timeout for non-generation outbound calls.
type HTTPConfig struct {
	Timeout time.Duration
}

// APIKeys holds optional credentials. An empty key disables its step.
type APIKeys struct {
	Unsplash string
	Pexels   string
	IndexNow string
	Brevo    string
}

// StoreConfig selects the persistence backend and file locations.
type StoreConfig struct {
	Backend     string // "file" or "sqlite"
	DBPath      string
	BlogData    string
	Keywords    string
	Sitemap     string
	Sent        string
	Subscribers string
}

// PipelineConfig tunes keyword selection and prompt building.
type PipelineConfig struct {
	KeywordFallback string // "first" or "random"
	PromptVariety   bool
	RecentTitles    int
}

// ScheduleConfig holds cron lines for the schedule command.
type ScheduleConfig struct {
	Generate   string
	Newsletter string
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Store backends.
const (
	BackendFile   = "file"
	BackendSqlite = "sqlite"
)

// Keyword fallback policies.
const (
	FallbackFirst  = "first"
	FallbackRandom = "random"
)

// providerInfo holds configuration for a specific LLM provider.
type providerInfo struct {
	modelEnv     string
	defaultModel string
	apiKeyEnv    string
}

// Supported providers and their configuration.
var providers = map[string]providerInfo{
	"groq":      {"GROQ_MODEL", "llama-3.3-70b-versatile", "GROQ_API_KEY"},
	"openai":    {"OPENAI_MODEL", "gpt-4o", "OPENAI_API_KEY"},
	"anthropic": {"ANTHROPIC_MODEL", "claude-sonnet-4-20250514", "ANTHROPIC_API_KEY"},
	"deepseek":  {"DEEPSEEK_MODEL", "deepseek-chat", "DEEPSEEK_API_KEY"},
	"gemini":    {"GEMINI_MODEL", "gemini-2.5-flash", "GEMINI_API_KEY"},
}

// Provider aliases map to canonical names.
var providerAliases = map[string]string{
	"claude": "anthropic",
	"google": "gemini",
	"gpt":    "openai",
}

// New loads settings from environment variables.
// Returns an error if the provider is unknown, a variable holds an invalid
// value, or the site profile cannot be read. Missing credentials are not an
// error here; each step checks the key it needs.
func New() (Settings, error) {
	provider := normalizeProvider(getEnvString("LLM_PROVIDER", "groq"))
	info, err := getProviderInfo(provider)
	if err != nil {
		return Settings{}, err
	}

	maxTokens, err := getEnvUint32("LLM_MAX_TOKENS", 4000)
	if err != nil {
		return Settings{}, err
	}

	temperature, err := getEnvFloat64("LLM_TEMPERATURE", 0.7)
	if err != nil {
		return Settings{}, err
	}

	genTimeout, err := getEnvSeconds("GENERATION_TIMEOUT_SECS", 120)
	if err != nil {
		return Settings{}, err
	}

	httpTimeout, err := getEnvSeconds("HTTP_TIMEOUT_SECS", 10)
	if err != nil {
		return Settings{}, err
	}

	recent, err := getEnvInt("RECENT_TITLES", 5)
	if err != nil {
		return Settings{}, err
	}
	if recent < 0 {
		return Settings{}, fmt.Errorf("invalid value for RECENT_TITLES: %d must not be negative", recent)
	}

	variety, err := getEnvBool("PROMPT_VARIETY", true)
	if err != nil {
		return Settings{}, err
	}

	fallback := strings.ToLower(getEnvString("KEYWORD_FALLBACK", FallbackFirst))
	if fallback != FallbackFirst && fallback != FallbackRandom {
		return Settings{}, fmt.Errorf("invalid value for KEYWORD_FALLBACK: %q (valid: first, random)", fallback)
	}

	backend := strings.ToLower(getEnvString("STORE_BACKEND", BackendFile))
	if backend != BackendFile && backend != BackendSqlite {
		return Settings{}, fmt.Errorf("invalid value for STORE_BACKEND: %q (valid: file, sqlite)", backend)
	}

	logFormat := strings.ToLower(getEnvString("LOG_FORMAT", "text"))
	if !slices.Contains([]string{"text", "json"}, logFormat) {
		return Settings{}, fmt.Errorf("invalid value for LOG_FORMAT: %q (valid: text, json)", logFormat)
	}

	profile, err := LoadProfile(os.Getenv("SITE_PROFILE"))
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		LLM: LLMConfig{
			Provider:    provider,
			Model:       getEnvString(info.modelEnv, info.defaultModel),
			APIKey:      os.Getenv(info.apiKeyEnv),
			APIKeyEnv:   info.apiKeyEnv,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			Timeout:     genTimeout,
		},
		HTTP: HTTPConfig{Timeout: httpTimeout},
		Keys: APIKeys{
			Unsplash: os.Getenv("UNSPLASH_ACCESS_KEY"),
			Pexels:   os.Getenv("PEXELS_API_KEY"),
			IndexNow: os.Getenv("INDEXNOW_API_KEY"),
			Brevo:    os.Getenv("BREVO_API_KEY"),
		},
		Store: StoreConfig{
			Backend:     backend,
			DBPath:      getEnvString("STORE_DB", ".inkwell/inkwell.db"),
			BlogData:    getEnvString("BLOG_DATA_FILE", "blogs-data.js"),
			Keywords:    getEnvString("KEYWORDS_FILE", "keywords.json"),
			Sitemap:     getEnvString("SITEMAP_FILE", "sitemap.xml"),
			Sent:        getEnvString("SENT_FILE", "sent-blogs.json"),
			Subscribers: getEnvString("SUBSCRIBERS_FILE", "newsletter-subscribers.json"),
		},
		Pipeline: PipelineConfig{
			KeywordFallback: fallback,
			PromptVariety:   variety,
			RecentTitles:    recent,
		},
		Schedule: ScheduleConfig{
			Generate:   getEnvString("SCHEDULE_GENERATE", "0 6 * * *"),
			Newsletter: getEnvString("SCHEDULE_NEWSLETTER", "0 8 * * *"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnvString("LOG_LEVEL", "info")),
			Format: logFormat,
		},
		Profile: profile,
	}, nil
}

// MustNew loads settings and panics on error.
// Use this only when configuration errors should be fatal.
func MustNew() Settings {
	settings, err := New()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return settings
}

// RequireLLMKey returns an error naming the variable when the generation
// credential is unset.
func (s Settings) RequireLLMKey() error {
	if s.LLM.APIKey == "" {
		return fmt.Errorf("%s environment variable not set", s.LLM.APIKeyEnv)
	}
	return nil
}

// normalizeProvider converts provider aliases to canonical names.
func normalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if canonical, ok := providerAliases[provider]; ok {
		return canonical
	}
	return provider
}

// getProviderInfo returns configuration for a provider.
func getProviderInfo(provider string) (providerInfo, error) {
	info, ok := providers[provider]
	if !ok {
		return providerInfo{}, fmt.Errorf("unknown provider: %q", provider)
	}
	return info, nil
}

// SupportedProviders returns the supported provider names, sorted.
func SupportedProviders() []string {
	result := make([]string, 0, len(providers))
	for name := range providers {
		result = append(result, name)
	}
	slices.Sort(result)
	return result
}

// Environment variable helpers with proper error handling

func getEnvString(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return i, nil
}

func getEnvUint32(key string, defaultVal uint32) (uint32, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return uint32(i), nil
}

func getEnvFloat64(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return f, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return b, nil
}

func getEnvSeconds(key string, defaultSecs int) (time.Duration, error) {
	secs, err := getEnvInt(key, defaultSecs)
	if err != nil {
		return 0, err
	}
	if secs <= 0 {
		return 0, fmt.Errorf("invalid value for %s: %d must be positive", key, secs)
	}
	return time.Duration(secs) * time.Second, nil
}
