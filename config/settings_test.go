package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GROQ_MODEL", "")
	t.Setenv("GROQ_API_KEY", "gsk-test")

	settings, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Provider != "groq" {
		t.Errorf("expected provider 'groq', got %q", settings.LLM.Provider)
	}
	if settings.LLM.Model != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected default model %q", settings.LLM.Model)
	}
	if settings.LLM.APIKey != "gsk-test" {
		t.Errorf("expected API key from GROQ_API_KEY, got %q", settings.LLM.APIKey)
	}
	if settings.LLM.MaxTokens != 4000 {
		t.Errorf("expected max tokens 4000, got %d", settings.LLM.MaxTokens)
	}
	if settings.HTTP.Timeout != 10*time.Second {
		t.Errorf("expected 10s HTTP timeout, got %s", settings.HTTP.Timeout)
	}
	if settings.Store.BlogData != "blogs-data.js" {
		t.Errorf("unexpected blog data path %q", settings.Store.BlogData)
	}
	if settings.Pipeline.KeywordFallback != FallbackFirst {
		t.Errorf("expected fallback 'first', got %q", settings.Pipeline.KeywordFallback)
	}
	if settings.Profile.Author == "" {
		t.Error("expected embedded profile to be loaded")
	}
}

func TestNewWithAlias(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "claude")

	settings, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Provider != "anthropic" {
		t.Errorf("expected provider 'anthropic' (normalized from 'claude'), got %q", settings.LLM.Provider)
	}
	if settings.LLM.APIKeyEnv != "ANTHROPIC_API_KEY" {
		t.Errorf("expected ANTHROPIC_API_KEY, got %q", settings.LLM.APIKeyEnv)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "unknown_provider")

	if _, err := New(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewWithInvalidEnvVar(t *testing.T) {
	cases := map[string]string{
		"LLM_MAX_TOKENS":          "not-a-number",
		"LLM_TEMPERATURE":         "warm",
		"HTTP_TIMEOUT_SECS":       "0",
		"GENERATION_TIMEOUT_SECS": "-5",
		"PROMPT_VARIETY":          "sometimes",
		"KEYWORD_FALLBACK":        "last",
		"STORE_BACKEND":           "postgres",
		"RECENT_TITLES":           "-1",
		"LOG_FORMAT":              "xml",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := New()
			if err == nil {
				t.Fatalf("expected error for %s=%q", key, val)
			}
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error should name %s: %v", key, err)
			}
		})
	}
}

func TestRequireLLMKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")

	settings, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = settings.RequireLLMKey()
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestMustNewPanics(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "unknown_provider")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown provider")
		}
	}()
	MustNew()
}

func TestSupportedProviders(t *testing.T) {
	got := strings.Join(SupportedProviders(), ",")
	if got != "anthropic,deepseek,gemini,groq,openai" {
		t.Errorf("unexpected providers %q", got)
	}
}

func TestDefaultProfileURLs(t *testing.T) {
	p := DefaultProfile()
	if err := p.Validate(); err != nil {
		t.Fatalf("embedded profile invalid: %v", err)
	}
	if got := p.PostURL(12); got != "https://coach365.github.io/turnitinpaperchecker/blog-post.html?id=12" {
		t.Errorf("unexpected post URL %q", got)
	}
	if got := p.ListingURL(); got != "https://coach365.github.io/turnitinpaperchecker/blog.html" {
		t.Errorf("unexpected listing URL %q", got)
	}
	if got := p.SitemapURL(); got != "https://coach365.github.io/turnitinpaperchecker/sitemap.xml" {
		t.Errorf("unexpected sitemap URL %q", got)
	}
	links := p.BacklinkURLs()
	if len(links) != 3 || links[2] != "https://coach365.github.io/turnitinpaperchecker/#pricing" {
		t.Errorf("unexpected backlinks %v", links)
	}
	if len(p.Keywords) == 0 {
		t.Error("expected default keywords")
	}
}

func TestLoadProfileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	data := "name: Example\nurl: https://blog.example.org\npost_path: posts/{id}.html\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Host != "blog.example.org" {
		t.Errorf("expected host derived from url, got %q", p.Host)
	}
	if got := p.PostURL(3); got != "https://blog.example.org/posts/3.html" {
		t.Errorf("unexpected post URL %q", got)
	}
	if got := p.NewsletterPostURL(3); got != "https://blog.example.org/posts/3.html" {
		t.Errorf("newsletter links should follow the overridden url, got %q", got)
	}
	if p.Author != "TurnitinPaperChecker Team" {
		t.Errorf("unset fields should keep defaults, got author %q", p.Author)
	}
}

func TestLoadProfileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte("post_path: posts.html\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(path); err == nil {
		t.Error("expected error for post_path without {id}")
	}

	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing profile file")
	}
}
