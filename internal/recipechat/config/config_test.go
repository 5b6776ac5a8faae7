package config

import (
	"strings"
	"testing"
)

func TestGetTokenExpandsEnvVars(t *testing.T) {
	t.Setenv("RECIPECHAT_TEST_KEY", "sk-test-123")

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{
			name:  "dollar syntax",
			token: "$RECIPECHAT_TEST_KEY",
			want:  "sk-test-123",
		},
		{
			name:  "brace syntax",
			token: "${RECIPECHAT_TEST_KEY}",
			want:  "sk-test-123",
		},
		{
			name:  "literal token",
			token: "sk-literal",
			want:  "sk-literal",
		},
		{
			name:    "unset env var",
			token:   "$RECIPECHAT_TEST_UNSET",
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{OpenAIToken: tt.token}
			got, err := cfg.GetToken("openai")
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetTokenUnsupportedProvider(t *testing.T) {
	cfg := NewDefaultConfig("/tmp/personas")
	if _, err := cfg.GetToken("mistral"); err == nil {
		t.Error("GetToken() succeeded for unsupported provider")
	}
	if _, err := cfg.GetBaseURL("mistral"); err == nil {
		t.Error("GetBaseURL() succeeded for unsupported provider")
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig("/tmp/personas")

	if cfg.Model != "openai:gpt-4o-mini" {
		t.Errorf("default model = %q, want openai:gpt-4o-mini", cfg.Model)
	}

	provider, err := cfg.GetProvider()
	if err != nil {
		t.Fatalf("GetProvider() error = %v", err)
	}
	if provider != "openai" {
		t.Errorf("GetProvider() = %q, want openai", provider)
	}

	model, err := cfg.GetModelName()
	if err != nil {
		t.Fatalf("GetModelName() error = %v", err)
	}
	if model != "gpt-4o-mini" {
		t.Errorf("GetModelName() = %q, want gpt-4o-mini", model)
	}

	for _, provider := range []string{"openai", "anthropic", "gemini"} {
		url, err := cfg.GetBaseURL(provider)
		if err != nil {
			t.Errorf("GetBaseURL(%s) error = %v", provider, err)
			continue
		}
		if !strings.HasPrefix(url, "https://") {
			t.Errorf("GetBaseURL(%s) = %q, want https URL", provider, url)
		}
	}
}
