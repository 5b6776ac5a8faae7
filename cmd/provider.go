package cmd

import (
	"fmt"

	"github.com/mfukushima/recipechat/internal/anthropic"
	"github.com/mfukushima/recipechat/internal/gemini"
	"github.com/mfukushima/recipechat/internal/openai"
	"github.com/mfukushima/recipechat/internal/recipechat"
	"github.com/mfukushima/recipechat/internal/recipechat/config"
)

// newCompletionService creates a completion service for the given provider name
func newCompletionService(cfg *config.Config, providerName string) (recipechat.CompletionService, error) {
	switch providerName {
	case openai.ProviderName:
		svc := openai.NewProvider(cfg)
		svc.SetDebug(verbose)
		return svc, nil
	case anthropic.ProviderName:
		svc := anthropic.NewProvider(cfg)
		svc.SetDebug(verbose)
		return svc, nil
	case gemini.ProviderName:
		svc := gemini.NewProvider(cfg)
		svc.SetDebug(verbose)
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}
