// Package recipechat provides the core abstractions of the recipe chatbot:
// the conversation message model, the CompletionService interface that all
// provider implementations (openai, anthropic, gemini) must implement, and
// the Agent that advances a conversation by one turn.
package recipechat

import (
	"fmt"
	"strings"
)

// ModelInfo represents information about an available model from a provider.
type ModelInfo struct {
	ID          string // Model identifier (e.g., "gpt-4o-mini", "claude-sonnet-4-5")
	Description string // Human-readable description of the model
	IsDefault   bool   // Whether this is the default model for the provider
}

// Choice is a single candidate reply within a Completion.
type Choice struct {
	Message Message
}

// Completion is the response of a CompletionService call. Providers
// guarantee at least one choice on success.
type Completion struct {
	Choices []Choice
}

// CompletionService defines the interface for LLM providers.
// All provider implementations (openai, anthropic, gemini) must implement
// this interface.
//
// Example usage:
//
//	svc := openai.NewProvider(cfg)
//	completion, err := svc.CreateCompletion("gpt-4o-mini", messages)
type CompletionService interface {
	// CreateCompletion submits the full ordered message list to the
	// provider's completion endpoint and returns its response.
	CreateCompletion(model string, messages []Message) (*Completion, error)

	// ListModels returns a list of available models for the provider.
	ListModels() ([]ModelInfo, error)
}

// ParseModelString parses a model string in "provider:model" format.
// Returns (provider, model, error).
//
// Example:
//
//	provider, model, err := ParseModelString("openai:gpt-4o-mini")
//	// provider = "openai", model = "gpt-4o-mini"
func ParseModelString(modelStr string) (string, string, error) {
	parts := strings.SplitN(modelStr, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid model format: %s (expected format: provider:model, e.g., openai:gpt-4o-mini)", modelStr)
	}

	provider := strings.TrimSpace(parts[0])
	model := strings.TrimSpace(parts[1])

	if provider == "" || model == "" {
		return "", "", fmt.Errorf("provider and model cannot be empty")
	}

	return provider, model, nil
}

// FormatModelString formats provider and model into "provider:model" format.
func FormatModelString(provider, model string) string {
	return fmt.Sprintf("%s:%s", provider, model)
}
