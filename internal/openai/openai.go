package openai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/mfukushima/recipechat/internal/recipechat"
)

const (
	ProviderName   = "openai"
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// ChatCompletionsRequest represents the request body for OpenAI's Chat Completions API
type ChatCompletionsRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatMessage represents a message in the conversation
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatCompletionsResponse represents the response from OpenAI's Chat Completions API
type ChatCompletionsResponse struct {
	ID      string       `json:"id"`
	Choices []ChatChoice `json:"choices"`
	Error   *APIError    `json:"error,omitempty"`
}

// ChatChoice represents a single completion choice
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// APIError represents an error in the API response
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ModelsAPIResponse represents the response from OpenAI's models endpoint
type ModelsAPIResponse struct {
	Data []ModelData `json:"data"`
}

// ModelData represents a single model in the API response
type ModelData struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by"`
}

// Config defines the configuration interface for the OpenAI provider
type Config interface {
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the recipechat.CompletionService interface for OpenAI
type Provider struct {
	config Config
	debug  bool
}

// NewProvider creates a new OpenAI provider instance
func NewProvider(config Config) *Provider {
	return &Provider{config: config}
}

// SetDebug enables or disables debug output
func (p *Provider) SetDebug(enabled bool) {
	p.debug = enabled
}

// CreateCompletion sends the full conversation to OpenAI's Chat Completions
// API and returns the response
func (p *Provider) CreateCompletion(model string, messages []recipechat.Message) (*recipechat.Completion, error) {
	baseURL, err := p.config.GetBaseURL(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get base URL: %w", err)
	}
	token, err := p.config.GetToken(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	reqBody := ChatCompletionsRequest{
		Model:    model,
		Messages: make([]ChatMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		reqBody.Messages = append(reqBody.Messages, ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	if p.debug {
		fmt.Fprintf(os.Stderr, "openai: POST %s/chat/completions model=%s messages=%d\n", baseURL, model, len(messages))
	}

	req, err := http.NewRequest("POST", baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ChatCompletionsResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			return nil, fmt.Errorf("API error: %s (%s)", errResp.Error.Message, errResp.Error.Type)
		}
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	var result ChatCompletionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error parsing response: %v", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	completion := &recipechat.Completion{
		Choices: make([]recipechat.Choice, 0, len(result.Choices)),
	}
	for _, choice := range result.Choices {
		completion.Choices = append(completion.Choices, recipechat.Choice{
			Message: recipechat.Message{
				Role:    recipechat.Role(choice.Message.Role),
				Content: choice.Message.Content,
			},
		})
	}

	return completion, nil
}

// ListModels returns the chat-capable models from the API
func (p *Provider) ListModels() ([]recipechat.ModelInfo, error) {
	baseURL, err := p.config.GetBaseURL(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get base URL: %w", err)
	}
	token, err := p.config.GetToken(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	req, err := http.NewRequest("GET", baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	var result ModelsAPIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error parsing response: %v", err)
	}

	var models []recipechat.ModelInfo
	for _, model := range result.Data {
		if !isChatModel(model.ID) {
			continue
		}
		models = append(models, recipechat.ModelInfo{
			ID:        model.ID,
			IsDefault: model.ID == DefaultModel,
		})
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].ID < models[j].ID
	})

	return models, nil
}

// isChatModel filters the model list down to chat completion models,
// excluding embeddings, audio, image and moderation models.
func isChatModel(id string) bool {
	if strings.HasPrefix(id, "gpt-") {
		return !strings.Contains(id, "instruct") &&
			!strings.Contains(id, "audio") &&
			!strings.Contains(id, "realtime") &&
			!strings.Contains(id, "transcribe") &&
			!strings.Contains(id, "tts")
	}
	// o1, o3, o4-mini reasoning families
	return strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4")
}
