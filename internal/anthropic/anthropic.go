package anthropic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mfukushima/recipechat/internal/recipechat"
)

const (
	ProviderName     = "anthropic"
	DefaultBaseURL   = "https://api.anthropic.com/v1"
	DefaultModel     = "claude-3-5-sonnet-20241022"
	AnthropicVersion = "2023-06-01"

	// DefaultMaxTokens bounds the reply length; the Messages API requires
	// an explicit value.
	DefaultMaxTokens = 4096
)

// MessagesAPIRequest represents the request body for Anthropic's Messages API
type MessagesAPIRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	System    string         `json:"system,omitempty"` // System prompt (taken out-of-band by the API)
	Messages  []MessageInput `json:"messages"`
}

// MessageInput represents a message in the conversation
type MessageInput struct {
	Role    string    `json:"role"`    // "user" or "assistant"
	Content []Content `json:"content"` // Array of content blocks
}

// Content represents a content block
type Content struct {
	Type string `json:"type"` // "text"
	Text string `json:"text,omitempty"`
}

// MessagesAPIResponse represents the response from Anthropic's Messages API
type MessagesAPIResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Role       string            `json:"role"`
	Content    []ResponseContent `json:"content"`
	Model      string            `json:"model"`
	StopReason string            `json:"stop_reason"`
	Usage      Usage             `json:"usage"`
	Error      *APIError         `json:"error,omitempty"`
}

// ResponseContent represents a content block in the response
type ResponseContent struct {
	Type string `json:"type"` // "text"
	Text string `json:"text,omitempty"`
}

// Usage represents token usage information
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// APIError represents an error in the API response
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ModelsAPIResponse represents the response from Anthropic's models endpoint
type ModelsAPIResponse struct {
	Data []ModelData `json:"data"`
}

// ModelData represents a single model in the API response
type ModelData struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Config defines the configuration interface for the Anthropic provider
type Config interface {
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the recipechat.CompletionService interface for Anthropic
type Provider struct {
	config Config
	debug  bool
}

// NewProvider creates a new Anthropic provider instance
func NewProvider(config Config) *Provider {
	return &Provider{config: config}
}

// SetDebug enables or disables debug output
func (p *Provider) SetDebug(enabled bool) {
	p.debug = enabled
}

// CreateCompletion sends the full conversation to Anthropic's Messages API
// and returns the response. A leading system message is lifted into the
// request's top-level system field, as the Messages API requires.
func (p *Provider) CreateCompletion(model string, messages []recipechat.Message) (*recipechat.Completion, error) {
	baseURL, err := p.config.GetBaseURL(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get base URL: %w", err)
	}
	token, err := p.config.GetToken(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	reqBody := MessagesAPIRequest{
		Model:     model,
		MaxTokens: DefaultMaxTokens,
	}

	rest := messages
	if len(rest) > 0 && rest[0].Role == recipechat.RoleSystem {
		reqBody.System = rest[0].Content
		rest = rest[1:]
	}
	for _, msg := range rest {
		reqBody.Messages = append(reqBody.Messages, MessageInput{
			Role:    string(msg.Role),
			Content: []Content{{Type: "text", Text: msg.Content}},
		})
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	if p.debug {
		fmt.Fprintf(os.Stderr, "anthropic: POST %s/messages model=%s messages=%d\n", baseURL, model, len(reqBody.Messages))
	}

	req, err := http.NewRequest("POST", baseURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", token)
	req.Header.Set("anthropic-version", AnthropicVersion)

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

	var result MessagesAPIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error parsing response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != nil {
			return nil, fmt.Errorf("API error: %s (%s)", result.Error.Message, result.Error.Type)
		}
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	if len(result.Content) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	// Concatenate text blocks into a single reply
	var text strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &recipechat.Completion{
		Choices: []recipechat.Choice{
			{Message: recipechat.Message{Role: recipechat.RoleAssistant, Content: text.String()}},
		},
	}, nil
}

// ListModels returns the list of available models from the API
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
	req.Header.Set("x-api-key", token)
	req.Header.Set("anthropic-version", AnthropicVersion)

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
		models = append(models, recipechat.ModelInfo{
			ID:          model.ID,
			Description: model.DisplayName,
			IsDefault:   model.ID == DefaultModel,
		})
	}

	return models, nil
}
