package gemini

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
	ProviderName   = "gemini"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"
)

// GenerateRequest represents the request body for Gemini's generateContent API
type GenerateRequest struct {
	Contents          []GeminiContent    `json:"contents"`
	SystemInstruction *SystemInstruction `json:"system_instruction,omitempty"`
}

// SystemInstruction represents the system instruction for Gemini
type SystemInstruction struct {
	Parts []GeminiPart `json:"parts"`
}

// GeminiContent represents a content item in the Gemini request format
type GeminiContent struct {
	Role  string       `json:"role,omitempty"` // "user" or "model"
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of the content in the Gemini request format
type GeminiPart struct {
	Text string `json:"text"`
}

// GenerateResponse represents the response from the generateContent API
type GenerateResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
	Error      *APIError         `json:"error,omitempty"`
}

// GeminiCandidate represents a candidate response
type GeminiCandidate struct {
	Content GeminiResponseContent `json:"content"`
}

// GeminiResponseContent represents the content of a response
type GeminiResponseContent struct {
	Parts []GeminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

// APIError represents an error in the API response
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ModelsAPIResponse represents the response from Gemini's models endpoint
type ModelsAPIResponse struct {
	Models []ModelData `json:"models"`
}

// ModelData represents a single model in the API response
type ModelData struct {
	Name                       string   `json:"name"` // e.g., "models/gemini-2.0-flash"
	DisplayName                string   `json:"displayName"`
	Description                string   `json:"description"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// Config defines the configuration interface for the Gemini provider
type Config interface {
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the recipechat.CompletionService interface for Gemini
type Provider struct {
	config Config
	debug  bool
}

// NewProvider creates a new Gemini provider instance
func NewProvider(config Config) *Provider {
	return &Provider{config: config}
}

// SetDebug enables or disables debug output
func (p *Provider) SetDebug(enabled bool) {
	p.debug = enabled
}

// CreateCompletion sends the full conversation to Gemini's generateContent
// API and returns the response. A leading system message becomes the
// system_instruction; assistant messages map to the "model" role.
func (p *Provider) CreateCompletion(model string, messages []recipechat.Message) (*recipechat.Completion, error) {
	baseURL, err := p.config.GetBaseURL(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get base URL: %w", err)
	}
	token, err := p.config.GetToken(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	var reqBody GenerateRequest

	rest := messages
	if len(rest) > 0 && rest[0].Role == recipechat.RoleSystem {
		reqBody.SystemInstruction = &SystemInstruction{
			Parts: []GeminiPart{{Text: rest[0].Content}},
		}
		rest = rest[1:]
	}
	for _, msg := range rest {
		role := "user"
		if msg.Role == recipechat.RoleAssistant {
			role = "model"
		}
		reqBody.Contents = append(reqBody.Contents, GeminiContent{
			Role:  role,
			Parts: []GeminiPart{{Text: msg.Content}},
		})
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", baseURL, model, token)
	if p.debug {
		fmt.Fprintf(os.Stderr, "gemini: POST %s/models/%s:generateContent contents=%d\n", baseURL, model, len(reqBody.Contents))
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

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

	var result GenerateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error parsing response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != nil {
			return nil, fmt.Errorf("API error: %s (%s)", result.Error.Message, result.Error.Status)
		}
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	completion := &recipechat.Completion{
		Choices: make([]recipechat.Choice, 0, len(result.Candidates)),
	}
	for _, candidate := range result.Candidates {
		var text strings.Builder
		for _, part := range candidate.Content.Parts {
			text.WriteString(part.Text)
		}
		completion.Choices = append(completion.Choices, recipechat.Choice{
			Message: recipechat.Message{Role: recipechat.RoleAssistant, Content: text.String()},
		})
	}

	return completion, nil
}

// ListModels returns the generateContent-capable models from the API
func (p *Provider) ListModels() ([]recipechat.ModelInfo, error) {
	baseURL, err := p.config.GetBaseURL(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get base URL: %w", err)
	}
	token, err := p.config.GetToken(ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	req, err := http.NewRequest("GET", baseURL+"/models?key="+token, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

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
	for _, model := range result.Models {
		if !supportsGenerateContent(model) {
			continue
		}
		id := strings.TrimPrefix(model.Name, "models/")
		models = append(models, recipechat.ModelInfo{
			ID:          id,
			Description: model.Description,
			IsDefault:   id == DefaultModel,
		})
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].ID < models[j].ID
	})

	return models, nil
}

func supportsGenerateContent(model ModelData) bool {
	for _, method := range model.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}
