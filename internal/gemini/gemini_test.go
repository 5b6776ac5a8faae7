package gemini

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mfukushima/recipechat/internal/recipechat"
)

type testConfig struct {
	baseURL string
}

func (c *testConfig) GetBaseURL(provider string) (string, error) { return c.baseURL, nil }
func (c *testConfig) GetToken(provider string) (string, error)   { return "test-key", nil }

func TestCreateCompletionMapsRoles(t *testing.T) {
	var gotReq GenerateRequest
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotReq); err != nil {
			t.Errorf("request body is not valid JSON: %v", err)
		}
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Try a risotto."}]}}]}`)
	}))
	defer srv.Close()

	p := NewProvider(&testConfig{baseURL: srv.URL})
	messages := []recipechat.Message{
		{Role: recipechat.RoleSystem, Content: "persona"},
		{Role: recipechat.RoleUser, Content: "hi"},
		{Role: recipechat.RoleAssistant, Content: "hello"},
	}

	completion, err := p.CreateCompletion("gemini-2.0-flash", messages)
	if err != nil {
		t.Fatalf("CreateCompletion failed: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/models/gemini-2.0-flash:generateContent") {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key query parameter = %q", gotKey)
	}

	if gotReq.SystemInstruction == nil || gotReq.SystemInstruction.Parts[0].Text != "persona" {
		t.Errorf("system_instruction = %#v, want the leading system message", gotReq.SystemInstruction)
	}
	if len(gotReq.Contents) != 2 {
		t.Fatalf("request has %d contents, want 2", len(gotReq.Contents))
	}
	if gotReq.Contents[0].Role != "user" {
		t.Errorf("first content role = %q, want user", gotReq.Contents[0].Role)
	}
	if gotReq.Contents[1].Role != "model" {
		t.Errorf("second content role = %q, want model (assistant mapping)", gotReq.Contents[1].Role)
	}

	if len(completion.Choices) != 1 || completion.Choices[0].Message.Content != "Try a risotto." {
		t.Errorf("completion = %#v", completion)
	}
}

func TestCreateCompletionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	p := NewProvider(&testConfig{baseURL: srv.URL})
	_, err := p.CreateCompletion("gemini-2.0-flash", []recipechat.Message{
		{Role: recipechat.RoleUser, Content: "hi"},
	})
	if err == nil {
		t.Fatal("CreateCompletion succeeded on a 400 response")
	}
}

func TestListModelsFiltersByGenerationMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"models":[
			{"name":"models/gemini-2.0-flash","description":"Fast model","supportedGenerationMethods":["generateContent","countTokens"]},
			{"name":"models/text-embedding-004","description":"Embeddings","supportedGenerationMethods":["embedContent"]}
		]}`)
	}))
	defer srv.Close()

	p := NewProvider(&testConfig{baseURL: srv.URL})
	models, err := p.ListModels()
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}

	if len(models) != 1 {
		t.Fatalf("ListModels returned %d models, want 1: %v", len(models), models)
	}
	if models[0].ID != "gemini-2.0-flash" || !models[0].IsDefault {
		t.Errorf("model = %+v, want default gemini-2.0-flash with models/ prefix stripped", models[0])
	}
}
