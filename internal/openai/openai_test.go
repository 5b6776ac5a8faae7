package openai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mfukushima/recipechat/internal/recipechat"
)

type testConfig struct {
	baseURL string
}

func (c *testConfig) GetBaseURL(provider string) (string, error) { return c.baseURL, nil }
func (c *testConfig) GetToken(provider string) (string, error)   { return "sk-test", nil }

func TestCreateCompletion(t *testing.T) {
	var gotReq ChatCompletionsRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotReq); err != nil {
			t.Errorf("request body is not valid JSON: %v", err)
		}
		_, _ = io.WriteString(w, `{"id":"chatcmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"## Spaghetti Aglio e Olio"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	p := NewProvider(&testConfig{baseURL: srv.URL})
	messages := []recipechat.Message{
		{Role: recipechat.RoleSystem, Content: "persona"},
		{Role: recipechat.RoleUser, Content: "suggest a pasta dish"},
	}

	completion, err := p.CreateCompletion("gpt-4o-mini", messages)
	if err != nil {
		t.Fatalf("CreateCompletion failed: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "suggest a pasta dish" {
		t.Errorf("request messages = %#v", gotReq.Messages)
	}

	if len(completion.Choices) != 1 {
		t.Fatalf("got %d choices, want 1", len(completion.Choices))
	}
	if completion.Choices[0].Message.Content != "## Spaghetti Aglio e Olio" {
		t.Errorf("reply = %q", completion.Choices[0].Message.Content)
	}
	if completion.Choices[0].Message.Role != recipechat.RoleAssistant {
		t.Errorf("reply role = %q", completion.Choices[0].Message.Role)
	}
}

func TestCreateCompletionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"Rate limit reached","type":"rate_limit_error"}}`)
	}))
	defer srv.Close()

	p := NewProvider(&testConfig{baseURL: srv.URL})
	_, err := p.CreateCompletion("gpt-4o-mini", []recipechat.Message{{Role: recipechat.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("CreateCompletion succeeded on a 429 response")
	}
}

func TestCreateCompletionEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"chatcmpl-1","choices":[]}`)
	}))
	defer srv.Close()

	p := NewProvider(&testConfig{baseURL: srv.URL})
	_, err := p.CreateCompletion("gpt-4o-mini", []recipechat.Message{{Role: recipechat.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("CreateCompletion succeeded on an empty choice list")
	}
}

func TestListModelsFiltersChatModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"data":[
			{"id":"gpt-4o-mini","owned_by":"openai"},
			{"id":"gpt-4o","owned_by":"openai"},
			{"id":"text-embedding-3-small","owned_by":"openai"},
			{"id":"gpt-4o-audio-preview","owned_by":"openai"},
			{"id":"o3-mini","owned_by":"openai"}
		]}`)
	}))
	defer srv.Close()

	p := NewProvider(&testConfig{baseURL: srv.URL})
	models, err := p.ListModels()
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}

	got := make(map[string]bool)
	var defaultID string
	for _, m := range models {
		got[m.ID] = true
		if m.IsDefault {
			defaultID = m.ID
		}
	}

	for _, want := range []string{"gpt-4o-mini", "gpt-4o", "o3-mini"} {
		if !got[want] {
			t.Errorf("ListModels missing %s: %v", want, models)
		}
	}
	for _, unwanted := range []string{"text-embedding-3-small", "gpt-4o-audio-preview"} {
		if got[unwanted] {
			t.Errorf("ListModels included non-chat model %s", unwanted)
		}
	}
	if defaultID != DefaultModel {
		t.Errorf("default model = %q, want %q", defaultID, DefaultModel)
	}
}
