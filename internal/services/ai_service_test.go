package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"github.com/vladimiradmaev/pressure-helper/internal/config"
)

func TestOpenAIGeneratorSendsSystemAndUserMessages(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  got.Model,
			Choices: []openai.ChatCompletionChoice{{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Stay active."},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator("sk-test", "gpt-4o", srv.URL+"/v1")
	out, err := gen.Generate(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "Stay active." {
		t.Fatalf("output = %q", out)
	}

	if got.Model != "gpt-4o" || len(got.Messages) != 2 {
		t.Fatalf("request = %+v", got)
	}
	if got.Messages[0].Role != openai.ChatMessageRoleSystem || got.Messages[0].Content != "system text" {
		t.Errorf("system message = %+v", got.Messages[0])
	}
	if got.Messages[1].Role != openai.ChatMessageRoleUser || got.Messages[1].Content != "user text" {
		t.Errorf("user message = %+v", got.Messages[1])
	}
}

func TestOpenAIGeneratorSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator("sk-test", "gpt-4o", srv.URL+"/v1")
	if _, err := gen.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected an error for a 429 response")
	}
}

func TestNewGeneratorRejectsUnknownProvider(t *testing.T) {
	if _, err := NewGenerator(context.Background(), config.AIConfig{Provider: "llama"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	g, err := NewGenerator(context.Background(), config.AIConfig{Provider: "openai", OpenAIAPIKey: "k", OpenAIModel: "m"})
	if err != nil {
		t.Fatalf("NewGenerator(openai): %v", err)
	}
	if _, ok := g.(*OpenAIGenerator); !ok {
		t.Fatalf("expected *OpenAIGenerator, got %T", g)
	}
}

func TestGeminiRequestSeparatesSystemAndUserContent(t *testing.T) {
	model := &genai.GenerativeModel{}
	parts := geminiRequest(model, AdviceSystemPrompt, "user text")

	if model.SystemInstruction == nil || len(model.SystemInstruction.Parts) != 1 {
		t.Fatalf("system instruction = %+v", model.SystemInstruction)
	}
	if text, ok := model.SystemInstruction.Parts[0].(genai.Text); !ok || string(text) != AdviceSystemPrompt {
		t.Errorf("system instruction part = %#v", model.SystemInstruction.Parts[0])
	}

	if len(parts) != 1 {
		t.Fatalf("user content has %d parts, want 1", len(parts))
	}
	if text, ok := parts[0].(genai.Text); !ok || string(text) != "user text" {
		t.Errorf("user part = %#v", parts[0])
	}
}
