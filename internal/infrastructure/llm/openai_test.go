package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"PaperHarvest/internal/config"
)

func testConfig(endpoint, key string) config.OpenAIConfig {
	return config.OpenAIConfig{
		Endpoint:     endpoint,
		Model:        "gpt-4o-mini",
		APIKey:       key,
		SystemPrompt: "You summarize papers.",
	}
}

func TestSummarizeReturnsTrimmedChoice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}

		var payload struct {
			Model       string  `json:"model"`
			MaxTokens   int     `json:"max_tokens"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.MaxTokens != 200 || payload.Temperature != 0.5 {
			t.Errorf("unexpected bounds: max_tokens=%d temperature=%v", payload.MaxTokens, payload.Temperature)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", payload.Messages)
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" A good summary. "}}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, "test-key"), nil)
	if got := client.Summarize(context.Background(), "Title", "Abstract"); got != "A good summary." {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestSummarizeWithoutKeySkipsRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, ""), nil)
	if got := client.Summarize(context.Background(), "Title", "Abstract"); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no requests, got %d", calls.Load())
	}
}

func TestSummarizeSwallowsHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, "test-key"), nil)
	if got := client.Summarize(context.Background(), "Title", "Abstract"); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func TestSummarizeSwallowsMalformedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, "test-key"), nil)
	if got := client.Summarize(context.Background(), "Title", "Abstract"); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}
