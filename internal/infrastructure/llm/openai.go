package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"PaperHarvest/internal/config"
	"PaperHarvest/internal/ports"
)

const (
	maxTokens   = 200
	temperature = 0.5
)

// Client implements ports.SummaryProvider backed by OpenAI-compatible chat
// completion APIs.
type Client struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	logger       *slog.Logger
	httpClient   *http.Client
}

var _ ports.SummaryProvider = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.OpenAIConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		logger:       logger,
		httpClient:   &http.Client{Timeout: 20 * time.Second},
	}
}

// Name identifies the provider in the summarization chain.
func (c *Client) Name() string {
	return "openai"
}

// Summarize asks the chat model for a short plain-language summary. Missing
// credentials skip silently; every other failure is logged and yields an
// empty result.
func (c *Client) Summarize(ctx context.Context, title, abstract string) string {
	if c == nil || c.apiKey == "" {
		return ""
	}

	summary, err := c.complete(ctx, title, abstract)
	if err != nil {
		c.warn("openai summarization failed", "error", err)
		return ""
	}
	return summary
}

func (c *Client) complete(ctx context.Context, title, abstract string) (string, error) {
	prompt := fmt.Sprintf(
		"Paper title: %s\n\nAbstract:\n%s\n\n"+
			"Write a 2-3 sentence plain-language summary of this paper "+
			"suitable for a tech blog. Focus on what's new and why it matters.",
		title, abstract)

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": c.systemPrompt},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  maxTokens,
		"temperature": temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
