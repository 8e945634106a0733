package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"PaperHarvest/internal/config"
	"PaperHarvest/internal/ports"
)

const (
	maxInputLen      = 1024
	summaryMaxLength = 150
	summaryMinLength = 40
)

// Client talks to the Hugging Face Inference API summarization models.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	logger   *slog.Logger
	http     *http.Client
}

var _ ports.SummaryProvider = (*Client)(nil)

// NewClient creates a reusable inference client.
func NewClient(cfg config.HFConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		logger:   logger,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Name identifies the provider in the summarization chain.
func (c *Client) Name() string {
	return "huggingface"
}

// Summarize submits "{title}. {abstract}" truncated to 1024 characters to
// the summarization model. Missing credentials skip silently; failures are
// logged and yield an empty result.
func (c *Client) Summarize(ctx context.Context, title, abstract string) string {
	if c == nil || c.apiKey == "" {
		return ""
	}

	summary, err := c.infer(ctx, truncate(title+". "+abstract, maxInputLen))
	if err != nil {
		c.warn("hf summarization failed", "error", err)
		return ""
	}
	return summary
}

func (c *Client) infer(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"inputs": text,
		"parameters": map[string]int{
			"max_length": summaryMaxLength,
			"min_length": summaryMinLength,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	url := c.endpoint + "/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var parsed []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return parsed[0].SummaryText, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
