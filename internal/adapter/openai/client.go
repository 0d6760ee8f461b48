// Package openai wraps the chat-completions endpoint used to lightly polish
// templated chat replies. The templated text is the canonical answer; a
// polish failure of any kind leaves it untouched.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/joeruch23/colorado-weather-network/internal/config"
	"github.com/joeruch23/colorado-weather-network/internal/observability"
)

const (
	defaultBaseURL = "https://api.openai.com"
	source         = "openai"
)

// systemPrompt grounds the model in the templated answer. Best effort: the
// model is instructed not to invent facts, but nothing verifies the output.
const systemPrompt = "You are a concise Colorado weather assistant for a public website.\n" +
	"Use the given raw text ANSWER as a base. Improve clarity and formatting slightly.\n" +
	"Do not invent facts. Keep it brief."

// Client calls the chat-completions API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a polish client.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:     cfg.OpenAIKey,
		model:      cfg.OpenAIModel,
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		baseURL:    defaultBaseURL,
		logger:     logger.With("component", "openai-client"),
		metrics:    metrics,
	}
}

// Polish rewrites the draft reply for clarity. The returned text replaces the
// draft wholesale on success; any error means the caller keeps the draft.
func (c *Client) Polish(ctx context.Context, draft string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "ANSWER:\n" + draft},
		},
		Temperature: 0.2,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return "", fmt.Errorf("chat completions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai API error: status %d: %s", resp.StatusCode, respBody)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return "", fmt.Errorf("decode response: %w", err)
	}
	c.metrics.UpstreamRequests.WithLabelValues(source, "success").Inc()

	if len(decoded.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	polished := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if polished == "" {
		return "", errors.New("empty polished text")
	}
	return polished, nil
}

// Chat-completions API types.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
