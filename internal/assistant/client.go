package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Responder produces the chat reply for a user message. The HTTP client
// below is the real implementation; tests substitute a fake.
type Responder interface {
	Respond(ctx context.Context, userMessage, userRole string) (string, error)
}

// Config holds the completion API settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls an external text-completion API with a bounded timeout.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	N           int     `json:"n"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Respond sends the compliance-assistant prompt and returns the first
// completion choice.
func (c *Client) Respond(ctx context.Context, userMessage, userRole string) (string, error) {
	prompt := fmt.Sprintf(
		"You are ComplianceAI, an AI assistant for banking compliance and auditing. The user is a %s. Respond to the following message:\n\nUser: %s\n\nComplianceAI:",
		userRole, userMessage)

	body, _ := json.Marshal(completionRequest{
		Model:       "text-davinci-002",
		Prompt:      prompt,
		MaxTokens:   150,
		N:           1,
		Temperature: 0.7,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion failed with status: %d", resp.StatusCode)
	}
	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(result.Choices[0].Text), nil
}
