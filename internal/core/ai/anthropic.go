package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// AnthropicClient calls the Anthropic Messages API directly.
type AnthropicClient struct {
	config *config.AnthropicConfig
	client *resty.Client
}

// NewAnthropicClient creates a client for the directly configured provider.
func NewAnthropicClient(cfg *config.AnthropicConfig) *AnthropicClient {
	client := resty.New().
		SetBaseURL("https://api.anthropic.com/v1").
		SetTimeout(cfg.Timeout).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", "2023-06-01")

	return &AnthropicClient{
		config: cfg,
		client: client,
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the prompts as a single user message and returns the text
// response.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = c.config.MaxTokens
	}

	req := anthropicRequest{
		Model:     c.config.Model,
		MaxTokens: maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: fmt.Sprintf("%s\n\n%s", systemPrompt, userPrompt)},
		},
	}

	var result anthropicResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post("/messages")
	if err != nil {
		return "", common.NewUpstreamFetchError("AI-tjänsten kunde inte nås", http.StatusBadGateway, err)
	}

	if resp.StatusCode() != http.StatusOK {
		msg := fmt.Sprintf("Anthropic fel: %d", resp.StatusCode())
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return "", common.NewUpstreamFetchError(msg, http.StatusBadGateway, nil)
	}

	if len(result.Content) == 0 || result.Content[0].Type != "text" || result.Content[0].Text == "" {
		return "", common.NewUpstreamFetchError("Oväntat svar från AI", http.StatusBadGateway, nil)
	}

	return result.Content[0].Text, nil
}
