package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// OpenRouterClient calls the OpenRouter routing proxy. It is the fallback
// for text completions and the only provider used for multimodal ones.
type OpenRouterClient struct {
	config *config.OpenRouterConfig
	client *resty.Client
}

// NewOpenRouterClient creates a client for the routing proxy.
func NewOpenRouterClient(cfg *config.OpenRouterConfig) *OpenRouterClient {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", cfg.Referer).
		SetHeader("X-Title", cfg.Title)

	return &OpenRouterClient{
		config: cfg,
		client: client,
	}
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *OpenRouterClient) send(ctx context.Context, body map[string]interface{}) (string, error) {
	var result openRouterResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/chat/completions")
	if err != nil {
		return "", common.NewUpstreamFetchError("AI-tjänsten kunde inte nås", http.StatusBadGateway, err)
	}

	if resp.StatusCode() != http.StatusOK || result.Error != nil {
		msg := fmt.Sprintf("OpenRouter fel: %d", resp.StatusCode())
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		common.LogError("OpenRouter returned error",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", msg),
		)
		return "", common.NewUpstreamFetchError(msg, http.StatusBadGateway, nil)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", common.NewUpstreamFetchError("OpenRouter returnerade tomt svar", http.StatusBadGateway, nil)
	}

	return result.Choices[0].Message.Content, nil
}

// Complete sends a system and user prompt and returns the text response.
func (c *OpenRouterClient) Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = c.config.MaxTokens
	}

	return c.send(ctx, map[string]interface{}{
		"model": c.config.Model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"max_tokens": maxTokens,
	})
}

// CompleteWithImages sends a multimodal prompt. Images are data URLs.
func (c *OpenRouterClient) CompleteWithImages(ctx context.Context, systemPrompt string, userPrompt string, imageDataURLs []string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = c.config.MaxTokens
	}

	content := []map[string]interface{}{
		{"type": "text", "text": userPrompt},
	}
	for _, dataURL := range imageDataURLs {
		content = append(content, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]string{
				"url": dataURL,
			},
		})
	}

	return c.send(ctx, map[string]interface{}{
		"model": c.config.VisionModel,
		"messages": []map[string]interface{}{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": content},
		},
		"max_tokens": maxTokens,
	})
}
