package ai

import (
	"context"
	"strings"
	"time"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/ai/cache"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// Completer produces a text completion for a prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error)
}

// Service selects a provider per request and caches completions. A directly
// configured Anthropic key is preferred; otherwise the OpenRouter proxy is
// used. Neither configured is a configuration error, checked at request
// time so keys can be rotated without a restart path through validation.
type Service struct {
	config     *config.Config
	anthropic  *AnthropicClient
	openRouter *OpenRouterClient
	cache      *cache.Cache
}

// NewService creates the AI service.
func NewService(cfg *config.Config, completionCache *cache.Cache) *Service {
	return &Service{
		config:     cfg,
		anthropic:  NewAnthropicClient(&cfg.Anthropic),
		openRouter: NewOpenRouterClient(&cfg.OpenRouter),
		cache:      completionCache,
	}
}

func (s *Service) pickCompleter() (Completer, error) {
	if s.config.Anthropic.APIKey != "" {
		return s.anthropic, nil
	}
	if s.config.OpenRouter.APIKey != "" {
		return s.openRouter, nil
	}
	return nil, common.NewConfigurationError("Ingen AI-nyckel konfigurerad (ANTHROPIC_API_KEY eller OPENROUTER_API_KEY)")
}

// Complete runs a text completion through the selected provider.
func (s *Service) Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error) {
	completer, err := s.pickCompleter()
	if err != nil {
		return "", err
	}

	key := cache.Key(systemPrompt, userPrompt)
	if cached := s.cache.Get(ctx, key); cached != "" {
		return cached, nil
	}

	start := time.Now()
	content, err := completer.Complete(ctx, systemPrompt, userPrompt, maxTokens)
	common.LogAICall(time.Since(start), err, requestIDFrom(ctx))
	if err != nil {
		return "", err
	}

	s.cache.Set(ctx, key, content)
	return content, nil
}

// CompleteWithImages runs a multimodal completion. Only the routing proxy
// supports image input.
func (s *Service) CompleteWithImages(ctx context.Context, systemPrompt string, userPrompt string, imageDataURLs []string, maxTokens int) (string, error) {
	if s.config.OpenRouter.APIKey == "" {
		return "", common.NewConfigurationError("AI-nyckel saknas")
	}

	parts := append([]string{systemPrompt, userPrompt}, imageDataURLs...)
	key := cache.Key(parts...)
	if cached := s.cache.Get(ctx, key); cached != "" {
		return cached, nil
	}

	start := time.Now()
	content, err := s.openRouter.CompleteWithImages(ctx, systemPrompt, userPrompt, imageDataURLs, maxTokens)
	common.LogAICall(time.Since(start), err, requestIDFrom(ctx))
	if err != nil {
		return "", err
	}

	s.cache.Set(ctx, key, content)
	return content, nil
}

type requestIDKey struct{}

// WithRequestID tags a context so AI call logs can be correlated.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return strings.TrimSpace(id)
	}
	return ""
}
