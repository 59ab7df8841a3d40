package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// Cache stores AI completions in redis keyed by a prompt digest. Everything
// is best-effort: a cache failure never fails the request.
type Cache struct {
	config *config.CacheConfig
	client *redis.Client
}

// NewCache connects to redis. Returns a disabled cache (nil client) when
// caching is off or redis is unreachable.
func NewCache(cfg *config.CacheConfig) *Cache {
	if !cfg.Enabled {
		common.LogInfo("AI cache disabled")
		return &Cache{config: cfg}
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		common.LogWarn("AI cache unavailable, continuing without it",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		return &Cache{config: cfg}
	}

	common.LogInfo("AI cache connected",
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("ttl", cfg.TTL),
	)

	return &Cache{config: cfg, client: client}
}

// Key digests the full prompt material into a cache key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "ai:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached completion for key, or "" on miss.
func (c *Cache) Get(ctx context.Context, key string) string {
	if c == nil || c.client == nil {
		return ""
	}
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("AI cache get failed", zap.Error(err))
		}
		return ""
	}
	return value
}

// Set stores a completion under key.
func (c *Cache) Set(ctx context.Context, key string, value string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, c.config.TTL).Err(); err != nil {
		common.LogWarn("AI cache set failed", zap.Error(err))
	}
}

// Close releases the redis connection.
func (c *Cache) Close() {
	if c != nil && c.client != nil {
		_ = c.client.Close()
	}
}
