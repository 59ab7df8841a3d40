package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
)

func TestKeyIsDeterministic(t *testing.T) {
	assert.Equal(t, Key("system", "user"), Key("system", "user"))
	assert.NotEqual(t, Key("system", "user"), Key("system", "other"))
}

func TestKeyPartsDoNotCollide(t *testing.T) {
	// Concatenation without a separator would make these identical.
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestDisabledCacheIsNoop(t *testing.T) {
	c := NewCache(&config.CacheConfig{Enabled: false})

	ctx := context.Background()
	c.Set(ctx, Key("a"), "value")
	assert.Empty(t, c.Get(ctx, Key("a")))
	c.Close()
}
