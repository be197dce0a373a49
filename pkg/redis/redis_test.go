package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenkay/backend/pkg/config"
)

// disabledClient returns a no-op client, the mode used in tests and
// local development without Redis
func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return client
}

func TestDisabledCacheMissesAndAcceptsWrites(t *testing.T) {
	cache := NewCache(disabledClient(t), "tenkay")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, TTLShort))

	var dest map[string]int
	hit, err := cache.Get(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Delete(ctx, "k"))
}

func TestDisabledRateLimiterAllowsAll(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "tenkay")
	ctx := context.Background()

	for i := 0; i < FinnhubRateLimit.Limit*2; i++ {
		allowed, _, err := limiter.Allow(ctx, FinnhubRateLimit)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	require.NoError(t, limiter.Wait(ctx, FinnhubRateLimit))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "upcoming:60:10", UpcomingFilingsKey(60, 10))
	assert.Equal(t, "market:AAPL", MarketDataKey("AAPL"))
	assert.Equal(t, "analysis:aapl-10k-2024", AnalysisKey("aapl-10k-2024"))
	assert.Equal(t, "press:MSFT:5", PressKey("MSFT", 5))
}
