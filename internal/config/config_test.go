package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://randomuser.me/api/", cfg.FeedURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 10, cfg.SyncBatchSize)
	assert.Equal(t, 3, cfg.SyncMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.SyncBackoffBase)
	assert.Equal(t, 10, cfg.KeepCompleted)
	assert.Equal(t, 5, cfg.KeepFailed)
	assert.Equal(t, "@hourly", cfg.SyncCronSpec)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "admin", cfg.DemoUsername)
	assert.False(t, cfg.IsTest())
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SYNC_BATCH_SIZE", "25")
	t.Setenv("SYNC_BACKOFF_MS", "500")
	t.Setenv("CACHE_TTL_MS", "60000")
	t.Setenv("FEED_URL", "http://localhost:9999/api/")

	cfg := Load()

	assert.True(t, cfg.IsTest())
	assert.Equal(t, 25, cfg.SyncBatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.SyncBackoffBase)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "http://localhost:9999/api/", cfg.FeedURL)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("SYNC_BATCH_SIZE", "not-a-number")

	cfg := Load()
	assert.Equal(t, 10, cfg.SyncBatchSize)
}
