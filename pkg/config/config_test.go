// nolint: funlen
package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviedb/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":               "test",
			"PORT":                  "9090",
			"SENTRY_DSN":            "https://test@sentry.io/123",
			"ALLOW_ORIGINS":         "https://a.example.com, https://b.example.com",
			"RATE_LIMIT":            "50",
			"MONGO_URI":             "mongodb://mongo:27017",
			"MONGO_DATABASE":        "imdb_test",
			"MONGO_CONNECT_TIMEOUT": "3s",
			"LOG_LEVEL":             "debug",
			"LOG_FORMAT":            "text",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Origins())
		assert.Equal(t, 50, cfg.RateLimit)
		assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
		assert.Equal(t, "imdb_test", cfg.Mongo.Database)
		assert.Equal(t, 3*time.Second, cfg.Mongo.ConnectTimeout)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
	})

	t.Run("applies defaults when variables are absent", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "imdb", cfg.Mongo.Database)
		assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Empty(t, cfg.Origins())
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid connect timeout", func(t *testing.T) {
		t.Setenv("MONGO_CONNECT_TIMEOUT", "soon")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}
