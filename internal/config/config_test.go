package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend.local/api/")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend.local/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Editor.NoticeTTL)
	assert.Equal(t, time.Second, cfg.Editor.BannerResyncDelay)
	assert.Equal(t, 8, cfg.Editor.PricingConcurrency)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("PRICING_CONCURRENCY", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.Editor.PricingConcurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Console.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	t.Run("ProductionNeedsConsolePassword", func(t *testing.T) {
		cfg := &Config{
			Environment: "production",
			API:         APIConfig{BaseURL: DefaultAPIBaseURL},
			Editor:      EditorConfig{PricingConcurrency: 1},
			Console:     ConsoleConfig{AllowedOrigins: []string{"https://admin.example"}},
		}
		assert.Error(t, cfg.Validate())

		cfg.Console.PasswordHash = "$2a$10$hash"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("SessionStoreNeedsDatabase", func(t *testing.T) {
		cfg := &Config{
			API:     APIConfig{BaseURL: DefaultAPIBaseURL},
			Editor:  EditorConfig{PricingConcurrency: 1},
			Auth:    AuthConfig{SessionStore: true},
			Console: ConsoleConfig{AllowedOrigins: []string{"https://admin.example"}},
		}
		assert.Error(t, cfg.Validate())

		cfg.Database.Enabled = true
		assert.NoError(t, cfg.Validate())
	})

	t.Run("NeedsAllowedOrigin", func(t *testing.T) {
		cfg := &Config{
			API:    APIConfig{BaseURL: DefaultAPIBaseURL},
			Editor: EditorConfig{PricingConcurrency: 1},
		}
		assert.Error(t, cfg.Validate())

		cfg.Console.AllowedOrigins = []string{"https://admin.example"}
		assert.NoError(t, cfg.Validate())
	})
}

func TestBlankOriginListFallsBackToDefault(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	for _, value := range []string{",", " ", " , ,"} {
		t.Setenv("CORS_ALLOWED_ORIGINS", value)

		cfg, err := Load()
		require.NoError(t, err, value)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.Console.AllowedOrigins, value)
	}
}
