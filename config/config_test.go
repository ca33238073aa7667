package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("ADMIN_IDS", "")
		t.Setenv("MAX_FILE_SIZE_MB", "")
		t.Setenv("LLM_PROVIDER", "")
		cfg, _ := Load()
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, LLMProviderOpenAI, cfg.LLMProvider)
		assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize())
		assert.True(t, cfg.IsAdmin(1914567632))
		assert.True(t, cfg.IsAdmin(892033994))
		assert.False(t, cfg.IsAdmin(1))
	})
	t.Run("Should parse admin IDs and report invalid entries", func(t *testing.T) {
		t.Setenv("ADMIN_IDS", "7, 8,abc")
		cfg, warnings := Load()
		assert.True(t, cfg.IsAdmin(7))
		assert.True(t, cfg.IsAdmin(8))
		assert.False(t, cfg.IsAdmin(1914567632))
		assert.Contains(t, warnings, "ignored invalid ADMIN_IDS entries: abc")
	})
	t.Run("Should keep the default file size on bad input", func(t *testing.T) {
		t.Setenv("MAX_FILE_SIZE_MB", "-3")
		cfg, warnings := Load()
		assert.Equal(t, 10, cfg.MaxFileSizeMB)
		assert.NotEmpty(t, warnings)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Should require the key of the selected provider", func(t *testing.T) {
		cfg := &Config{LLMProvider: LLMProviderGemini, OpenAIAPIKey: "sk"}
		require.Error(t, cfg.Validate())
		cfg.GeminiAPIKey = "g"
		require.NoError(t, cfg.Validate())
	})
	t.Run("Should reject unknown providers", func(t *testing.T) {
		cfg := &Config{LLMProvider: "claude"}
		assert.ErrorContains(t, cfg.Validate(), "unknown LLM_PROVIDER")
	})
}

func TestWithAdminIDs(t *testing.T) {
	t.Run("Should not mutate the original allow-list", func(t *testing.T) {
		t.Setenv("ADMIN_IDS", "1")
		cfg, _ := Load()
		other := cfg.WithAdminIDs(2)
		assert.True(t, cfg.IsAdmin(1))
		assert.False(t, cfg.IsAdmin(2))
		assert.True(t, other.IsAdmin(2))
		assert.ElementsMatch(t, []int64{2}, other.AdminIDs())
	})
}
