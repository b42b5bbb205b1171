package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "GEMINI_API_KEY", "GEMINI_EMBED_MODEL", "QDRANT_URL",
		"QDRANT_COLLECTION", "MAX_FILE_SIZE", "KEYWORD_TOP_N", "ANALYSIS_TIMEOUT",
		"EMBEDDING_DIMENSIONS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "text-embedding-004", cfg.Gemini.EmbedModel)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxFileSize)
	assert.Equal(t, 20, cfg.Analysis.KeywordTopN)
	assert.Equal(t, 60*time.Second, cfg.Analysis.Timeout)
	assert.Equal(t, 768, cfg.Embedding.Dimensions)
	assert.False(t, cfg.GeminiEnabled())
	assert.False(t, cfg.QdrantEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("QDRANT_URL", "http://qdrant:6334")
	t.Setenv("KEYWORD_TOP_N", "15")
	t.Setenv("ANALYSIS_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Analysis.KeywordTopN)
	assert.Equal(t, 5*time.Second, cfg.Analysis.Timeout)
	assert.True(t, cfg.GeminiEnabled())
	assert.True(t, cfg.QdrantEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "lots")
	t.Setenv("ANALYSIS_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, int64(10485760), cfg.Upload.MaxFileSize)
	assert.Equal(t, 60*time.Second, cfg.Analysis.Timeout)
}

func TestValidate_RejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non numeric port", func(c *Config) { c.Server.Port = "http" }},
		{"zero top n", func(c *Config) { c.Analysis.KeywordTopN = 0 }},
		{"negative file size", func(c *Config) { c.Upload.MaxFileSize = -1 }},
		{"bad qdrant url", func(c *Config) { c.Qdrant.URL = "not a url" }},
		{"tiny embeddings", func(c *Config) { c.Embedding.Dimensions = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QDRANT_URL", "")
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
