package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig    `validate:"required"`
	Gemini    GeminiConfig    `validate:"required"`
	Qdrant    QdrantConfig    `validate:"required"`
	Upload    UploadConfig    `validate:"required"`
	Analysis  AnalysisConfig  `validate:"required"`
	Embedding EmbeddingConfig `validate:"required"`
}

type ServerConfig struct {
	Port string `validate:"required,numeric"`
	Env  string `validate:"required"`
}

type GeminiConfig struct {
	APIKey     string
	EmbedModel string `validate:"required"`
}

type QdrantConfig struct {
	URL        string `validate:"omitempty,url"`
	APIKey     string
	Collection string `validate:"required"`
}

type UploadConfig struct {
	MaxFileSize int64 `validate:"gt=0"`
}

type AnalysisConfig struct {
	KeywordTopN int           `validate:"min=1,max=100"`
	Timeout     time.Duration `validate:"gt=0"`
}

type EmbeddingConfig struct {
	Dimensions int `validate:"min=8,max=4096"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resume_analyzer_embeddings"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Analysis: AnalysisConfig{
			KeywordTopN: getEnvAsInt("KEYWORD_TOP_N", 20),
			Timeout:     getEnvAsDuration("ANALYSIS_TIMEOUT", "60s"),
		},
		Embedding: EmbeddingConfig{
			Dimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", 768),
		},
	}
}

// Validate checks value ranges. Missing optional integrations (Gemini, Qdrant)
// are not errors; they only switch the service to its local fallbacks.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) GeminiEnabled() bool {
	return c.Gemini.APIKey != ""
}

func (c *Config) QdrantEnabled() bool {
	return c.Qdrant.URL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
