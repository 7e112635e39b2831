// Package config loads settings from the environment or a .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/SergiySvirkov/excel-pdf-automator/internal/logger"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/generation"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when present in the working directory.
const DefaultEnvFile = ".env"

// Config holds all application settings.
type Config struct {
	Generation GenerationConfig
	Log        logger.Config
}

// GenerationConfig configures the text-generation service.
type GenerationConfig struct {
	Provider generation.Provider
	Model    string
	// APIKey is empty when neither the environment nor .env provides one;
	// callers may then consult the keychain.
	APIKey    string
	BaseURL   string
	Timeout   time.Duration // 0 leaves the deadline to the service
	MaxTokens int
}

// Load reads settings from the environment after applying envFilePath.
// A missing env file is not an error.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	provider, err := generation.ParseProvider(getEnv("AUTOMATOR_PROVIDER", string(generation.ProviderGemini)))
	if err != nil {
		return nil, fmt.Errorf("AUTOMATOR_PROVIDER: %w", err)
	}

	cfg := &Config{
		Generation: GenerationConfig{
			Provider:  provider,
			Model:     getEnv("AUTOMATOR_MODEL", provider.DefaultModel()),
			APIKey:    APIKeyFromEnv(provider),
			BaseURL:   getEnv("AUTOMATOR_BASE_URL", ""),
			Timeout:   getEnvAsDuration("AUTOMATOR_TIMEOUT", 0),
			MaxTokens: getEnvAsInt("AUTOMATOR_MAX_TOKENS", generation.DefaultMaxTokens),
		},
		Log: logger.Config{
			Level:  logger.ParseLevel(getEnv("LOG_LEVEL", ""), logger.DefaultConfig().Level),
			Format: getEnv("LOG_FORMAT", logger.DefaultConfig().Format),
		},
	}

	return cfg, nil
}

// APIKeyFromEnv returns AUTOMATOR_API_KEY or the provider's conventional
// variable, or "" when none is set.
func APIKeyFromEnv(p generation.Provider) string {
	keys := []string{"AUTOMATOR_API_KEY"}
	switch p {
	case generation.ProviderGemini:
		keys = append(keys, "GEMINI_API_KEY", "API_KEY")
	case generation.ProviderOpenAI:
		keys = append(keys, "OPENAI_API_KEY")
	case generation.ProviderAnthropic:
		keys = append(keys, "ANTHROPIC_API_KEY")
	}
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Logger builds the process logger from the configuration.
func (c *Config) Logger() *slog.Logger {
	return logger.New(c.Log)
}

// getEnv returns the variable or defaultValue when unset or empty.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
