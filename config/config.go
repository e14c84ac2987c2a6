// Package config loads the application configuration from a JSON file
// with environment variable overrides. Configuration is read once at
// startup and never mutated afterwards.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents the application configuration.
type Config struct {
	Model            string  `json:"model"`
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"max_tokens"`
	MaxToolRounds    int     `json:"max_tool_rounds"`
	APITimeoutSecs   int     `json:"api_timeout_seconds"`
	GeminiAPIKey     string  `json:"gemini_api_key"`
	SearchProvider   string  `json:"search_provider"` // google or duckduckgo
	SearchMaxResults int     `json:"search_max_results"`
	GoogleAPIKey     string  `json:"google_api_key"`
	GoogleCSEID      string  `json:"google_cse_id"`
	SystemPrompt     string  `json:"system_prompt"`
	LogLevel         string  `json:"log_level"`
	LogFile          string  `json:"log_file"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() Config {
	return Config{
		Model:            "gemini-2.5-pro",
		Temperature:      0.2,
		MaxTokens:        8192,
		MaxToolRounds:    8,
		APITimeoutSecs:   10,
		SearchProvider:   "google",
		SearchMaxResults: 5,
		SystemPrompt: "You are a helpful AI assistant. You have memory of the entire conversation history. " +
			"Use this context to provide more relevant and personalized responses. " +
			"Be conversational and engaging while maintaining helpfulness.",
		LogLevel: "info",
		LogFile:  defaultLogPath(),
	}
}

// Load reads the configuration from the given path. A missing file is
// created with defaults. Environment variables override file values.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		cfg = DefaultConfig()
		if err := Save(configPath, cfg); err != nil {
			return Config{}, fmt.Errorf("failed to create default config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return applyEnvironmentOverrides(cfg), nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func applyEnvironmentOverrides(cfg Config) Config {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.GeminiAPIKey = key
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		cfg.GoogleAPIKey = key
	}
	if id := os.Getenv("GOOGLE_CSE_ID"); id != "" {
		cfg.GoogleCSEID = id
	}
	if model := os.Getenv("CHATTER_MODEL"); model != "" {
		cfg.Model = model
	}
	if provider := os.Getenv("CHATTER_SEARCH_PROVIDER"); provider != "" {
		cfg.SearchProvider = strings.ToLower(provider)
	}
	if tempStr := os.Getenv("CHATTER_TEMPERATURE"); tempStr != "" {
		if temp, err := strconv.ParseFloat(tempStr, 64); err == nil && temp >= 0 && temp <= 2 {
			cfg.Temperature = temp
		}
	}
	if tokensStr := os.Getenv("CHATTER_MAX_TOKENS"); tokensStr != "" {
		if tokens, err := strconv.Atoi(tokensStr); err == nil && tokens > 0 {
			cfg.MaxTokens = tokens
		}
	}
	if logLevel := os.Getenv("CHATTER_LOG_LEVEL"); logLevel != "" {
		logLevel = strings.ToLower(logLevel)
		switch logLevel {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = logLevel
		}
	}
	return cfg
}

// Save writes the configuration to the given path.
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid. Missing required
// credentials are fatal startup errors.
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("Gemini API key is required (set GEMINI_API_KEY or add gemini_api_key to the config file)")
	}
	switch c.SearchProvider {
	case "google":
		if c.GoogleAPIKey == "" || c.GoogleCSEID == "" {
			return errors.New("Google search requires GOOGLE_API_KEY and GOOGLE_CSE_ID (or switch search_provider to duckduckgo)")
		}
	case "duckduckgo":
		// No credentials needed.
	default:
		return fmt.Errorf("unsupported search provider: %s", c.SearchProvider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got: %g", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got: %d", c.MaxTokens)
	}
	if c.MaxToolRounds <= 0 {
		return fmt.Errorf("max_tool_rounds must be positive, got: %d", c.MaxToolRounds)
	}
	if c.APITimeoutSecs <= 0 {
		return fmt.Errorf("api_timeout_seconds must be positive, got: %d", c.APITimeoutSecs)
	}
	if c.SearchMaxResults <= 0 || c.SearchMaxResults > 10 {
		return fmt.Errorf("search_max_results must be in [1, 10], got: %d", c.SearchMaxResults)
	}
	return nil
}

// DefaultPath returns the default path for the config file.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".chatter/config.json"
	}
	return filepath.Join(homeDir, ".chatter", "config.json")
}

func defaultLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".chatter/chatter.log"
	}
	return filepath.Join(homeDir, ".chatter", "chatter.log")
}
