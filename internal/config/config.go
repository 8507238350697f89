package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config is the server's process configuration. Environment variables win
// over values from the optional .env file.
type Config struct {
	Port              string        `mapstructure:"PORT"`
	Provider          string        `mapstructure:"QUEST_PROVIDER"`
	AnthropicAPIKey   string        `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicModel    string        `mapstructure:"ANTHROPIC_MODEL"`
	AnthropicBaseURL  string        `mapstructure:"ANTHROPIC_BASE_URL"`
	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string        `mapstructure:"GEMINI_MODEL"`
	GeminiBaseURL     string        `mapstructure:"GEMINI_BASE_URL"`
	MaxTokens         int           `mapstructure:"MAX_TOKENS"`
	ProviderTimeout   time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	LogFormat         string        `mapstructure:"LOG_FORMAT"`
	CORSAllowedOrigin string        `mapstructure:"CORS_ALLOWED_ORIGIN"`
}

var defaults = map[string]any{
	"PORT":                "3001",
	"QUEST_PROVIDER":      ProviderAnthropic,
	"ANTHROPIC_API_KEY":   "",
	"ANTHROPIC_MODEL":     "claude-sonnet-4-20250514",
	"ANTHROPIC_BASE_URL":  "https://api.anthropic.com",
	"GEMINI_API_KEY":      "",
	"GEMINI_MODEL":        "gemini-2.0-flash",
	"GEMINI_BASE_URL":     "https://generativelanguage.googleapis.com",
	"MAX_TOKENS":          1024,
	"PROVIDER_TIMEOUT":    "60s",
	"LOG_LEVEL":           "info",
	"LOG_FORMAT":          "json",
	"CORS_ALLOWED_ORIGIN": "*",
}

// Load reads configuration from the environment and, when envFile is
// non-empty and exists, from that dotenv file. It fails when the selected
// provider is unknown or has no API key.
func Load(envFile string) (Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required when QUEST_PROVIDER=anthropic")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when QUEST_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown QUEST_PROVIDER %q (want %s or %s)", c.Provider, ProviderAnthropic, ProviderGemini)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %s", c.ProviderTimeout)
	}
	return nil
}
