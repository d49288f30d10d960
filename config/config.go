package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Model  ModelConfig  `mapstructure:"model"`
	Agent  AgentConfig  `mapstructure:"agent"`
	Search SearchConfig `mapstructure:"search"`
}

// ModelConfig configures the model gateway.
type ModelConfig struct {
	// APIKey credential for the model gateway. Falls back to OPENAI_API_KEY.
	APIKey string `mapstructure:"api_key"`
	// BaseURL optional gateway endpoint override.
	BaseURL string `mapstructure:"base_url"`
	// Name llm model name.
	Name        string  `mapstructure:"name"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// AgentConfig configures the orchestration loop.
type AgentConfig struct {
	// MemoryWindow number of retained exchanges.
	MemoryWindow int `mapstructure:"memory_window"`
	// MaxToolRounds tool-chaining depth bound beyond the first response.
	MaxToolRounds int `mapstructure:"max_tool_rounds"`
	// SystemPrompt optional override of the default system prompt.
	SystemPrompt string `mapstructure:"system_prompt"`
}

// SearchConfig configures the web search tool.
type SearchConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration with precedence: TOOLBOT_* environment variables,
// then an optional toolbot.yaml, then built-in defaults. An explicit path
// must exist; the default search locations may not.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("model.name", "gpt-4o-mini")
	v.SetDefault("model.temperature", 0.7)
	v.SetDefault("model.max_tokens", 1024)
	v.SetDefault("agent.memory_window", 3)
	v.SetDefault("agent.max_tool_rounds", 2)
	v.SetDefault("search.base_url", "https://api.duckduckgo.com")
	v.SetDefault("search.timeout", "15s")
	v.SetEnvPrefix("TOOLBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("toolbot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.toolbot")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Model.APIKey == "" {
		cfg.Model.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Model.BaseURL == "" {
		cfg.Model.BaseURL = os.Getenv("OPENAI_API_BASE_URL")
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model.APIKey) == "" {
		return errors.New("model API key not set: export OPENAI_API_KEY or set model.api_key")
	}
	return nil
}
