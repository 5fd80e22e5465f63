package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service reads from the environment.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Database DatabaseConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Addr returns the listen address for http.Server.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

// DatabaseConfig selects the session store backend. An empty URL means the
// in-memory store.
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL"`
}

// AIConfig holds the chat model credentials and sampling parameters.
type AIConfig struct {
	APIKey      string   `env:"ARK_API_KEY"`
	AccessKey   string   `env:"ARK_ACCESS_KEY"`
	SecretKey   string   `env:"ARK_SECRET_KEY"`
	Model       string   `env:"ARK_MODEL"`
	BaseURL     string   `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	Region      string   `env:"ARK_REGION" envDefault:"cn-beijing"`
	Temperature *float32 `env:"ARK_TEMPERATURE"`
	TopP        *float32 `env:"ARK_TOP_P"`
	MaxTokens   *int     `env:"ARK_MAX_TOKENS"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// Validate reports missing model credentials. The process must not start
// without them; there is no compiled-in fallback.
func (c AIConfig) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("ARK_MODEL is required")
	}
	if c.APIKey == "" && (c.AccessKey == "" || c.SecretKey == "") {
		return fmt.Errorf("model credentials missing: set ARK_API_KEY or the ARK_ACCESS_KEY/ARK_SECRET_KEY pair")
	}
	return nil
}

// NewChatModel builds the Ark chat model from this configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		TopP:        c.TopP,
	})
}
