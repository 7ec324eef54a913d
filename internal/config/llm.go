package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/intake/pkg/log"
)

const ProviderNone = "none"

type LLMConfig struct {
	Provider      string        `env:"LLM_PROVIDER" envDefault:"none"`
	Model         string        `env:"LLM_MODEL"`
	BaseURL       string        `env:"LLM_BASE_URL"`
	APIKey        string        `env:"LLM_API_KEY"`
	Timeout       time.Duration `env:"LLM_TIMEOUT" envDefault:"10s"`
	MaxRetries    int           `env:"LLM_MAX_RETRIES" envDefault:"2"`
	HistoryTokens int           `env:"LLM_HISTORY_TOKENS" envDefault:"1500"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func (c LLMConfig) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

func (c LLMConfig) GetProvider() string { return c.Provider }
func (c LLMConfig) GetModel() string { return c.Model }
func (c LLMConfig) GetBaseURL() string { return c.BaseURL }
func (c LLMConfig) GetAPIKey() string { return c.APIKey }
func (c LLMConfig) GetTimeout() time.Duration { return c.Timeout }
func (c LLMConfig) GetMaxRetries() int { return c.MaxRetries }
func (c LLMConfig) GetHistoryTokens() int { return c.HistoryTokens }
