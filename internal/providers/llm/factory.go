package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/pkg/log"
	"github.com/sandevgo/intake/pkg/retry"
)

const (
	ProviderNone       = "none"
	ProviderGateway    = "gateway"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderOllama     = "ollama"
	ProviderCustom     = "custom"
)

// Providers lists the selectable backends in menu order.
var Providers = []string{
	ProviderNone, ProviderGateway, ProviderOpenAI, ProviderOpenRouter,
	ProviderAnthropic, ProviderOllama, ProviderCustom,
}

// NewAssistant builds the configured backend. It returns nil without error
// when no backend is configured.
func NewAssistant(ctx context.Context, cfg core.ProviderConfig) (core.Assistant, error) {
	if cfg.GetProvider() == "" || cfg.GetProvider() == ProviderNone {
		return nil, nil
	}

	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	budget := NewBudget(cfg.GetHistoryTokens())
	retryCfg := retry.NewDefaultConfig()
	retryCfg.MaxRetries = cfg.GetMaxRetries()
	retryCfg.AttemptTimeout = cfg.GetTimeout()
	retrier := retry.NewRetrier(retryCfg)

	if cfg.GetProvider() == ProviderGateway {
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("gateway provider requires LLM_BASE_URL")
		}
		return NewGateway(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetTimeout(), budget, retrier), nil
	}

	chat, err := NewChatProvider(cfg)
	if err != nil {
		return nil, err
	}
	return NewChatAssistant(chat, budget, retrier), nil
}

func NewChatProvider(cfg core.ProviderConfig) (core.ChatProvider, error) {
	timeout := cfg.GetTimeout()
	switch cfg.GetProvider() {
	case ProviderOpenAI:
		return NewOpenAI(cfg.GetAPIKey(), cfg.GetModel(), timeout), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg.GetAPIKey(), cfg.GetModel(), timeout), nil
	case ProviderOpenRouter:
		return NewOpenRouter(cfg.GetAPIKey(), cfg.GetModel(), timeout), nil
	case ProviderOllama:
		return NewOllama(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), timeout), nil
	case ProviderCustom:
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("custom provider requires LLM_BASE_URL")
		}
		return NewCustomOpenAI(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), timeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}
