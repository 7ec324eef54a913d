package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/pkg/log"
)

type AppConfig struct {
	RuntimePath     string `env:"INTAKE_RUNTIME_PATH" envDefault:".intake"`
	DefaultLanguage string `env:"INTAKE_DEFAULT_LANGUAGE" envDefault:"en"`

	// Transport Flags
	EnableHTTP     bool `env:"ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Number of transcript messages sent to the LLM backend.
	HistoryLimit int `env:"INTAKE_HISTORY_LIMIT" envDefault:"20"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = GetRuntimePath()
	if _, err := core.ParseLanguage(c.DefaultLanguage); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("falling back to english")
		c.DefaultLanguage = string(core.LangEnglish)
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "intake.db")
}

func (c AppConfig) GetDefaultLanguage() core.Language {
	lang, err := core.ParseLanguage(c.DefaultLanguage)
	if err != nil {
		return core.LangEnglish
	}
	return lang
}

func (c AppConfig) GetHistoryLimit() int {
	return c.HistoryLimit
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsHTTPSelected() bool {
	return c.EnableHTTP
}
