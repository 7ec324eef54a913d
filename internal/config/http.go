package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/intake/pkg/log"
)

type HTTPConfig struct {
	Addr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	SessionTTL  time.Duration `env:"HTTP_SESSION_TTL" envDefault:"30m"`
	TurnTimeout time.Duration `env:"HTTP_TURN_TIMEOUT" envDefault:"30s"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}
