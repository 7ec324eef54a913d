package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/intake/pkg/log"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type CacheConfig struct {
	Backend  string        `env:"CACHE_BACKEND" envDefault:"memory"`
	Capacity int           `env:"CACHE_CAPACITY" envDefault:"512"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

func NewCacheConfig(ctx context.Context) *CacheConfig {
	c := &CacheConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Cache config")
	}
	return c
}
