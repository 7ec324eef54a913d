package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/pkg/log"
)

const keyPrefix = "intake:resp:"

// Redis stores responses in a shared Redis instance, namespaced per session so
// entries never leak between conversations.
type Redis struct {
	client  *redis.Client
	ttl     time.Duration
	session string
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
}

// Ping tests the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func NewRedis(client *redis.Client, ttl time.Duration, sessionID string) *Redis {
	return &Redis{client: client, ttl: ttl, session: sessionID}
}

func RedisFactory(client *redis.Client, ttl time.Duration) Factory {
	return func(sessionID string) Cache {
		return NewRedis(client, ttl, sessionID)
	}
}

func (r *Redis) key(lang core.Language, input string) string {
	return keyPrefix + r.session + ":" + Key(lang, input)
}

// Get treats any Redis failure as a miss.
func (r *Redis) Get(ctx context.Context, lang core.Language, input string) (string, bool) {
	val, err := r.client.Get(ctx, r.key(lang, input)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.FromCtx(ctx).Warn().Err(err).Msg("response cache read failed")
		}
		return "", false
	}
	return val, true
}

func (r *Redis) Put(ctx context.Context, lang core.Language, input, response string) {
	if err := r.client.Set(ctx, r.key(lang, input), response, r.ttl).Err(); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("response cache write failed")
	}
}

// Clear drops every entry of this session.
func (r *Redis) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+r.session+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan session cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
