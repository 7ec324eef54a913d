package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sandevgo/intake/internal/config"
	"github.com/sandevgo/intake/internal/metrics"
	"github.com/sandevgo/intake/internal/providers/llm"
	"github.com/sandevgo/intake/internal/service/cache"
	"github.com/sandevgo/intake/internal/service/command"
	"github.com/sandevgo/intake/internal/service/dialogue"
	"github.com/sandevgo/intake/internal/service/knowledge"
	"github.com/sandevgo/intake/internal/storage/sqlite"
	"github.com/sandevgo/intake/internal/transport/httpapi"
	"github.com/sandevgo/intake/internal/transport/telegram"
	"github.com/sandevgo/intake/pkg/log"
	"github.com/sandevgo/intake/pkg/srv"
)

// app is everything a command needs to hold conversations.
type app struct {
	cfg      *config.AppConfig
	db       *sql.DB
	sessions *dialogue.Registry
	commands *command.Router
	cleanups []srv.Service
}

// newApp loads configuration and wires storage, cache, LLM and the engine.
// A nil reg disables metrics.
func newApp(ctx context.Context, reg prometheus.Registerer, sessionTTL time.Duration) (*app, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	cacheCfg := config.NewCacheConfig(ctx)

	a := &app{cfg: appCfg}

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.db = db
	a.cleanups = append(a.cleanups, srv.NewCleanup("database", db.Close))

	// 3. Response cache
	caches, cleanup, err := initCache(ctx, cacheCfg)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		a.cleanups = append(a.cleanups, srv.NewCleanup("response cache", cleanup))
	}

	// 4. Optional LLM backend
	assistant, err := llm.NewAssistant(ctx, llmCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	// 5. Dialogue engine
	deps := dialogue.Deps{
		Gateway:      sqlite.NewInquiryRepo(db),
		Knowledge:    knowledge.NewLoader(sqlite.NewKnowledgeRepo(db)),
		Transcripts:  sqlite.NewMessagesRepo(db),
		Cache:        caches,
		Assistant:    assistant,
		HistoryLimit: appCfg.GetHistoryLimit(),
	}
	if reg != nil {
		deps.Recorder = metrics.New(reg)
	}

	a.sessions = dialogue.NewRegistry(dialogue.NewEngine(deps), appCfg.GetDefaultLanguage(), sessionTTL)
	a.commands = command.New(command.NewCommands(a.sessions))
	if reg != nil {
		metrics.SessionGauge(reg, a.sessions.Len)
	}

	return a, nil
}

func NewServices(ctx context.Context) ([]srv.Service, []srv.Service, error) {
	httpCfg := config.NewHTTPConfig(ctx)

	a, err := newApp(ctx, prometheus.DefaultRegisterer, httpCfg.SessionTTL)
	if err != nil {
		return nil, nil, err
	}

	services := []srv.Service{a.sessions}

	// Transports
	if a.cfg.IsHTTPSelected() {
		services = append(services, httpapi.NewServer(ctx, httpCfg, a.sessions, prometheus.DefaultGatherer))
	}

	if a.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.sessions, a.commands)
		if err != nil {
			return nil, nil, err
		}
		services = append(services, bot)
	}

	if len(services) == 1 {
		log.FromCtx(ctx).Warn().Msg("no transport enabled, set ENABLE_HTTP or ENABLE_TELEGRAM")
	}

	return services, a.cleanups, nil
}

func initCache(ctx context.Context, cfg *config.CacheConfig) (cache.Factory, func() error, error) {
	switch cfg.Backend {
	case config.CacheRedis:
		client := cache.NewRedisClient(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := cache.Ping(ctx, client); err != nil {
			client.Close()
			return nil, nil, err
		}
		log.FromCtx(ctx).Info().Str("addr", cfg.RedisAddr).Msg("using redis response cache")
		return cache.RedisFactory(client, cfg.TTL), client.Close, nil
	case config.CacheMemory, "":
		return cache.MemoryFactory(cfg.Capacity), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
