package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sandevgo/intake/internal/config"
	"github.com/sandevgo/intake/internal/service/dialogue"
	"github.com/sandevgo/intake/pkg/log"
)

// Server exposes conversations over JSON.
type Server struct {
	cfg      *config.HTTPConfig
	sessions *dialogue.Registry
	http     *http.Server
}

// NewServer builds the router. A nil gatherer leaves /metrics unmounted.
func NewServer(ctx context.Context, cfg *config.HTTPConfig, sessions *dialogue.Registry, gatherer prometheus.Gatherer) *Server {
	s := &Server{cfg: cfg, sessions: sessions}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(ctx, gatherer),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes(ctx context.Context, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger(ctx))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/turns", s.postTurn)
			r.Get("/messages", s.getMessages)
		})
	})

	return r
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Msg("starting http api")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// requestLogger puts the base logger on every request context and logs one
// line per request.
func requestLogger(base context.Context) func(http.Handler) http.Handler {
	logger := log.FromCtx(base)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := logger.With().Str("request_id", chiMiddleware.GetReqID(r.Context())).Logger().WithContext(r.Context())
			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("http request")
		})
	}
}
