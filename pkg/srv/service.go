package srv

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sandevgo/intake/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then stops every service
// concurrently within timeout.
func ShutdownServices(ctx context.Context, timeout time.Duration, services []Service) error {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(shutdownCtx)
	for _, service := range services {
		g.Go(func() error {
			if err := service.Shutdown(gctx); err != nil {
				log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", service)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
