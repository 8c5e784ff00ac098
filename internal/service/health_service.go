package service

import (
	"context"
	"sync"
	"time"

	"textquiz/internal/domain"
	"textquiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 3 * time.Second

// Pinger is anything with a connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService reports whether the backing stores are reachable.
type HealthService interface {
	// Ready pings every dependency concurrently. The map holds "ok" or the
	// failure per dependency; the error is the first failure.
	Ready(ctx context.Context) (map[string]string, error)
}

type healthService struct {
	deps map[string]Pinger
}

// NewHealthService creates a HealthService. nil dependencies are skipped.
func NewHealthService(repo domain.QuizResultRepository, cache domain.Cache) HealthService {
	deps := make(map[string]Pinger)
	if repo != nil {
		deps["database"] = repo
	}
	if cache != nil {
		deps["cache"] = cache
	}
	return &healthService{deps: deps}
}

func (s *healthService) Ready(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	var mu sync.Mutex
	checks := make(map[string]string, len(s.deps))

	// Plain Group: one failing dependency must not cancel the other probes.
	var g errgroup.Group
	for name, dep := range s.deps {
		g.Go(func() error {
			err := dep.Ping(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				checks[name] = err.Error()
				logger.Get().Warn("Readiness check failed", zap.String("dependency", name), zap.Error(err))
				return err
			}
			checks[name] = "ok"
			return nil
		})
	}
	err := g.Wait()
	return checks, err
}
