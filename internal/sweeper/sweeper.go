// Package sweeper runs the periodic auto-release pass. The engine's
// conditional status flips make overlapping passes safe, so the
// sweeper never coordinates with the API process.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hustlehub/backend/internal/marketplace"
)

type Sweeper struct {
	service  marketplace.ServiceInterface
	interval time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(service marketplace.ServiceInterface, interval time.Duration, logger *slog.Logger) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		service:  service,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	// First pass immediately; restarts should not wait a full interval.
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Sweeper) sweep() {
	released, err := s.service.ReleaseOverdue(s.ctx)
	if err != nil {
		s.logger.Error("sweep failed", slog.String("error", err.Error()))
		return
	}
	if released > 0 {
		s.logger.Info("sweep released overdue jobs", slog.Int("count", released))
	}
}

func (s *Sweeper) Stop() {
	s.cancel()
	s.wg.Wait()
}
