// AngelaMos | 2026
// sweeper.go

package subscription

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper runs the expiry sweep on a fixed interval. It is the in-process
// scheduler for Service.SweepExpired; the ops endpoint can trigger the same
// sweep on demand.
type Sweeper struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewSweeper(
	service *Service,
	interval time.Duration,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the sweep loop. Call Stop to shut it down.
func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	s.logger.Info("subscription sweeper started", "interval", s.interval)
}

// Stop cancels the loop and waits for any in-flight sweep to finish.
func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info("subscription sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	report, err := s.service.SweepExpired(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "expiry sweep failed", "error", err)
		return
	}

	if report.Scanned == 0 {
		return
	}

	s.logger.InfoContext(ctx, "expiry sweep complete",
		"scanned", report.Scanned,
		"expired", report.Expired,
		"renewed", report.Renewed,
		"failed", report.Failed,
	)
}
