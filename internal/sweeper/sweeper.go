// Package sweeper removes expired pending-signup records on a fixed interval.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"newsfeed/internal/middleware"
	"newsfeed/internal/repository"
)

// Sweeper periodically bulk-deletes expired signup-auth records.
type Sweeper struct {
	repo     repository.SignupAuthRepository
	interval time.Duration
	started  bool
	done     chan struct{}
	stopped  chan struct{}
}

// New creates a sweeper running at the given interval.
func New(repo repository.SignupAuthRepository, interval time.Duration) *Sweeper {
	return &Sweeper{
		repo:     repo,
		interval: interval,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (s *Sweeper) Start() {
	s.started = true
	go s.run()
}

func (s *Sweeper) run() {
	defer close(s.stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		middleware.Logger.Error("signup-auth sweep failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		middleware.Logger.Info("swept expired signup tokens", slog.Int64("removed", removed))
	}
}

// Stop ends the sweep loop and waits for it to finish or for ctx to expire.
// Stopping a sweeper that was never started is a no-op.
func (s *Sweeper) Stop(ctx context.Context) error {
	if !s.started {
		return nil
	}
	close(s.done)
	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
