package worker

import (
	"context"
	"github.com/ivanpodgorny/sprayweb/internal/metrics"
	"go.uber.org/zap"
	"sync"
	"time"
)

// Sweeper периодически удаляет истекшие сессии пользователей. Первая очистка
// выполняется сразу после запуска, следующие - каждые Sweeper.interval.
type Sweeper struct {
	repository ExpiredSessionRepository
	interval   time.Duration
	wg         *sync.WaitGroup
	logger     *zap.Logger
	now        func() time.Time
}

type ExpiredSessionRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

func NewSweeper(r ExpiredSessionRepository, interval time.Duration, wg *sync.WaitGroup, l *zap.Logger) *Sweeper {
	return &Sweeper{
		repository: r,
		interval:   interval,
		wg:         wg,
		logger:     l,
		now:        time.Now,
	}
}

func (s *Sweeper) Do(ctx context.Context) {
	s.wg.Add(1)

	go s.worker(ctx)
}

func (s *Sweeper) worker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.repository.DeleteExpired(ctx, s.now())
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("failed to delete expired sessions", zap.Error(err))
		}

		return
	}

	if deleted > 0 {
		metrics.SessionsSweptTotal.Add(float64(deleted))
		s.logger.Debug("expired sessions deleted", zap.Int64("count", deleted))
	}
}
