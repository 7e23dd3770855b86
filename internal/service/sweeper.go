package service

import (
	"context"
	"time"

	"github.com/condogate/condogate/internal/repository"
	"github.com/condogate/condogate/pkg/events"
	"github.com/condogate/condogate/pkg/logger"
)

// PassSweeper periodically purges expired passes from storage. Expired
// passes are already invisible to queries; the sweep just reclaims the
// rows.
type PassSweeper struct {
	visitorRepo repository.VisitorRepository
	eventBus    events.Publisher
	interval    time.Duration
}

func NewPassSweeper(visitorRepo repository.VisitorRepository, eventBus events.Publisher, interval time.Duration) *PassSweeper {
	return &PassSweeper{
		visitorRepo: visitorRepo,
		eventBus:    eventBus,
		interval:    interval,
	}
}

// Run blocks until ctx is canceled.
func (s *PassSweeper) Run(ctx context.Context) {
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

func (s *PassSweeper) sweep(ctx context.Context) {
	purged, err := s.visitorRepo.DeleteExpired(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Pass sweep failed", "error", err)
		return
	}
	if purged == 0 {
		return
	}

	logger.InfoContext(ctx, "Purged expired passes", "purged", purged)

	if s.eventBus != nil {
		err := s.eventBus.Publish(ctx, events.PassExpired, events.PassExpiredEvent{
			Purged:  purged,
			SweptAt: time.Now(),
		})
		if err != nil {
			logger.WarnContext(ctx, "Failed to publish event", "subject", events.PassExpired, "error", err)
		}
	}
}
