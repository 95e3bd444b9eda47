package lifecycle

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
)

type service struct {
	auctionRepo AuctionRepository
	clock       auction.Clock
	logger      *zap.Logger
	metrics     MetricsCollector
}

// NewService creates a new lifecycle service.
func NewService(auctionRepo AuctionRepository, clock auction.Clock, logger *zap.Logger, metrics MetricsCollector) Service {
	return &service{
		auctionRepo: auctionRepo,
		clock:       clock,
		logger:      logger,
		metrics:     metrics,
	}
}

// Evaluate fetches the auction, recomputes its status against the current
// clock, counts the view, and writes both back so the next reader sees fresh
// state.
func (s *service) Evaluate(ctx context.Context, auctionID uuid.UUID) (*AuctionView, error) {
	a, err := s.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to load auction").WithCause(err)
	}

	now := s.clock.Now()

	prev := a.Status
	status := a.RefreshStatus(now)
	if status == auction.StatusCancelled && prev != auction.StatusCancelled {
		// The residual branch of the status derivation fired. It is
		// unreachable for a well-formed window, so the stored window must
		// violate the creation invariant.
		s.logger.Error("lifecycle derived cancelled status from time window",
			zap.String("auction_id", a.ID.String()),
			zap.Time("start_date", a.StartDate),
			zap.Time("end_date", a.EndDate),
			zap.Time("now", now))
	}

	a.RecordView()

	if err := s.auctionRepo.SaveLifecycle(ctx, a); err != nil {
		return nil, errors.NewInternalError("failed to persist lifecycle state").WithCause(err)
	}

	if s.metrics != nil {
		s.metrics.RecordLifecycleEvaluation(status.String())
	}

	return &AuctionView{
		Auction:   a,
		Remaining: a.Remaining(now),
	}, nil
}
