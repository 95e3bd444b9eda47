package lifecycle

import (
	"context"

	"github.com/google/uuid"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
)

// Service recomputes an auction's status from its time window on demand.
// Freshness is "pulled" on access: there is no background sweep, every detail
// read self-heals a stale status.
type Service interface {
	// Evaluate refreshes the auction's status and view count and persists
	// both. Fails with a not-found error if the id is unknown.
	Evaluate(ctx context.Context, auctionID uuid.UUID) (*AuctionView, error)
}

// AuctionView is an auction with freshly evaluated lifecycle state.
type AuctionView struct {
	Auction   *auction.Auction      `json:"auction"`
	Remaining auction.RemainingTime `json:"time_remaining"`
}

// AuctionRepository is the store surface the lifecycle engine needs.
type AuctionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*auction.Auction, error)

	// SaveLifecycle persists the auction's status and view count together.
	SaveLifecycle(ctx context.Context, a *auction.Auction) error
}

// MetricsCollector records lifecycle evaluation outcomes.
type MetricsCollector interface {
	RecordLifecycleEvaluation(status string)
}
