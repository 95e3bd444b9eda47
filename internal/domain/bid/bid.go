package bid

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/artbid/auction-marketplace-backend/internal/domain/values"
)

// Bid is one entry in an auction's append-only bid ledger. A bid is never
// mutated or deleted once created; the auction's current_bid field is the
// only place the winning amount is cached.
type Bid struct {
	ID        uuid.UUID    `json:"id"`
	AuctionID uuid.UUID    `json:"auction"`
	BidderID  uuid.UUID    `json:"user"`
	Amount    values.Money `json:"bid_amount"`
	PlacedAt  time.Time    `json:"bid_time"`
}

// New creates a bid with a server-assigned timestamp.
func New(auctionID, bidderID uuid.UUID, amount values.Money, now time.Time) (*Bid, error) {
	if auctionID == uuid.Nil {
		return nil, fmt.Errorf("auction ID cannot be nil")
	}
	if bidderID == uuid.Nil {
		return nil, fmt.Errorf("bidder ID cannot be nil")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("bid amount must be positive")
	}

	return &Bid{
		ID:        uuid.New(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		PlacedAt:  now,
	}, nil
}
