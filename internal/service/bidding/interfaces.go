package bidding

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/bid"
	"github.com/artbid/auction-marketplace-backend/internal/domain/values"
)

// Service accepts or rejects bids against an auction's moving price floor.
//
// Acceptance inserts a bid row and updates the auction's cached current_bid
// as one atomic unit: the floor check and both writes happen under the same
// serialization boundary (a row-level lock on the auction), so concurrent
// submissions are re-checked against the committed floor, never a stale read.
type Service interface {
	PlaceBid(ctx context.Context, req *PlaceBidRequest) (*BidReceipt, error)
	GetBidsForAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error)
}

// PlaceBidRequest carries a bid submission. Amount is the raw client value;
// the service owns parsing it so a malformed amount maps to the invalid-amount
// rejection rather than a transport error.
type PlaceBidRequest struct {
	AuctionID uuid.UUID
	BidderID  uuid.UUID
	Amount    string
}

// BidReceipt confirms an accepted bid.
type BidReceipt struct {
	BidID      uuid.UUID    `json:"id"`
	AuctionID  uuid.UUID    `json:"auction"`
	Amount     values.Money `json:"bid_amount"`
	PlacedAt   time.Time    `json:"bid_time"`
	CurrentBid values.Money `json:"current_bid"`
}

// UnitOfWork runs a function inside one storage transaction. The function's
// writes either all commit or none do.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, tx TxContext) error) error
}

// TxContext exposes transaction-scoped repositories.
type TxContext interface {
	Auctions() AuctionTxRepository
	Bids() BidTxRepository
}

// AuctionTxRepository is the auction surface inside a bid transaction.
type AuctionTxRepository interface {
	// GetForUpdate fetches the auction under a row-level lock, blocking
	// concurrent bidders on the same auction until this transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*auction.Auction, error)

	SetCurrentBid(ctx context.Context, id uuid.UUID, amount values.Money) error
}

// BidTxRepository is the bid ledger surface inside a bid transaction.
type BidTxRepository interface {
	Insert(ctx context.Context, b *bid.Bid) error
}

// BidRepository reads the bid ledger outside any transaction.
type BidRepository interface {
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error)
}

// MetricsCollector records bid acceptance outcomes.
type MetricsCollector interface {
	RecordBidAccepted(amount float64)
	RecordBidRejected(reason string)
}
