package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artbid/auction-marketplace-backend/internal/domain/bid"
)

// BidRepository stores the append-only bid ledger. Bids are never updated or
// deleted.
type BidRepository struct {
	db querier
}

// NewBidRepository creates a bid repository on the pool.
func NewBidRepository(pool *pgxpool.Pool) *BidRepository {
	return &BidRepository{db: pool}
}

// newBidTxRepository binds the repository to a transaction.
func newBidTxRepository(tx pgx.Tx) *BidRepository {
	return &BidRepository{db: tx}
}

func (r *BidRepository) Insert(ctx context.Context, b *bid.Bid) error {
	query := `
		INSERT INTO bids (id, auction_id, bidder_id, amount, placed_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, b.ID, b.AuctionID, b.BidderID, b.Amount, b.PlacedAt)
	if err != nil {
		return mapError(err, "bid")
	}
	return nil
}

func (r *BidRepository) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error) {
	query := `
		SELECT id, auction_id, bidder_id, amount, placed_at
		FROM bids
		WHERE auction_id = $1
		ORDER BY placed_at DESC`

	rows, err := r.db.Query(ctx, query, auctionID)
	if err != nil {
		return nil, mapError(err, "bid")
	}
	defer rows.Close()

	var bids []*bid.Bid
	for rows.Next() {
		var b bid.Bid
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.BidderID, &b.Amount, &b.PlacedAt); err != nil {
			return nil, mapError(err, "bid")
		}
		bids = append(bids, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "bid")
	}
	return bids, nil
}
