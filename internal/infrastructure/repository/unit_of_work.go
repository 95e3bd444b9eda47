package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/artbid/auction-marketplace-backend/internal/infrastructure/database"
	"github.com/artbid/auction-marketplace-backend/internal/service/bidding"
)

// UnitOfWork runs bid placement inside one database transaction, handing the
// service transaction-bound repositories so the row lock taken by
// GetForUpdate covers every statement until commit.
type UnitOfWork struct {
	pool *database.ConnectionPool
}

// NewUnitOfWork creates the transactional boundary for bid placement.
func NewUnitOfWork(pool *database.ConnectionPool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, tx bidding.TxContext) error) error {
	return u.pool.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &txContext{tx: tx})
	})
}

type txContext struct {
	tx pgx.Tx
}

func (t *txContext) Auctions() bidding.AuctionTxRepository {
	return newAuctionTxRepository(t.tx)
}

func (t *txContext) Bids() bidding.BidTxRepository {
	return newBidTxRepository(t.tx)
}
