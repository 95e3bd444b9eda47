package bidding

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/bid"
	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
	"github.com/artbid/auction-marketplace-backend/internal/domain/values"
)

type service struct {
	uow     UnitOfWork
	bidRepo BidRepository
	clock   auction.Clock
	logger  *zap.Logger
	metrics MetricsCollector
}

// NewService creates a new bid acceptance service.
func NewService(uow UnitOfWork, bidRepo BidRepository, clock auction.Clock, logger *zap.Logger, metrics MetricsCollector) Service {
	return &service{
		uow:     uow,
		bidRepo: bidRepo,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// PlaceBid validates the submission against the auction's effective floor and,
// on acceptance, inserts the bid and updates current_bid inside one
// transaction. A write conflict surfaces as a retryable conflict error for the
// caller; the service itself never retries, since a silent retry could
// double-insert a bid.
func (s *service) PlaceBid(ctx context.Context, req *PlaceBidRequest) (*BidReceipt, error) {
	if req.AuctionID == uuid.Nil {
		return nil, errors.NewValidationError("MISSING_AUCTION_ID", "auction ID is required")
	}
	if req.BidderID == uuid.Nil {
		return nil, errors.NewValidationError("MISSING_BIDDER_ID", "bidder ID is required")
	}

	var receipt *BidReceipt
	err := s.uow.Execute(ctx, func(ctx context.Context, tx TxContext) error {
		now := s.clock.Now()

		// Lock the auction row first: the availability check, the floor
		// check, and both writes all happen under this one lock.
		a, err := tx.Auctions().GetForUpdate(ctx, req.AuctionID)
		if err != nil {
			if errors.IsType(err, errors.ErrorTypeNotFound) {
				return errors.NewBusinessError("AUCTION_UNAVAILABLE", "Auction does not exist or has ended").WithCause(err)
			}
			return err
		}
		if !a.AcceptsBidsAt(now) {
			return errors.NewBusinessError("AUCTION_UNAVAILABLE", "Auction does not exist or has ended")
		}

		amount, err := values.NewMoneyFromString(req.Amount)
		if err != nil || !amount.IsPositive() {
			return errors.NewValidationError("INVALID_AMOUNT", "Bid amount must be a positive decimal number")
		}

		floor := a.EffectiveFloor()
		if !amount.GreaterThan(floor) {
			return errors.NewBusinessError("BID_TOO_LOW",
				"Bid amount must be higher than the current bid or starting price").
				WithDetails(map[string]interface{}{"effective_floor": floor.String()})
		}

		b, err := bid.New(a.ID, req.BidderID, amount, now)
		if err != nil {
			return errors.NewInternalError("failed to construct bid").WithCause(err)
		}

		if err := tx.Bids().Insert(ctx, b); err != nil {
			return err
		}
		if err := tx.Auctions().SetCurrentBid(ctx, a.ID, amount); err != nil {
			return err
		}

		receipt = &BidReceipt{
			BidID:      b.ID,
			AuctionID:  a.ID,
			Amount:     amount,
			PlacedAt:   b.PlacedAt,
			CurrentBid: amount,
		}
		return nil
	})
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	s.logger.Info("bid accepted",
		zap.String("auction_id", receipt.AuctionID.String()),
		zap.String("bid_id", receipt.BidID.String()),
		zap.String("amount", receipt.Amount.String()))

	if s.metrics != nil {
		s.metrics.RecordBidAccepted(receipt.Amount.ToFloat64())
	}

	return receipt, nil
}

// GetBidsForAuction returns the auction's bid ledger, newest first.
func (s *service) GetBidsForAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error) {
	bids, err := s.bidRepo.ListByAuction(ctx, auctionID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list bids").WithCause(err)
	}
	return bids, nil
}

func (s *service) recordRejection(err error) {
	if s.metrics == nil {
		return
	}

	reason := "internal"
	switch {
	case errors.IsType(err, errors.ErrorTypeValidation):
		reason = "invalid_amount"
	case errors.IsType(err, errors.ErrorTypeBusiness):
		reason = "business_rule"
	case errors.IsType(err, errors.ErrorTypeConflict):
		reason = "conflict"
	}
	s.metrics.RecordBidRejected(reason)
}
