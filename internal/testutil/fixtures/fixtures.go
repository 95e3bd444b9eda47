// Package fixtures provides builders for test data.
package fixtures

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/bid"
	"github.com/artbid/auction-marketplace-backend/internal/domain/values"
)

// AuctionBuilder builds auctions with sensible defaults.
type AuctionBuilder struct {
	auction *auction.Auction
}

// NewAuction starts a builder for a live auction with a one-day window
// around the given instant.
func NewAuction(now time.Time) *AuctionBuilder {
	return &AuctionBuilder{auction: &auction.Auction{
		ID:            uuid.New(),
		Name:          "Harbor at Dusk",
		StartingPrice: 100,
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(23 * time.Hour),
		Period:        auction.PeriodAfternoon,
		Status:        auction.StatusLive,
		CategoryID:    uuid.New(),
		OwnerID:       uuid.New(),
		CreatedAt:     now.Add(-time.Hour),
		UpdatedAt:     now.Add(-time.Hour),
	}}
}

func (b *AuctionBuilder) WithName(name string) *AuctionBuilder {
	b.auction.Name = name
	return b
}

func (b *AuctionBuilder) WithStartingPrice(price int64) *AuctionBuilder {
	b.auction.StartingPrice = price
	return b
}

func (b *AuctionBuilder) WithWindow(start, end time.Time) *AuctionBuilder {
	b.auction.StartDate = start
	b.auction.EndDate = end
	return b
}

func (b *AuctionBuilder) WithStatus(status auction.Status) *AuctionBuilder {
	b.auction.Status = status
	return b
}

func (b *AuctionBuilder) WithCurrentBid(t *testing.T, amount string) *AuctionBuilder {
	t.Helper()
	m := values.MustNewMoneyFromString(amount)
	b.auction.CurrentBid = &m
	return b
}

func (b *AuctionBuilder) WithCategory(categoryID uuid.UUID) *AuctionBuilder {
	b.auction.CategoryID = categoryID
	return b
}

func (b *AuctionBuilder) WithArtist(name string) *AuctionBuilder {
	b.auction.ArtistName = name
	return b
}

func (b *AuctionBuilder) WithViewCount(views int64) *AuctionBuilder {
	b.auction.ViewCount = views
	return b
}

func (b *AuctionBuilder) Build() *auction.Auction {
	copied := *b.auction
	return &copied
}

// NewBid builds a bid against the given auction.
func NewBid(t *testing.T, auctionID uuid.UUID, amount string, placedAt time.Time) *bid.Bid {
	t.Helper()
	b, err := bid.New(auctionID, uuid.New(), values.MustNewMoneyFromString(amount), placedAt)
	if err != nil {
		t.Fatalf("building bid fixture: %v", err)
	}
	return b
}
