package lifecycle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
	"github.com/artbid/auction-marketplace-backend/internal/service/lifecycle"
)

// fakeAuctionRepo is an in-memory lifecycle.AuctionRepository.
type fakeAuctionRepo struct {
	mu       sync.Mutex
	auctions map[uuid.UUID]*auction.Auction
	saves    int
}

func newFakeAuctionRepo(auctions ...*auction.Auction) *fakeAuctionRepo {
	repo := &fakeAuctionRepo{auctions: make(map[uuid.UUID]*auction.Auction)}
	for _, a := range auctions {
		repo.auctions[a.ID] = a
	}
	return repo
}

func (r *fakeAuctionRepo) GetByID(_ context.Context, id uuid.UUID) (*auction.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.auctions[id]
	if !ok {
		return nil, errors.NewNotFoundError("auction")
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAuctionRepo) SaveLifecycle(_ context.Context, a *auction.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.auctions[a.ID]
	if !ok {
		return errors.NewNotFoundError("auction")
	}
	stored.Status = a.Status
	stored.ViewCount = a.ViewCount
	stored.UpdatedAt = a.UpdatedAt
	r.saves++
	return nil
}

func (r *fakeAuctionRepo) stored(id uuid.UUID) *auction.Auction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.auctions[id]
}

func newTestAuction(start, end time.Time) *auction.Auction {
	return &auction.Auction{
		ID:            uuid.New(),
		Name:          "Evening Composition",
		StartingPrice: 100,
		StartDate:     start,
		EndDate:       end,
		Status:        auction.StatusUpcoming,
		CategoryID:    uuid.New(),
		OwnerID:       uuid.New(),
	}
}

func TestEvaluate_StatusDerivation(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name string
		now  time.Time
		want auction.Status
	}{
		{name: "before window", now: start.Add(-time.Hour), want: auction.StatusUpcoming},
		{name: "inside window", now: start.Add(time.Hour), want: auction.StatusLive},
		{name: "at window end", now: end, want: auction.StatusLive},
		{name: "past window", now: end.Add(time.Hour), want: auction.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuction(start, end)
			repo := newFakeAuctionRepo(a)
			clk := &auction.MockClock{CurrentTime: tt.now}
			svc := lifecycle.NewService(repo, clk, zaptest.NewLogger(t), nil)

			view, err := svc.Evaluate(context.Background(), a.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, view.Auction.Status)

			// The status is written back, not just returned.
			assert.Equal(t, tt.want, repo.stored(a.ID).Status)
		})
	}
}

func TestEvaluate_SelfHealsStaleStatus(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	a := newTestAuction(start, start.Add(time.Hour))
	a.Status = auction.StatusLive // stale: window long over

	repo := newFakeAuctionRepo(a)
	clk := &auction.MockClock{CurrentTime: start.Add(48 * time.Hour)}
	svc := lifecycle.NewService(repo, clk, zaptest.NewLogger(t), nil)

	view, err := svc.Evaluate(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, auction.StatusCompleted, view.Auction.Status)
	assert.Equal(t, auction.StatusCompleted, repo.stored(a.ID).Status)
}

func TestEvaluate_IncrementsViewCountPerCall(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	a := newTestAuction(start, start.Add(time.Hour))
	repo := newFakeAuctionRepo(a)
	clk := &auction.MockClock{CurrentTime: start.Add(time.Minute)}
	svc := lifecycle.NewService(repo, clk, zaptest.NewLogger(t), nil)

	const n = 7
	for i := 0; i < n; i++ {
		_, err := svc.Evaluate(context.Background(), a.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(n), repo.stored(a.ID).ViewCount)
	assert.Equal(t, n, repo.saves)
}

func TestEvaluate_MonotonicProgress(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	a := newTestAuction(start, end)
	repo := newFakeAuctionRepo(a)
	clk := &auction.MockClock{CurrentTime: start.Add(-time.Minute)}
	svc := lifecycle.NewService(repo, clk, zaptest.NewLogger(t), nil)

	expected := []auction.Status{
		auction.StatusUpcoming,
		auction.StatusLive,
		auction.StatusLive,
		auction.StatusCompleted,
		auction.StatusCompleted,
	}
	advances := []time.Duration{0, 2 * time.Minute, time.Second, 2 * time.Hour, time.Hour}

	for i, d := range advances {
		clk.Advance(d)
		view, err := svc.Evaluate(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, expected[i], view.Auction.Status, "step %d", i)
	}
}

func TestEvaluate_PreservesAdministrativeCancellation(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	a := newTestAuction(start, start.Add(time.Hour))
	a.Status = auction.StatusCancelled

	repo := newFakeAuctionRepo(a)
	clk := &auction.MockClock{CurrentTime: start.Add(30 * time.Minute)}
	svc := lifecycle.NewService(repo, clk, zaptest.NewLogger(t), nil)

	view, err := svc.Evaluate(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, auction.StatusCancelled, view.Auction.Status)
	assert.Equal(t, int64(1), view.Auction.ViewCount, "views still counted on cancelled auctions")
}

func TestEvaluate_NotFound(t *testing.T) {
	repo := newFakeAuctionRepo()
	clk := &auction.MockClock{CurrentTime: time.Now()}
	svc := lifecycle.NewService(repo, clk, zaptest.NewLogger(t), nil)

	_, err := svc.Evaluate(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestEvaluate_RemainingTime(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	a := newTestAuction(start, end)
	repo := newFakeAuctionRepo(a)
	clk := &auction.MockClock{CurrentTime: end.Add(-(3*time.Hour + 20*time.Minute))}
	svc := lifecycle.NewService(repo, clk, zaptest.NewLogger(t), nil)

	view, err := svc.Evaluate(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, auction.RemainingTime{Hours: 3, Minutes: 20}, view.Remaining)
}
