package marketplace_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/content"
	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
	"github.com/artbid/auction-marketplace-backend/internal/domain/geo"
	"github.com/artbid/auction-marketplace-backend/internal/service/lifecycle"
	"github.com/artbid/auction-marketplace-backend/internal/service/marketplace"
)

type stubLifecycle struct {
	view *lifecycle.AuctionView
	err  error
}

func (s *stubLifecycle) Evaluate(_ context.Context, _ uuid.UUID) (*lifecycle.AuctionView, error) {
	return s.view, s.err
}

type fakeAuctionQueryRepo struct {
	auctions []*auction.Auction
	artist   *marketplace.ArtistProfile

	relatedErr error

	gotFilter    *marketplace.AuctionFilter
	gotSearch    string
	gotMinViews  int64
	gotNow       time.Time
	gotTopStatus *auction.Status
	gotRelated   struct {
		categoryID uuid.UUID
		excludeID  uuid.UUID
		limit      int
	}
}

func (r *fakeAuctionQueryRepo) List(context.Context) ([]*auction.Auction, error) {
	return r.auctions, nil
}

func (r *fakeAuctionQueryRepo) Filter(_ context.Context, filter *marketplace.AuctionFilter) ([]*auction.Auction, error) {
	r.gotFilter = filter
	return r.auctions, nil
}

func (r *fakeAuctionQueryRepo) SearchByName(_ context.Context, name string) ([]*auction.Auction, error) {
	r.gotSearch = name
	return r.auctions, nil
}

func (r *fakeAuctionQueryRepo) ListByCategory(context.Context, uuid.UUID) ([]*auction.Auction, error) {
	return r.auctions, nil
}

func (r *fakeAuctionQueryRepo) Related(_ context.Context, categoryID, excludeID uuid.UUID, _ time.Time, limit int) ([]*auction.Auction, error) {
	if r.relatedErr != nil {
		return nil, r.relatedErr
	}
	r.gotRelated.categoryID = categoryID
	r.gotRelated.excludeID = excludeID
	r.gotRelated.limit = limit
	return r.auctions, nil
}

func (r *fakeAuctionQueryRepo) Top(_ context.Context, minViews int64, now time.Time, status *auction.Status) ([]*auction.Auction, error) {
	r.gotMinViews = minViews
	r.gotNow = now
	r.gotTopStatus = status
	return r.auctions, nil
}

func (r *fakeAuctionQueryRepo) BestArtist(context.Context) (*marketplace.ArtistProfile, error) {
	if r.artist == nil {
		return nil, errors.NewNotFoundError("artist")
	}
	return r.artist, nil
}

type fakeFavoriteRepo struct {
	favorites map[uuid.UUID]map[uuid.UUID]*auction.Favorite // auction -> user -> row
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[uuid.UUID]map[uuid.UUID]*auction.Favorite)}
}

func (r *fakeFavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*auction.Favorite, error) {
	var out []*auction.Favorite
	for _, users := range r.favorites {
		if f, ok := users[userID]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) Upsert(_ context.Context, f *auction.Favorite) error {
	if r.favorites[f.AuctionID] == nil {
		r.favorites[f.AuctionID] = make(map[uuid.UUID]*auction.Favorite)
	}
	r.favorites[f.AuctionID][f.UserID] = f
	return nil
}

func (r *fakeFavoriteRepo) Delete(_ context.Context, auctionID, userID uuid.UUID) error {
	delete(r.favorites[auctionID], userID)
	return nil
}

func (r *fakeFavoriteRepo) CountByAuction(_ context.Context, auctionID uuid.UUID) (int64, error) {
	return int64(len(r.favorites[auctionID])), nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*auction.Category
}

func (r *fakeCategoryRepo) List(context.Context) ([]*auction.Category, error) {
	out := make([]*auction.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*auction.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, errors.NewNotFoundError("category")
	}
	return c, nil
}

type fakeGeoRepo struct {
	regions       []*geo.Region
	districts     []*geo.District
	neighborhoods []*geo.Neighborhood
}

func (r *fakeGeoRepo) Regions(context.Context) ([]*geo.Region, error) { return r.regions, nil }

func (r *fakeGeoRepo) Districts(_ context.Context, regionID *uuid.UUID) ([]*geo.District, error) {
	if regionID == nil {
		return r.districts, nil
	}
	var out []*geo.District
	for _, d := range r.districts {
		if d.RegionID == *regionID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeGeoRepo) Neighborhoods(_ context.Context, districtID *uuid.UUID) ([]*geo.Neighborhood, error) {
	if districtID == nil {
		return r.neighborhoods, nil
	}
	var out []*geo.Neighborhood
	for _, n := range r.neighborhoods {
		if n.DistrictID == *districtID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeContentRepo struct {
	faqs     []*content.Faq
	about    []*content.About
	contacts []*content.Contact
}

func (r *fakeContentRepo) Faqs(context.Context) ([]*content.Faq, error) { return r.faqs, nil }

func (r *fakeContentRepo) About(context.Context) ([]*content.About, error) { return r.about, nil }

func (r *fakeContentRepo) SaveContact(_ context.Context, c *content.Contact) error {
	r.contacts = append(r.contacts, c)
	return nil
}

type deps struct {
	lifecycle  *stubLifecycle
	auctions   *fakeAuctionQueryRepo
	favorites  *fakeFavoriteRepo
	categories *fakeCategoryRepo
	geo        *fakeGeoRepo
	content    *fakeContentRepo
	clock      *auction.MockClock
}

func newTestService(t *testing.T) (marketplace.Service, *deps) {
	t.Helper()
	d := &deps{
		lifecycle:  &stubLifecycle{},
		auctions:   &fakeAuctionQueryRepo{},
		favorites:  newFakeFavoriteRepo(),
		categories: &fakeCategoryRepo{categories: make(map[uuid.UUID]*auction.Category)},
		geo:        &fakeGeoRepo{},
		content:    &fakeContentRepo{},
		clock:      &auction.MockClock{CurrentTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
	svc := marketplace.NewService(
		d.lifecycle, d.auctions, d.favorites, d.categories, d.geo, d.content,
		d.clock, zaptest.NewLogger(t), marketplace.DefaultConfig(),
	)
	return svc, d
}

func TestSearchAuctions_RequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SearchAuctions(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	_, err = svc.SearchAuctions(context.Background(), "harbor")
	require.NoError(t, err)
}

func TestFilterAuctions_RejectsInvertedPriceRange(t *testing.T) {
	svc, _ := newTestService(t)
	low, high := int64(500), int64(100)

	_, err := svc.FilterAuctions(context.Background(), &marketplace.AuctionFilter{
		MinPrice: &low,
		MaxPrice: &high,
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestFilterAuctions_NilFilterListsAll(t *testing.T) {
	svc, d := newTestService(t)
	d.auctions.auctions = []*auction.Auction{{ID: uuid.New()}, {ID: uuid.New()}}

	got, err := svc.FilterAuctions(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Nil(t, d.auctions.gotFilter)
}

func TestGetAuctionDetail_ComposesLifecycleAndRelated(t *testing.T) {
	svc, d := newTestService(t)
	categoryID := uuid.New()
	a := &auction.Auction{ID: uuid.New(), CategoryID: categoryID}
	d.lifecycle.view = &lifecycle.AuctionView{Auction: a}
	d.auctions.auctions = []*auction.Auction{{ID: uuid.New(), CategoryID: categoryID}}

	detail, err := svc.GetAuctionDetail(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Same(t, d.lifecycle.view, detail.View)
	assert.Len(t, detail.Related, 1)
	assert.Equal(t, categoryID, d.auctions.gotRelated.categoryID)
	assert.Equal(t, a.ID, d.auctions.gotRelated.excludeID)
	assert.Equal(t, 5, d.auctions.gotRelated.limit)
}

func TestGetAuctionDetail_SurvivesRelatedFailure(t *testing.T) {
	svc, d := newTestService(t)
	a := &auction.Auction{ID: uuid.New(), CategoryID: uuid.New()}
	d.lifecycle.view = &lifecycle.AuctionView{Auction: a}
	d.auctions.relatedErr = errors.NewInternalError("db down")

	detail, err := svc.GetAuctionDetail(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Related)
}

func TestGetAuctionDetail_PropagatesNotFound(t *testing.T) {
	svc, d := newTestService(t)
	d.lifecycle.err = errors.NewNotFoundError("auction")

	_, err := svc.GetAuctionDetail(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestTopAuctions_UsesConfiguredThreshold(t *testing.T) {
	svc, d := newTestService(t)
	status := auction.StatusLive

	_, err := svc.TopAuctions(context.Background(), &status)
	require.NoError(t, err)
	assert.Equal(t, int64(30), d.auctions.gotMinViews)
	assert.Equal(t, d.clock.CurrentTime, d.auctions.gotNow)
	require.NotNil(t, d.auctions.gotTopStatus)
	assert.Equal(t, auction.StatusLive, *d.auctions.gotTopStatus)
}

func TestBestArtist_NotFoundWhenNoArtists(t *testing.T) {
	svc, d := newTestService(t)

	_, err := svc.BestArtist(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	d.auctions.artist = &marketplace.ArtistProfile{ArtistName: "E. Moreau", AuctionCount: 4}
	profile, err := svc.BestArtist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "E. Moreau", profile.ArtistName)
}

func TestToggleFavorite_UpsertAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	auctionID := uuid.New()
	user1, user2 := uuid.New(), uuid.New()

	res, err := svc.ToggleFavorite(context.Background(), &marketplace.FavoriteRequest{
		AuctionID: auctionID, UserID: user1, Liked: true,
	})
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.LikesCount)

	// Liking twice is idempotent, not a duplicate row.
	res, err = svc.ToggleFavorite(context.Background(), &marketplace.FavoriteRequest{
		AuctionID: auctionID, UserID: user1, Liked: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikesCount)

	res, err = svc.ToggleFavorite(context.Background(), &marketplace.FavoriteRequest{
		AuctionID: auctionID, UserID: user2, Liked: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.LikesCount)

	res, err = svc.ToggleFavorite(context.Background(), &marketplace.FavoriteRequest{
		AuctionID: auctionID, UserID: user1, Liked: false,
	})
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(1), res.LikesCount)

	favorites, err := svc.ListFavorites(context.Background(), user1)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestAuctionsByCategory_UnknownCategory(t *testing.T) {
	svc, d := newTestService(t)

	_, err := svc.AuctionsByCategory(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	c := &auction.Category{ID: uuid.New(), Name: "Paintings"}
	d.categories.categories[c.ID] = c
	d.auctions.auctions = []*auction.Auction{{ID: uuid.New(), CategoryID: c.ID}}

	got, err := svc.AuctionsByCategory(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGeoLookups_OptionalFilters(t *testing.T) {
	svc, d := newTestService(t)
	region := &geo.Region{ID: uuid.New(), Name: "North"}
	district := &geo.District{ID: uuid.New(), Name: "Harborside", RegionID: region.ID}
	other := &geo.District{ID: uuid.New(), Name: "Elsewhere", RegionID: uuid.New()}
	d.geo.regions = []*geo.Region{region}
	d.geo.districts = []*geo.District{district, other}
	d.geo.neighborhoods = []*geo.Neighborhood{
		{ID: uuid.New(), Name: "Old Docks", DistrictID: district.ID},
	}

	regions, err := svc.ListRegions(context.Background())
	require.NoError(t, err)
	assert.Len(t, regions, 1)

	all, err := svc.ListDistricts(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListDistricts(context.Background(), &region.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Harborside", filtered[0].Name)

	neighborhoods, err := svc.ListNeighborhoods(context.Background(), &district.ID)
	require.NoError(t, err)
	assert.Len(t, neighborhoods, 1)
}

func TestSubmitContact(t *testing.T) {
	svc, d := newTestService(t)

	_, err := svc.SubmitContact(context.Background(), &marketplace.ContactRequest{
		Name: "A. Bidder", Email: "", Message: "hello",
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	c, err := svc.SubmitContact(context.Background(), &marketplace.ContactRequest{
		Name: "A. Bidder", Email: "bidder@example.com", Message: "hello",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	require.Len(t, d.content.contacts, 1)
}
