package marketplace

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/content"
	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
	"github.com/artbid/auction-marketplace-backend/internal/domain/geo"
	"github.com/artbid/auction-marketplace-backend/internal/service/lifecycle"
)

// Config tunes the marketplace query surface.
type Config struct {
	// RelatedLimit caps the related auctions attached to a detail view.
	RelatedLimit int
	// TopViewThreshold is the view count an auction must exceed to appear
	// in the top listing.
	TopViewThreshold int64
}

// DefaultConfig returns the standard marketplace settings.
func DefaultConfig() Config {
	return Config{
		RelatedLimit:     5,
		TopViewThreshold: 30,
	}
}

type service struct {
	lifecycle    lifecycle.Service
	auctionRepo  AuctionQueryRepository
	favoriteRepo FavoriteRepository
	categoryRepo CategoryRepository
	geoRepo      GeoRepository
	contentRepo  ContentRepository
	clock        auction.Clock
	logger       *zap.Logger
	cfg          Config
}

// NewService creates the marketplace query service.
func NewService(
	lifecycleSvc lifecycle.Service,
	auctionRepo AuctionQueryRepository,
	favoriteRepo FavoriteRepository,
	categoryRepo CategoryRepository,
	geoRepo GeoRepository,
	contentRepo ContentRepository,
	clock auction.Clock,
	logger *zap.Logger,
	cfg Config,
) Service {
	if cfg.RelatedLimit <= 0 {
		cfg.RelatedLimit = DefaultConfig().RelatedLimit
	}
	if cfg.TopViewThreshold <= 0 {
		cfg.TopViewThreshold = DefaultConfig().TopViewThreshold
	}
	return &service{
		lifecycle:    lifecycleSvc,
		auctionRepo:  auctionRepo,
		favoriteRepo: favoriteRepo,
		categoryRepo: categoryRepo,
		geoRepo:      geoRepo,
		contentRepo:  contentRepo,
		clock:        clock,
		logger:       logger,
		cfg:          cfg,
	}
}

func (s *service) ListAuctions(ctx context.Context) ([]*auction.Auction, error) {
	auctions, err := s.auctionRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list auctions").WithCause(err)
	}
	return auctions, nil
}

func (s *service) FilterAuctions(ctx context.Context, filter *AuctionFilter) ([]*auction.Auction, error) {
	if filter == nil {
		return s.ListAuctions(ctx)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, errors.NewValidationError("INVALID_PRICE_RANGE", "min price cannot exceed max price")
	}
	auctions, err := s.auctionRepo.Filter(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter auctions").WithCause(err)
	}
	return auctions, nil
}

func (s *service) SearchAuctions(ctx context.Context, name string) ([]*auction.Auction, error) {
	if name == "" {
		return nil, errors.NewValidationError("MISSING_NAME", "search requires a name parameter")
	}
	auctions, err := s.auctionRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, errors.NewInternalError("failed to search auctions").WithCause(err)
	}
	return auctions, nil
}

func (s *service) GetAuctionDetail(ctx context.Context, auctionID uuid.UUID) (*AuctionDetail, error) {
	view, err := s.lifecycle.Evaluate(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	related, err := s.auctionRepo.Related(ctx, view.Auction.CategoryID, auctionID, s.clock.Now(), s.cfg.RelatedLimit)
	if err != nil {
		// Related auctions are decoration; the detail view is still
		// worth serving without them.
		s.logger.Warn("failed to load related auctions",
			zap.String("auction_id", auctionID.String()),
			zap.Error(err))
		related = nil
	}

	return &AuctionDetail{View: view, Related: related}, nil
}

func (s *service) TopAuctions(ctx context.Context, status *auction.Status) ([]*auction.Auction, error) {
	auctions, err := s.auctionRepo.Top(ctx, s.cfg.TopViewThreshold, s.clock.Now(), status)
	if err != nil {
		return nil, errors.NewInternalError("failed to list top auctions").WithCause(err)
	}
	return auctions, nil
}

func (s *service) BestArtist(ctx context.Context) (*ArtistProfile, error) {
	profile, err := s.auctionRepo.BestArtist(ctx)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to compute best artist").WithCause(err)
	}
	return profile, nil
}

func (s *service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*auction.Favorite, error) {
	if userID == uuid.Nil {
		return nil, errors.NewValidationError("MISSING_USER_ID", "user ID is required")
	}
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list favorites").WithCause(err)
	}
	return favorites, nil
}

// ToggleFavorite applies the sparse-set semantics: liked=true upserts the
// (auction, user) row, liked=false deletes it. Either way the response carries
// the auction's resulting likes count.
func (s *service) ToggleFavorite(ctx context.Context, req *FavoriteRequest) (*FavoriteResult, error) {
	if req.AuctionID == uuid.Nil {
		return nil, errors.NewValidationError("MISSING_AUCTION_ID", "auction ID is required")
	}
	if req.UserID == uuid.Nil {
		return nil, errors.NewValidationError("MISSING_USER_ID", "user ID is required")
	}

	if req.Liked {
		if err := s.favoriteRepo.Upsert(ctx, auction.NewFavorite(req.AuctionID, req.UserID)); err != nil {
			return nil, errors.NewInternalError("failed to save favorite").WithCause(err)
		}
	} else {
		if err := s.favoriteRepo.Delete(ctx, req.AuctionID, req.UserID); err != nil {
			return nil, errors.NewInternalError("failed to remove favorite").WithCause(err)
		}
	}

	count, err := s.favoriteRepo.CountByAuction(ctx, req.AuctionID)
	if err != nil {
		return nil, errors.NewInternalError("failed to count likes").WithCause(err)
	}

	return &FavoriteResult{
		AuctionID:  req.AuctionID,
		Liked:      req.Liked,
		LikesCount: count,
	}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*auction.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list categories").WithCause(err)
	}
	return categories, nil
}

func (s *service) AuctionsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*auction.Auction, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to load category").WithCause(err)
	}
	auctions, err := s.auctionRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list auctions by category").WithCause(err)
	}
	return auctions, nil
}

func (s *service) ListRegions(ctx context.Context) ([]*geo.Region, error) {
	regions, err := s.geoRepo.Regions(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list regions").WithCause(err)
	}
	return regions, nil
}

func (s *service) ListDistricts(ctx context.Context, regionID *uuid.UUID) ([]*geo.District, error) {
	districts, err := s.geoRepo.Districts(ctx, regionID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list districts").WithCause(err)
	}
	return districts, nil
}

func (s *service) ListNeighborhoods(ctx context.Context, districtID *uuid.UUID) ([]*geo.Neighborhood, error) {
	neighborhoods, err := s.geoRepo.Neighborhoods(ctx, districtID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list neighborhoods").WithCause(err)
	}
	return neighborhoods, nil
}

func (s *service) ListFaqs(ctx context.Context) ([]*content.Faq, error) {
	faqs, err := s.contentRepo.Faqs(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list FAQs").WithCause(err)
	}
	return faqs, nil
}

func (s *service) ListAbout(ctx context.Context) ([]*content.About, error) {
	about, err := s.contentRepo.About(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list about content").WithCause(err)
	}
	return about, nil
}

func (s *service) SubmitContact(ctx context.Context, req *ContactRequest) (*content.Contact, error) {
	c, err := content.NewContact(req.Name, req.Email, req.Message)
	if err != nil {
		return nil, errors.NewValidationError("INVALID_CONTACT", err.Error())
	}
	if err := s.contentRepo.SaveContact(ctx, c); err != nil {
		return nil, errors.NewInternalError("failed to save contact message").WithCause(err)
	}

	s.logger.Info("contact message received", zap.String("contact_id", c.ID.String()))
	return c, nil
}
