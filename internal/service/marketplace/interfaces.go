package marketplace

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/content"
	"github.com/artbid/auction-marketplace-backend/internal/domain/geo"
	"github.com/artbid/auction-marketplace-backend/internal/service/lifecycle"
)

// Service serves the marketplace's read side: listings, search, detail
// composition, favorites, and the reference data (categories, geography,
// site content) the storefront renders around the auctions.
type Service interface {
	ListAuctions(ctx context.Context) ([]*auction.Auction, error)
	FilterAuctions(ctx context.Context, filter *AuctionFilter) ([]*auction.Auction, error)

	// SearchAuctions matches auction names by substring. An empty name is a
	// validation error, not an unfiltered list.
	SearchAuctions(ctx context.Context, name string) ([]*auction.Auction, error)

	// GetAuctionDetail runs a lifecycle evaluation (refreshing status and
	// counting the view) and attaches related auctions from the same
	// category that have not ended.
	GetAuctionDetail(ctx context.Context, auctionID uuid.UUID) (*AuctionDetail, error)

	// TopAuctions lists auctions whose view count exceeds the configured
	// threshold and whose window has not ended.
	TopAuctions(ctx context.Context, status *auction.Status) ([]*auction.Auction, error)

	// BestArtist returns the artist with the most auctions. NotFound when
	// no auction carries an artist name.
	BestArtist(ctx context.Context) (*ArtistProfile, error)

	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*auction.Favorite, error)
	ToggleFavorite(ctx context.Context, req *FavoriteRequest) (*FavoriteResult, error)

	ListCategories(ctx context.Context) ([]*auction.Category, error)
	AuctionsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*auction.Auction, error)

	ListRegions(ctx context.Context) ([]*geo.Region, error)
	ListDistricts(ctx context.Context, regionID *uuid.UUID) ([]*geo.District, error)
	ListNeighborhoods(ctx context.Context, districtID *uuid.UUID) ([]*geo.Neighborhood, error)

	ListFaqs(ctx context.Context) ([]*content.Faq, error)
	ListAbout(ctx context.Context) ([]*content.About, error)
	SubmitContact(ctx context.Context, req *ContactRequest) (*content.Contact, error)
}

// AuctionFilter narrows a listing. Nil fields are ignored; CategoryName
// matches case-insensitively by substring.
type AuctionFilter struct {
	MinPrice     *int64
	MaxPrice     *int64
	CategoryName string
	Status       *auction.Status
	Period       *auction.Period
	StartAfter   *time.Time
	EndBefore    *time.Time
}

// AuctionDetail is the storefront detail payload.
type AuctionDetail struct {
	View    *lifecycle.AuctionView `json:"view"`
	Related []*auction.Auction     `json:"related_auctions"`
}

// ArtistProfile aggregates one artist's presence across auctions.
type ArtistProfile struct {
	ArtistName   string             `json:"artist_name"`
	ArtistImage  string             `json:"artist_image,omitempty"`
	ArtistBio    string             `json:"artist_bio,omitempty"`
	AuctionCount int64              `json:"auction_count"`
	Auctions     []*auction.Auction `json:"auctions,omitempty"`
}

// FavoriteRequest toggles an auction's liked state for a user.
type FavoriteRequest struct {
	AuctionID uuid.UUID
	UserID    uuid.UUID
	Liked     bool
}

// FavoriteResult reports the state after a toggle.
type FavoriteResult struct {
	AuctionID  uuid.UUID `json:"auction"`
	Liked      bool      `json:"liked"`
	LikesCount int64     `json:"likes_count"`
}

// ContactRequest carries a contact form submission.
type ContactRequest struct {
	Name    string
	Email   string
	Message string
}

// AuctionQueryRepository is the read surface over the auction table.
type AuctionQueryRepository interface {
	List(ctx context.Context) ([]*auction.Auction, error)
	Filter(ctx context.Context, filter *AuctionFilter) ([]*auction.Auction, error)
	SearchByName(ctx context.Context, name string) ([]*auction.Auction, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*auction.Auction, error)

	// Related lists auctions sharing the category, excluding the given id
	// and anything already ended, up to limit.
	Related(ctx context.Context, categoryID, excludeID uuid.UUID, now time.Time, limit int) ([]*auction.Auction, error)

	// Top lists auctions with more than minViews views whose end is still
	// in the future, optionally restricted to one status.
	Top(ctx context.Context, minViews int64, now time.Time, status *auction.Status) ([]*auction.Auction, error)

	// BestArtist aggregates auction counts per artist name and returns the
	// largest. NotFound when no auction names an artist.
	BestArtist(ctx context.Context) (*ArtistProfile, error)
}

// FavoriteRepository stores the sparse currently-liked set.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*auction.Favorite, error)
	Upsert(ctx context.Context, f *auction.Favorite) error
	Delete(ctx context.Context, auctionID, userID uuid.UUID) error
	CountByAuction(ctx context.Context, auctionID uuid.UUID) (int64, error)
}

// CategoryRepository reads the category taxonomy.
type CategoryRepository interface {
	List(ctx context.Context) ([]*auction.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*auction.Category, error)
}

// GeoRepository reads the geographic taxonomy.
type GeoRepository interface {
	Regions(ctx context.Context) ([]*geo.Region, error)
	Districts(ctx context.Context, regionID *uuid.UUID) ([]*geo.District, error)
	Neighborhoods(ctx context.Context, districtID *uuid.UUID) ([]*geo.Neighborhood, error)
}

// ContentRepository reads site content and stores contact submissions.
type ContentRepository interface {
	Faqs(ctx context.Context) ([]*content.Faq, error)
	About(ctx context.Context) ([]*content.About, error)
	SaveContact(ctx context.Context, c *content.Contact) error
}
