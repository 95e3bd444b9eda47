package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
	"github.com/artbid/auction-marketplace-backend/internal/infrastructure/cache"
	"github.com/artbid/auction-marketplace-backend/internal/service/bidding"
	"github.com/artbid/auction-marketplace-backend/internal/service/marketplace"
)

// Handler exposes the marketplace over HTTP.
type Handler struct {
	bidding     bidding.Service
	marketplace marketplace.Service
	auth        *authenticator
	bidLimiter  cache.RateLimiter
	bidLimit    int
	bidWindow   time.Duration
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	biddingSvc bidding.Service,
	marketplaceSvc marketplace.Service,
	users UserStore,
	bidLimiter cache.RateLimiter,
	jwtSecret string,
	bidLimit int,
	bidWindow time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bidding:     biddingSvc,
		marketplace: marketplaceSvc,
		auth:        newAuthenticator(jwtSecret, users, logger),
		bidLimiter:  bidLimiter,
		bidLimit:    bidLimit,
		bidWindow:   bidWindow,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Routes registers all endpoints on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/auctions", h.listAuctions)
	mux.HandleFunc("GET /api/v1/auctions/search", h.searchAuctions)
	mux.HandleFunc("GET /api/v1/auctions/top", h.topAuctions)
	mux.HandleFunc("GET /api/v1/auctions/best-artist", h.bestArtist)
	mux.HandleFunc("GET /api/v1/auctions/{id}", h.getAuction)
	mux.HandleFunc("GET /api/v1/auctions/{id}/bids", h.listBids)

	mux.HandleFunc("POST /api/v1/bids", h.auth.require(h.placeBid))

	mux.HandleFunc("GET /api/v1/favorites", h.auth.require(h.listFavorites))
	mux.HandleFunc("POST /api/v1/favorites", h.auth.require(h.toggleFavorite))

	mux.HandleFunc("GET /api/v1/categories", h.listCategories)
	mux.HandleFunc("GET /api/v1/categories/{id}/auctions", h.auctionsByCategory)

	mux.HandleFunc("GET /api/v1/regions", h.listRegions)
	mux.HandleFunc("GET /api/v1/districts", h.listDistricts)
	mux.HandleFunc("GET /api/v1/neighborhoods", h.listNeighborhoods)

	mux.HandleFunc("GET /api/v1/faqs", h.listFaqs)
	mux.HandleFunc("GET /api/v1/about", h.listAbout)
	mux.HandleFunc("POST /api/v1/contact", h.submitContact)

	return mux
}

// listAuctions serves both the plain list and the filtered list: any
// recognized query parameter switches to filtering.
func (h *Handler) listAuctions(w http.ResponseWriter, r *http.Request) {
	filter, filtered, err := parseAuctionFilter(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var auctions []*auction.Auction
	if filtered {
		auctions, err = h.marketplace.FilterAuctions(r.Context(), filter)
	} else {
		auctions, err = h.marketplace.ListAuctions(r.Context())
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, auctions)
}

func parseAuctionFilter(r *http.Request) (*marketplace.AuctionFilter, bool, error) {
	q := r.URL.Query()
	filter := &marketplace.AuctionFilter{}
	filtered := false

	parsePrice := func(param string) (*int64, error) {
		raw := q.Get(param)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.NewValidationError("INVALID_FILTER", param+" must be an integer")
		}
		filtered = true
		return &v, nil
	}

	var err error
	if filter.MinPrice, err = parsePrice("min_price"); err != nil {
		return nil, false, err
	}
	if filter.MaxPrice, err = parsePrice("max_price"); err != nil {
		return nil, false, err
	}

	if category := q.Get("category"); category != "" {
		filter.CategoryName = category
		filtered = true
	}
	if raw := q.Get("status"); raw != "" {
		status, err := auction.ParseStatus(raw)
		if err != nil {
			return nil, false, errors.NewValidationError("INVALID_FILTER", "unknown status")
		}
		filter.Status = &status
		filtered = true
	}
	if raw := q.Get("period"); raw != "" {
		period, err := auction.ParsePeriod(raw)
		if err != nil {
			return nil, false, errors.NewValidationError("INVALID_FILTER", "unknown period")
		}
		filter.Period = &period
		filtered = true
	}

	parseDate := func(param string) (*time.Time, error) {
		raw := q.Get(param)
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.NewValidationError("INVALID_FILTER", param+" must be RFC 3339")
		}
		filtered = true
		return &t, nil
	}

	if filter.StartAfter, err = parseDate("start_after"); err != nil {
		return nil, false, err
	}
	if filter.EndBefore, err = parseDate("end_before"); err != nil {
		return nil, false, err
	}

	return filter, filtered, nil
}

func (h *Handler) searchAuctions(w http.ResponseWriter, r *http.Request) {
	auctions, err := h.marketplace.SearchAuctions(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, auctions)
}

func (h *Handler) topAuctions(w http.ResponseWriter, r *http.Request) {
	var status *auction.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := auction.ParseStatus(raw)
		if err != nil {
			writeError(w, h.logger, errors.NewValidationError("INVALID_FILTER", "unknown status"))
			return
		}
		status = &parsed
	}

	auctions, err := h.marketplace.TopAuctions(r.Context(), status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, auctions)
}

func (h *Handler) bestArtist(w http.ResponseWriter, r *http.Request) {
	profile, err := h.marketplace.BestArtist(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) getAuction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_ID", "auction id must be a UUID"))
		return
	}

	detail, err := h.marketplace.GetAuctionDetail(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) listBids(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_ID", "auction id must be a UUID"))
		return
	}

	bids, err := h.bidding.GetBidsForAuction(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

func (h *Handler) placeBid(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	if h.bidLimiter != nil {
		allowed, err := h.bidLimiter.Allow(r.Context(), "bid:"+userID.String(), h.bidLimit, h.bidWindow)
		if err != nil {
			// Redis being down should not block bidding; the database
			// remains the consistency boundary.
			h.logger.Warn("bid rate limiter unavailable", zap.Error(err))
		} else if !allowed {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: errorBody{
				Code:    "RATE_LIMITED",
				Message: "Too many bids, slow down",
			}})
			return
		}
	}

	var req placeBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_BODY", "request body must be valid JSON"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_BODY", err.Error()))
		return
	}

	auctionID, err := uuid.Parse(req.AuctionID)
	if err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_ID", "auction id must be a UUID"))
		return
	}

	receipt, err := h.bidding.PlaceBid(r.Context(), &bidding.PlaceBidRequest{
		AuctionID: auctionID,
		BidderID:  userID,
		Amount:    req.Amount,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	favorites, err := h.marketplace.ListFavorites(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_BODY", "request body must be valid JSON"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_BODY", err.Error()))
		return
	}

	auctionID, err := uuid.Parse(req.AuctionID)
	if err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_ID", "auction id must be a UUID"))
		return
	}

	result, err := h.marketplace.ToggleFavorite(r.Context(), &marketplace.FavoriteRequest{
		AuctionID: auctionID,
		UserID:    userID,
		Liked:     req.Liked,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.marketplace.ListCategories(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) auctionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_ID", "category id must be a UUID"))
		return
	}

	auctions, err := h.marketplace.AuctionsByCategory(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, auctions)
}

func (h *Handler) listRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.marketplace.ListRegions(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, regions)
}

func (h *Handler) listDistricts(w http.ResponseWriter, r *http.Request) {
	regionID, err := optionalUUIDParam(r, "region")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	districts, err := h.marketplace.ListDistricts(r.Context(), regionID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, districts)
}

func (h *Handler) listNeighborhoods(w http.ResponseWriter, r *http.Request) {
	districtID, err := optionalUUIDParam(r, "district")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	neighborhoods, err := h.marketplace.ListNeighborhoods(r.Context(), districtID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, neighborhoods)
}

func (h *Handler) listFaqs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.marketplace.ListFaqs(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, faqs)
}

func (h *Handler) listAbout(w http.ResponseWriter, r *http.Request) {
	about, err := h.marketplace.ListAbout(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, about)
}

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_BODY", "request body must be valid JSON"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, h.logger, errors.NewValidationError("INVALID_BODY", err.Error()))
		return
	}

	contact, err := h.marketplace.SubmitContact(r.Context(), &marketplace.ContactRequest{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func optionalUUIDParam(r *http.Request, param string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.NewValidationError("INVALID_ID", param+" must be a UUID")
	}
	return &id, nil
}
