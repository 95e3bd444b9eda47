package auction

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks an auction as currently liked by a user. The pair
// (AuctionID, UserID) is unique; unliking deletes the row instead of storing
// a false flag, so the table stays a sparse "currently liked" set rather
// than a like/unlike history.
type Favorite struct {
	ID        uuid.UUID `json:"id"`
	AuctionID uuid.UUID `json:"auction"`
	UserID    uuid.UUID `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFavorite records a like for the given auction and user.
func NewFavorite(auctionID, userID uuid.UUID) *Favorite {
	return &Favorite{
		ID:        uuid.New(),
		AuctionID: auctionID,
		UserID:    userID,
		CreatedAt: clock.Now(),
	}
}
