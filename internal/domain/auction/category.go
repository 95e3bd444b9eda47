package auction

import "github.com/google/uuid"

// Category groups auctions for browsing and filtering.
type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image,omitempty"`
}
