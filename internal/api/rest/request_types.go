package rest

// placeBidRequest is the bid submission payload. The amount stays a raw
// string so malformed values reach the service's invalid-amount rejection
// instead of failing JSON decoding.
type placeBidRequest struct {
	AuctionID string `json:"auction" validate:"required,uuid4"`
	Amount    string `json:"bid_amount" validate:"required"`
}

type favoriteRequest struct {
	AuctionID string `json:"auction" validate:"required,uuid4"`
	Liked     bool   `json:"liked"`
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=4000"`
}
