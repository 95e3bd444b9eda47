package auction

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/artbid/auction-marketplace-backend/internal/domain/values"
)

// Auction is a single lot offered for bidding within a fixed time window.
// StartingPrice is immutable once set; CurrentBid is a denormalized cache of
// the most recently accepted bid's amount (nil means no bid yet, the starting
// price is the floor). Status is derived from the time window, never
// independently authoritative, except for an administrative Cancelled
// override.
type Auction struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	LotRefNum  string    `json:"lot_ref_num"`
	LotNumTwo  string    `json:"lot_num_two"`
	PieceTitle string    `json:"piece_title"`

	StartingPrice int64         `json:"price"`
	CurrentBid    *values.Money `json:"current_bid,omitempty"`

	Dimensions  string `json:"dimensions,omitempty"`
	FramedText  string `json:"framed_text,omitempty"`
	Description string `json:"description,omitempty"`

	StartDate time.Time `json:"auction_start_date"`
	EndDate   time.Time `json:"auction_end_date"`
	Period    Period    `json:"auction_period"`
	Status    Status    `json:"status"`

	// Artist metadata (inert data, not part of lifecycle logic)
	ArtistName      string     `json:"artist_name,omitempty"`
	ArtistBirthDate *time.Time `json:"artist_birth_date,omitempty"`
	ArtistDeathDate *time.Time `json:"artist_death_date,omitempty"`
	ArtistAddress   string     `json:"artist_address,omitempty"`
	ArtistImage     string     `json:"artist_image,omitempty"`
	ArtistBio       string     `json:"artist_bio,omitempty"`
	DateProd        *time.Time `json:"date_prod,omitempty"`

	Image1 string `json:"image1,omitempty"`
	Image2 string `json:"image2,omitempty"`
	Image3 string `json:"image3,omitempty"`
	Image4 string `json:"image4,omitempty"`
	Video  string `json:"video,omitempty"`

	BodyStyle   string `json:"body_style,omitempty"`
	Medium      string `json:"medium,omitempty"`
	ColorScheme string `json:"color_scheme,omitempty"`
	Condition   string `json:"condition,omitempty"`
	Warranty    string `json:"warranty,omitempty"`

	CategoryID uuid.UUID `json:"category_id"`
	OwnerID    uuid.UUID `json:"owner_id"`

	ViewCount int64 `json:"view"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Status int

const (
	StatusUpcoming Status = iota
	StatusLive
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusUpcoming:
		return "upcoming"
	case StatusLive:
		return "live"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "upcoming":
		return StatusUpcoming, nil
	case "live":
		return StatusLive, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled":
		return StatusCancelled, nil
	default:
		return StatusUpcoming, fmt.Errorf("unknown auction status: %q", s)
	}
}

type Period int

const (
	PeriodMorning Period = iota
	PeriodAfternoon
	PeriodEvening
)

func (p Period) String() string {
	switch p {
	case PeriodMorning:
		return "morning"
	case PeriodAfternoon:
		return "afternoon"
	case PeriodEvening:
		return "evening"
	default:
		return "unknown"
	}
}

func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// ParsePeriod converts a string to a Period.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "morning":
		return PeriodMorning, nil
	case "afternoon":
		return PeriodAfternoon, nil
	case "evening":
		return PeriodEvening, nil
	default:
		return PeriodAfternoon, fmt.Errorf("unknown auction period: %q", s)
	}
}

// RemainingTime is the countdown to an auction's end, floored at zero.
type RemainingTime struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// New creates an auction with a validated time window.
func New(name string, startingPrice int64, startDate, endDate time.Time, categoryID, ownerID uuid.UUID) (*Auction, error) {
	if name == "" {
		return nil, fmt.Errorf("auction name cannot be empty")
	}
	if startingPrice <= 0 {
		return nil, fmt.Errorf("starting price must be positive")
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("auction end date must be after start date")
	}
	if categoryID == uuid.Nil {
		return nil, fmt.Errorf("category ID cannot be nil")
	}
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("owner ID cannot be nil")
	}

	now := clock.Now()
	return &Auction{
		ID:            uuid.New(),
		Name:          name,
		StartingPrice: startingPrice,
		StartDate:     startDate,
		EndDate:       endDate,
		Period:        PeriodAfternoon,
		Status:        StatusUpcoming,
		CategoryID:    categoryID,
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// DeriveStatus computes the status implied by the time window at the given
// instant without mutating the auction.
//
// The final branch is unreachable for a well-formed window (end > start);
// it exists only as a defensive fallback and reaching it means the stored
// window violates the creation invariant.
func (a *Auction) DeriveStatus(now time.Time) Status {
	switch {
	case now.After(a.EndDate):
		return StatusCompleted
	case !now.Before(a.StartDate) && !now.After(a.EndDate):
		return StatusLive
	case now.Before(a.StartDate):
		return StatusUpcoming
	default:
		return StatusCancelled
	}
}

// RefreshStatus recomputes and applies the derived status. It returns the new
// status. A Cancelled status is an administrative override and is preserved:
// lifecycle evaluation never cancels and never un-cancels an auction.
func (a *Auction) RefreshStatus(now time.Time) Status {
	if a.Status == StatusCancelled {
		return a.Status
	}
	a.Status = a.DeriveStatus(now)
	a.UpdatedAt = now
	return a.Status
}

// RecordView increments the view counter by exactly one. No deduplication:
// repeated access from the same client counts repeatedly.
func (a *Auction) RecordView() {
	a.ViewCount++
}

// AcceptsBidsAt reports whether the auction can still receive bids: its end
// must be strictly in the future.
func (a *Auction) AcceptsBidsAt(now time.Time) bool {
	return a.EndDate.After(now)
}

// EffectiveFloor is the amount a new bid must strictly exceed: the current
// bid if one exists, otherwise the starting price.
func (a *Auction) EffectiveFloor() values.Money {
	if a.CurrentBid != nil {
		return *a.CurrentBid
	}
	return values.NewMoneyFromInt(a.StartingPrice)
}

// SetCurrentBid caches the most recently accepted bid's amount.
func (a *Auction) SetCurrentBid(amount values.Money) {
	a.CurrentBid = &amount
}

// Remaining computes the time left until the auction ends, floored at zero.
func (a *Auction) Remaining(now time.Time) RemainingTime {
	left := a.EndDate.Sub(now)
	if left <= 0 {
		return RemainingTime{}
	}

	days := int(left.Hours()) / 24
	hours := int(left.Hours()) % 24
	minutes := int(left.Minutes()) % 60
	seconds := int(left.Seconds()) % 60
	return RemainingTime{Days: days, Hours: hours, Minutes: minutes, Seconds: seconds}
}
