package account

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is a marketplace identity: a bidder, an auction owner, or a staff
// operator. Password hashing and session issuance live with the auth
// collaborator; this record only carries the stored hash.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone,omitempty"`
	Bio      string    `json:"bio,omitempty"`
	Image    string    `json:"image,omitempty"`

	AddressID *uuid.UUID `json:"address_id,omitempty"`

	HashedPassword string `json:"-"`

	IsActive bool `json:"is_active"`
	IsStaff  bool `json:"is_staff"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates an active, non-staff user.
func NewUser(username, fullName, email string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		FullName:  fullName,
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanBid reports whether this user may place bids.
func (u *User) CanBid() bool {
	return u.IsActive
}
