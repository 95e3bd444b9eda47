// Package content holds the ancillary site content: FAQ entries, the about
// page, and submitted contact messages.
package content

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Faq struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
}

type AboutImage struct {
	ID    uuid.UUID `json:"id"`
	Image string    `json:"image"`
}

type About struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Images      []AboutImage `json:"image,omitempty"`
}

type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContact creates a contact message submission.
func NewContact(name, email, message string) (*Contact, error) {
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if message == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}

	return &Contact{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now(),
	}, nil
}
