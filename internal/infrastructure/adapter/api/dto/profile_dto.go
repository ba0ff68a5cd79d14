package dto

import (
	"time"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
)

// ProfileResponse represents the API response for a user's profile
type ProfileResponse struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"userId"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Occupation string    `json:"occupation"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// StudentPayload is the optional nested enrollment carried by a profile
// update. All fields are optional; the enrollment flow fills in defaults.
type StudentPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
}

// ProfileUpdateRequest represents a partial profile update. Pointer fields
// distinguish "not sent" from "set to empty". When createStudent is true a
// student account is enrolled in the same atomic unit.
type ProfileUpdateRequest struct {
	Phone         *string         `json:"phone"`
	Address       *string         `json:"address"`
	City          *string         `json:"city"`
	Occupation    *string         `json:"occupation"`
	CreateStudent bool            `json:"createStudent"`
	Student       *StudentPayload `json:"student"`
}

// ProfileUpdateResponse reports what the orchestrated update did
type ProfileUpdateResponse struct {
	Message string           `json:"message"`
	Profile ProfileResponse  `json:"profile"`
	Student *StudentResponse `json:"student,omitempty"`
}

// ToProfileResponse maps a profile entity to its API representation
func ToProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		Phone:      p.Phone,
		Address:    p.Address,
		City:       p.City,
		Occupation: p.Occupation,
		UpdatedAt:  p.UpdatedAt,
	}
}
