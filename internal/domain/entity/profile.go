package entity

import (
	"time"
)

// Profile holds the mutable contact details attached one-to-one to a user.
// It is the target of the profile update flow that can also trigger
// a nested student enrollment.
type Profile struct {
	ID         uint64    // Unique identifier for the profile
	UserID     uint64    // Owning user
	Phone      string    // Contact phone number
	Address    string    // Street address
	City       string    // City of residence
	Occupation string    // Parent occupation
	CreatedAt  time.Time // When the profile was created
	UpdatedAt  time.Time // When the profile was last updated

	// User is populated by repositories when the owner is needed
	User *User
}

// ProfileChanges carries a partial update; nil fields are left untouched
type ProfileChanges struct {
	Phone      *string
	Address    *string
	City       *string
	Occupation *string
}

// Apply copies the non-nil change fields onto the profile
func (p *Profile) Apply(changes ProfileChanges) {
	if changes.Phone != nil {
		p.Phone = *changes.Phone
	}
	if changes.Address != nil {
		p.Address = *changes.Address
	}
	if changes.City != nil {
		p.City = *changes.City
	}
	if changes.Occupation != nil {
		p.Occupation = *changes.Occupation
	}
}
