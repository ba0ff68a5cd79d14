package entity

import (
	"fmt"
	"time"
)

// Role represents the platform role assigned to a user account
type Role string

// Platform roles
const (
	RoleParent      Role = "parent"
	RoleTeacher     Role = "teacher"
	RoleOfficeStaff Role = "office_staff"
)

// User represents a platform user (parent, teacher or office staff)
type User struct {
	ID        uint64    // Unique identifier for the user
	FirstName string    // Given name
	LastName  string    // Surname, used as the enrollment fallback for a child's last name
	Email     string    // Unique email address
	Role      Role      // Platform role
	CreatedAt time.Time // When the user was created
	UpdatedAt time.Time // When the user was last updated
}

// IsRole reports whether the user holds the given role.
// This is the only role check the core performs; permission
// enforcement beyond it lives at the API edge.
func (u *User) IsRole(role Role) bool {
	return u != nil && u.Role == role
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// IsValidRole validates if the role is one of the allowed values
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleParent, RoleTeacher, RoleOfficeStaff:
		return true
	}
	return false
}
