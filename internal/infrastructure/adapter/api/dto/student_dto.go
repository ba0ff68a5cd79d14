package dto

import (
	"time"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
)

// EnrollStudentRequest represents the API request for enrolling a student.
// Every field is optional; the enrollment flow substitutes defaults for
// anything left blank.
type EnrollStudentRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
}

// StudentResponse represents the API representation of a student account
type StudentResponse struct {
	ID              uint64    `json:"id"`
	ParentID        uint64    `json:"parentId"`
	AdmissionNumber string    `json:"admissionNumber"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Gender          string    `json:"gender"`
	AccountStatus   string    `json:"accountStatus"`
	HasSibling      bool      `json:"hasSibling"`
	CreatedAt       time.Time `json:"createdAt"`
}

// StudentListResponse represents the API response for a parent's students
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
	Count    int               `json:"count"`
}

// ToStudentResponse maps a student entity to its API representation
func ToStudentResponse(s *entity.Student) StudentResponse {
	return StudentResponse{
		ID:              s.ID,
		ParentID:        s.ParentID,
		AdmissionNumber: s.AdmissionNumber,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		Gender:          string(s.Gender),
		AccountStatus:   string(s.AccountStatus),
		HasSibling:      s.HasSibling,
		CreatedAt:       s.CreatedAt,
	}
}

// ToStudentListResponse maps a slice of student entities to the list response
func ToStudentListResponse(students []*entity.Student) StudentListResponse {
	items := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		items = append(items, ToStudentResponse(s))
	}
	return StudentListResponse{Students: items, Count: len(items)}
}
