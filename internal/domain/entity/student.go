package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/brightpath-edu/school-ledger/internal/domain/error"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Gender represents a student's registered gender
type Gender string

// Gender values
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// AccountStatus represents the activation state of a student account
type AccountStatus string

// Account status values. New student accounts stay inactive until the
// administrative verification workflow activates them.
const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "in-active"
)

// Student represents a student record owned by exactly one parent.
// The admission number is immutable once assigned and globally unique.
type Student struct {
	ID                uint64        // Unique identifier for the student
	ParentID          uint64        // ID of the owning parent user
	AdmissionNumber   string        // Unique Luhn-checksummed identifier
	FirstName         string        // Given name (normalized)
	LastName          string        // Surname (normalized)
	Gender            Gender        // One of male/female/other
	AccountStatus     AccountStatus // Defaults to in-active until verified
	HasSibling        bool          // Snapshot: parent owned other students at creation
	VerifiedByID      *uint64       // Staff user who verified the account (nullable)
	VerificationDate  *time.Time    // When the account was verified (nullable)
	VerificationNotes string        // Free-form notes from verification
	FullyActivated    bool          // Set by the verification workflow
	CreatedAt         time.Time     // When the record was created
	UpdatedAt         time.Time     // When the record was last updated
}

var titleCaser = cases.Title(language.Und)

// NewStudent creates a student record with normalized names and a validated gender.
// The admission number is supplied by the caller (see usecase/admission) and the
// sibling flag is a snapshot taken by the enrollment service before insert.
func NewStudent(
	parentID uint64,
	admissionNumber string,
	firstName string,
	lastName string,
	gender Gender,
	hasSibling bool,
	timeProvider coreport.TimeProvider,
) (*Student, error) {
	if parentID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if admissionNumber == "" {
		return nil, errs.ErrInvalidAdmissionNumber
	}
	if !IsValidGender(string(gender)) {
		ve := errs.NewValidationError()
		ve.Add("gender", fmt.Sprintf("invalid gender value, allowed: %s", strings.Join(AllowedGenders(), ", ")))
		return nil, ve
	}

	now := timeProvider.Now()
	return &Student{
		ParentID:        parentID,
		AdmissionNumber: admissionNumber,
		FirstName:       NormalizeName(firstName),
		LastName:        NormalizeName(lastName),
		Gender:          gender,
		AccountStatus:   StatusInactive,
		HasSibling:      hasSibling,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return fmt.Sprintf("%s %s", s.FirstName, s.LastName)
}

// NormalizeName trims surrounding whitespace and title-cases a name part
func NormalizeName(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

// IsValidGender validates if the gender is one of the allowed values
func IsValidGender(gender string) bool {
	switch Gender(gender) {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// AllowedGenders lists the accepted gender values in stable order
func AllowedGenders() []string {
	return []string{string(GenderFemale), string(GenderMale), string(GenderOther)}
}
