package models

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

// Submission statuses
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusReviewed = "reviewed"
	SubmissionStatusListed   = "listed"
	SubmissionStatusRejected = "rejected"
)

// Submission is a seller's truck offered for sale, awaiting review before it
// becomes a catalog listing.
type Submission struct {
	gorm.Model
	SubmissionID string  `json:"submission_id" gorm:"uniqueIndex"`
	SellerName   string  `json:"seller_name"`
	SellerPhone  string  `json:"seller_phone" gorm:"index;not null"`
	Make         string  `json:"make"`
	TruckModel   string  `json:"model" gorm:"column:truck_model"`
	Year         int     `json:"year"`
	Kilometers   int     `json:"kilometers"`
	BodyType     string  `json:"body_type"`
	FuelType     string  `json:"fuel_type"`
	Location     string  `json:"location"`
	AskingPrice  float64 `json:"asking_price"`
	Status       string  `json:"status" gorm:"default:'pending'"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.SubmissionID == "" {
		s.SubmissionID = "SUB-" + uuid.New().String()
	}
	if s.Status == "" {
		s.Status = SubmissionStatusPending
	}
	return nil
}
