package storage

import (
	"errors"
	"time"

	"github.com/axlerator/axlerator-backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. Both store
// implementations return it so callers never need to know which backend is
// active.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for storage operations
type Store interface {
	// Truck catalog operations
	CreateTruck(truck *models.Truck) (*models.Truck, error)
	GetTruck(truckID string) (*models.Truck, error)
	SearchTrucks(search *models.TruckSearch) ([]*models.Truck, error)
	GetCertifiedTrucks() ([]*models.Truck, error)
	UpdateTruck(truck *models.Truck) error

	// Lead operations
	CreateInquiry(inquiry *models.Inquiry) (*models.Inquiry, error)
	CreateValuation(valuation *models.Valuation) (*models.Valuation, error)
	CreateSubmission(submission *models.Submission) (*models.Submission, error)
	GetSubmissionsByStatus(status string) ([]*models.Submission, error)

	// OTP operations
	CreateOTP(otp *models.OTP) (*models.OTP, error)
	GetLatestUnverifiedOTP(phone, purpose string) (*models.OTP, error)
	GetVerifiedOTP(phone, purpose string, since time.Time) (*models.OTP, error)
	UpdateOTP(otp *models.OTP) error
	DeleteOTP(id uint) error
	DeleteUnverifiedOTPs(phone, purpose string) error
	DeleteExpiredOTPs(now time.Time) (int64, error)
	DeleteStaleVerifiedOTPs(cutoff time.Time) (int64, error)
}
