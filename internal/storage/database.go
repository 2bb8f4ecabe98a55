package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/axlerator/axlerator-backend/internal/models"
)

// DatabaseStore persists everything in PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Truck catalog operations

func (d *DatabaseStore) CreateTruck(truck *models.Truck) (*models.Truck, error) {
	if err := d.db.Create(truck).Error; err != nil {
		return nil, err
	}
	return truck, nil
}

func (d *DatabaseStore) GetTruck(truckID string) (*models.Truck, error) {
	var truck models.Truck
	err := d.db.Where("truck_id = ?", truckID).First(&truck).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &truck, nil
}

func (d *DatabaseStore) SearchTrucks(search *models.TruckSearch) ([]*models.Truck, error) {
	query := d.db.Where("status = ?", models.TruckStatusAvailable)

	if search.Make != "" {
		query = query.Where("LOWER(make) = LOWER(?)", search.Make)
	}
	if search.BodyType != "" {
		query = query.Where("LOWER(body_type) = LOWER(?)", search.BodyType)
	}
	if search.FuelType != "" {
		query = query.Where("LOWER(fuel_type) = LOWER(?)", search.FuelType)
	}
	if search.MinPrice > 0 {
		query = query.Where("price >= ?", search.MinPrice)
	}
	if search.MaxPrice > 0 {
		query = query.Where("price <= ?", search.MaxPrice)
	}
	if search.MinYear > 0 {
		query = query.Where("year >= ?", search.MinYear)
	}
	if search.MaxYear > 0 {
		query = query.Where("year <= ?", search.MaxYear)
	}
	if search.CertifiedOnly {
		query = query.Where("certified = ?", true)
	}
	if search.Query != "" {
		like := "%" + search.Query + "%"
		query = query.Where("make ILIKE ? OR truck_model ILIKE ? OR location ILIKE ?", like, like, like)
	}

	var trucks []*models.Truck
	if err := query.Order("created_at DESC").Find(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

func (d *DatabaseStore) GetCertifiedTrucks() ([]*models.Truck, error) {
	var trucks []*models.Truck
	err := d.db.Where("certified = ? AND status = ?", true, models.TruckStatusAvailable).
		Order("inspection_score DESC").Find(&trucks).Error
	if err != nil {
		return nil, err
	}
	return trucks, nil
}

func (d *DatabaseStore) UpdateTruck(truck *models.Truck) error {
	return d.db.Save(truck).Error
}

// Lead operations

func (d *DatabaseStore) CreateInquiry(inquiry *models.Inquiry) (*models.Inquiry, error) {
	if err := d.db.Create(inquiry).Error; err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (d *DatabaseStore) CreateValuation(valuation *models.Valuation) (*models.Valuation, error) {
	if err := d.db.Create(valuation).Error; err != nil {
		return nil, err
	}
	return valuation, nil
}

func (d *DatabaseStore) CreateSubmission(submission *models.Submission) (*models.Submission, error) {
	if err := d.db.Create(submission).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

func (d *DatabaseStore) GetSubmissionsByStatus(status string) ([]*models.Submission, error) {
	var submissions []*models.Submission
	if err := d.db.Where("status = ?", status).Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// OTP operations

func (d *DatabaseStore) CreateOTP(otp *models.OTP) (*models.OTP, error) {
	if err := d.db.Create(otp).Error; err != nil {
		return nil, err
	}
	return otp, nil
}

func (d *DatabaseStore) GetLatestUnverifiedOTP(phone, purpose string) (*models.OTP, error) {
	var otp models.OTP
	err := d.db.Where("phone = ? AND purpose = ? AND verified = ?", phone, purpose, false).
		Order("created_at DESC").First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (d *DatabaseStore) GetVerifiedOTP(phone, purpose string, since time.Time) (*models.OTP, error) {
	var otp models.OTP
	err := d.db.Where("phone = ? AND purpose = ? AND verified = ? AND verified_at >= ?",
		phone, purpose, true, since).
		Order("verified_at DESC").First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (d *DatabaseStore) UpdateOTP(otp *models.OTP) error {
	return d.db.Save(otp).Error
}

func (d *DatabaseStore) DeleteOTP(id uint) error {
	// Unscoped for a hard delete; soft-deleted challenges must not linger.
	return d.db.Unscoped().Delete(&models.OTP{}, id).Error
}

func (d *DatabaseStore) DeleteUnverifiedOTPs(phone, purpose string) error {
	return d.db.Unscoped().
		Where("phone = ? AND purpose = ? AND verified = ?", phone, purpose, false).
		Delete(&models.OTP{}).Error
}

func (d *DatabaseStore) DeleteExpiredOTPs(now time.Time) (int64, error) {
	result := d.db.Unscoped().
		Where("verified = ? AND expires_at < ?", false, now).
		Delete(&models.OTP{})
	return result.RowsAffected, result.Error
}

func (d *DatabaseStore) DeleteStaleVerifiedOTPs(cutoff time.Time) (int64, error) {
	result := d.db.Unscoped().
		Where("verified = ? AND verified_at < ?", true, cutoff).
		Delete(&models.OTP{})
	return result.RowsAffected, result.Error
}
