package storage

import (
	"sync"
	"time"

	"github.com/axlerator/axlerator-backend/internal/models"
)

// MemoryStore holds all data in memory. It backs the service when the
// database is unreachable, pre-seeded with the static catalog.
type MemoryStore struct {
	trucks      map[string]*models.Truck
	inquiries   map[string]*models.Inquiry
	valuations  map[string]*models.Valuation
	submissions map[string]*models.Submission
	otps        map[uint]*models.OTP

	truckMu sync.RWMutex
	leadMu  sync.RWMutex
	otpMu   sync.RWMutex

	otpCounter uint
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trucks:      make(map[string]*models.Truck),
		inquiries:   make(map[string]*models.Inquiry),
		valuations:  make(map[string]*models.Valuation),
		submissions: make(map[string]*models.Submission),
		otps:        make(map[uint]*models.OTP),
	}
}

// NewSeededMemoryStore creates an in-memory store pre-loaded with the static
// truck catalog, for running without a database.
func NewSeededMemoryStore() *MemoryStore {
	m := NewMemoryStore()
	for _, truck := range SeedTrucks() {
		_, _ = m.CreateTruck(truck)
	}
	return m
}

// Truck catalog operations

func (m *MemoryStore) CreateTruck(truck *models.Truck) (*models.Truck, error) {
	m.truckMu.Lock()
	defer m.truckMu.Unlock()

	if truck.TruckID == "" {
		_ = truck.BeforeCreate(nil)
	}
	if truck.Status == "" {
		truck.Status = models.TruckStatusAvailable
	}
	now := time.Now()
	truck.CreatedAt = now
	truck.UpdatedAt = now

	m.trucks[truck.TruckID] = truck
	return truck, nil
}

func (m *MemoryStore) GetTruck(truckID string) (*models.Truck, error) {
	m.truckMu.RLock()
	defer m.truckMu.RUnlock()

	truck, exists := m.trucks[truckID]
	if !exists {
		return nil, ErrNotFound
	}
	return truck, nil
}

func (m *MemoryStore) SearchTrucks(search *models.TruckSearch) ([]*models.Truck, error) {
	m.truckMu.RLock()
	defer m.truckMu.RUnlock()

	var results []*models.Truck
	for _, truck := range m.trucks {
		if search.Matches(truck) {
			results = append(results, truck)
		}
	}
	return results, nil
}

func (m *MemoryStore) GetCertifiedTrucks() ([]*models.Truck, error) {
	m.truckMu.RLock()
	defer m.truckMu.RUnlock()

	var results []*models.Truck
	for _, truck := range m.trucks {
		if truck.Certified && truck.Status == models.TruckStatusAvailable {
			results = append(results, truck)
		}
	}
	return results, nil
}

func (m *MemoryStore) UpdateTruck(truck *models.Truck) error {
	m.truckMu.Lock()
	defer m.truckMu.Unlock()

	if _, exists := m.trucks[truck.TruckID]; !exists {
		return ErrNotFound
	}
	truck.UpdatedAt = time.Now()
	m.trucks[truck.TruckID] = truck
	return nil
}

// Lead operations

func (m *MemoryStore) CreateInquiry(inquiry *models.Inquiry) (*models.Inquiry, error) {
	m.leadMu.Lock()
	defer m.leadMu.Unlock()

	_ = inquiry.BeforeCreate(nil)
	inquiry.CreatedAt = time.Now()
	m.inquiries[inquiry.InquiryID] = inquiry
	return inquiry, nil
}

func (m *MemoryStore) CreateValuation(valuation *models.Valuation) (*models.Valuation, error) {
	m.leadMu.Lock()
	defer m.leadMu.Unlock()

	_ = valuation.BeforeCreate(nil)
	valuation.CreatedAt = time.Now()
	m.valuations[valuation.ValuationID] = valuation
	return valuation, nil
}

func (m *MemoryStore) CreateSubmission(submission *models.Submission) (*models.Submission, error) {
	m.leadMu.Lock()
	defer m.leadMu.Unlock()

	_ = submission.BeforeCreate(nil)
	submission.CreatedAt = time.Now()
	m.submissions[submission.SubmissionID] = submission
	return submission, nil
}

func (m *MemoryStore) GetSubmissionsByStatus(status string) ([]*models.Submission, error) {
	m.leadMu.RLock()
	defer m.leadMu.RUnlock()

	var results []*models.Submission
	for _, submission := range m.submissions {
		if submission.Status == status {
			results = append(results, submission)
		}
	}
	return results, nil
}

// OTP operations

func (m *MemoryStore) CreateOTP(otp *models.OTP) (*models.OTP, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	m.otpCounter++
	otp.ID = m.otpCounter
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}
	otp.UpdatedAt = otp.CreatedAt

	m.otps[otp.ID] = otp
	return otp, nil
}

func (m *MemoryStore) GetLatestUnverifiedOTP(phone, purpose string) (*models.OTP, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	var latest *models.OTP
	for _, otp := range m.otps {
		if otp.Phone != phone || otp.Purpose != purpose || otp.Verified {
			continue
		}
		if latest == nil || otp.CreatedAt.After(latest.CreatedAt) {
			latest = otp
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (m *MemoryStore) GetVerifiedOTP(phone, purpose string, since time.Time) (*models.OTP, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	var latest *models.OTP
	for _, otp := range m.otps {
		if otp.Phone != phone || otp.Purpose != purpose || !otp.Verified {
			continue
		}
		if otp.VerifiedAt == nil || otp.VerifiedAt.Before(since) {
			continue
		}
		if latest == nil || otp.VerifiedAt.After(*latest.VerifiedAt) {
			latest = otp
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (m *MemoryStore) UpdateOTP(otp *models.OTP) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	if _, exists := m.otps[otp.ID]; !exists {
		return ErrNotFound
	}
	otp.UpdatedAt = time.Now()
	m.otps[otp.ID] = otp
	return nil
}

func (m *MemoryStore) DeleteOTP(id uint) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	delete(m.otps, id)
	return nil
}

func (m *MemoryStore) DeleteUnverifiedOTPs(phone, purpose string) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	for id, otp := range m.otps {
		if otp.Phone == phone && otp.Purpose == purpose && !otp.Verified {
			delete(m.otps, id)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteExpiredOTPs(now time.Time) (int64, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	var removed int64
	for id, otp := range m.otps {
		if !otp.Verified && now.After(otp.ExpiresAt) {
			delete(m.otps, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) DeleteStaleVerifiedOTPs(cutoff time.Time) (int64, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	var removed int64
	for id, otp := range m.otps {
		if otp.Verified && otp.VerifiedAt != nil && otp.VerifiedAt.Before(cutoff) {
			delete(m.otps, id)
			removed++
		}
	}
	return removed, nil
}
