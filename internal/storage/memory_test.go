package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axlerator/axlerator-backend/internal/models"
)

func TestSeededMemoryStore_Catalog(t *testing.T) {
	m := NewSeededMemoryStore()

	trucks, err := m.SearchTrucks(&models.TruckSearch{})
	require.NoError(t, err)
	assert.Len(t, trucks, len(SeedTrucks()))

	certified, err := m.GetCertifiedTrucks()
	require.NoError(t, err)
	for _, truck := range certified {
		assert.True(t, truck.Certified)
	}
	assert.Less(t, len(certified), len(trucks))
}

func TestSearchTrucks_Filters(t *testing.T) {
	m := NewSeededMemoryStore()

	byMake, err := m.SearchTrucks(&models.TruckSearch{Make: "tata"})
	require.NoError(t, err)
	require.NotEmpty(t, byMake)
	for _, truck := range byMake {
		assert.Equal(t, "Tata", truck.Make)
	}

	byBody, err := m.SearchTrucks(&models.TruckSearch{BodyType: "tipper"})
	require.NoError(t, err)
	require.NotEmpty(t, byBody)
	for _, truck := range byBody {
		assert.Equal(t, "tipper", truck.BodyType)
	}

	byPrice, err := m.SearchTrucks(&models.TruckSearch{MinPrice: 2000000, MaxPrice: 3000000})
	require.NoError(t, err)
	for _, truck := range byPrice {
		assert.GreaterOrEqual(t, truck.Price, 2000000.0)
		assert.LessOrEqual(t, truck.Price, 3000000.0)
	}

	byQuery, err := m.SearchTrucks(&models.TruckSearch{Query: "pune"})
	require.NoError(t, err)
	require.NotEmpty(t, byQuery)
	for _, truck := range byQuery {
		assert.Equal(t, "Pune", truck.Location)
	}

	none, err := m.SearchTrucks(&models.TruckSearch{Make: "Volvo"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetTruck(t *testing.T) {
	m := NewSeededMemoryStore()

	truck, err := m.GetTruck("AX-SEED-001")
	require.NoError(t, err)
	assert.Equal(t, "Tata", truck.Make)

	_, err = m.GetTruck("AX-MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateLeads(t *testing.T) {
	m := NewMemoryStore()

	inquiry, err := m.CreateInquiry(&models.Inquiry{TruckID: "AX-1", Phone: "9999999999", Name: "Ravi"})
	require.NoError(t, err)
	assert.NotEmpty(t, inquiry.InquiryID)
	assert.Equal(t, models.InquiryStatusNew, inquiry.Status)

	valuation, err := m.CreateValuation(&models.Valuation{Phone: "9999999999", Make: "Tata", Year: 2020})
	require.NoError(t, err)
	assert.NotEmpty(t, valuation.ValuationID)

	submission, err := m.CreateSubmission(&models.Submission{SellerPhone: "9999999999", Make: "Tata"})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending, submission.Status)

	pending, err := m.GetSubmissionsByStatus(models.SubmissionStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestGetLatestUnverifiedOTP_PicksMostRecent(t *testing.T) {
	m := NewMemoryStore()

	older := &models.OTP{Phone: "9999999999", Purpose: "inquiry", CodeHash: "a", ExpiresAt: time.Now().Add(time.Minute)}
	older.CreatedAt = time.Now().Add(-2 * time.Minute)
	newer := &models.OTP{Phone: "9999999999", Purpose: "inquiry", CodeHash: "b", ExpiresAt: time.Now().Add(time.Minute)}
	newer.CreatedAt = time.Now()

	_, err := m.CreateOTP(older)
	require.NoError(t, err)
	_, err = m.CreateOTP(newer)
	require.NoError(t, err)

	latest, err := m.GetLatestUnverifiedOTP("9999999999", "inquiry")
	require.NoError(t, err)
	assert.Equal(t, "b", latest.CodeHash)
}

func TestDeleteUnverifiedOTPs_LeavesVerified(t *testing.T) {
	m := NewMemoryStore()

	now := time.Now()
	unverified := &models.OTP{Phone: "9999999999", Purpose: "inquiry", CodeHash: "a", ExpiresAt: now.Add(time.Minute)}
	verified := &models.OTP{Phone: "9999999999", Purpose: "inquiry", CodeHash: "b", ExpiresAt: now.Add(time.Minute), Verified: true, VerifiedAt: &now}

	_, err := m.CreateOTP(unverified)
	require.NoError(t, err)
	_, err = m.CreateOTP(verified)
	require.NoError(t, err)

	require.NoError(t, m.DeleteUnverifiedOTPs("9999999999", "inquiry"))

	_, err = m.GetLatestUnverifiedOTP("9999999999", "inquiry")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := m.GetVerifiedOTP("9999999999", "inquiry", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "b", got.CodeHash)
}

func TestDeleteExpiredAndStaleOTPs(t *testing.T) {
	m := NewMemoryStore()

	now := time.Now()
	stale := now.Add(-30 * time.Minute)

	expired := &models.OTP{Phone: "1", Purpose: "inquiry", CodeHash: "a", ExpiresAt: now.Add(-time.Minute)}
	live := &models.OTP{Phone: "2", Purpose: "inquiry", CodeHash: "b", ExpiresAt: now.Add(time.Minute)}
	staleVerified := &models.OTP{Phone: "3", Purpose: "inquiry", CodeHash: "c", ExpiresAt: now, Verified: true, VerifiedAt: &stale}

	for _, otp := range []*models.OTP{expired, live, staleVerified} {
		_, err := m.CreateOTP(otp)
		require.NoError(t, err)
	}

	removed, err := m.DeleteExpiredOTPs(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = m.DeleteStaleVerifiedOTPs(now.Add(-15 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = m.GetLatestUnverifiedOTP("2", "inquiry")
	assert.NoError(t, err)
}
