package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/axlerator/axlerator-backend/internal/models"
	"github.com/axlerator/axlerator-backend/internal/storage"
	"github.com/axlerator/axlerator-backend/internal/utils"
)

const (
	// ResendCooldown is the minimum gap between issuing two OTPs for the
	// same phone+purpose.
	ResendCooldown = 60 * time.Second

	// VerificationFreshness is how long a successful verification stays
	// usable by a gated action.
	VerificationFreshness = 15 * time.Minute
)

// Domain state errors surfaced by the OTP flows. Handlers map these to HTTP
// status codes.
var (
	ErrCooldownActive       = errors.New("an OTP was sent recently, wait before requesting another")
	ErrOTPNotFound          = errors.New("no OTP found, request a new OTP")
	ErrOTPExpired           = errors.New("OTP has expired, request a new OTP")
	ErrMaxAttemptsExceeded  = errors.New("maximum attempts exceeded, request a new OTP")
	ErrStoreUnavailable     = errors.New("verification service unavailable")
	ErrDeliveryFailed       = errors.New("failed to deliver OTP")
	ErrVerificationRequired = errors.New("phone verification required")
)

// InvalidCodeError is returned on a failed match and carries the number of
// attempts the caller has left.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	if e.Remaining == 0 {
		return "invalid OTP, 0 attempts remaining"
	}
	return fmt.Sprintf("invalid OTP, %d attempts remaining", e.Remaining)
}

// VerificationResult is handed back to the client on a successful match. The
// token is an opaque bearer value for UX continuity; the authoritative check
// downstream is the persisted record state keyed by phone+purpose.
type VerificationResult struct {
	Verified  bool      `json:"verified"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Purpose   string    `json:"purpose"`
}

var smsTemplates = map[string]string{
	models.PurposeInquiry:    "Your Axlerator verification code is %s. Use it to confirm your truck inquiry. Valid for %d minutes.",
	models.PurposeBooking:    "Your Axlerator verification code is %s. Use it to confirm your booking. Valid for %d minutes.",
	models.PurposeTestDrive:  "Your Axlerator verification code is %s. Use it to schedule your test drive. Valid for %d minutes.",
	models.PurposeReportView: "Your Axlerator verification code is %s. Use it to view the inspection report. Valid for %d minutes.",
}

// OTPService runs the issuance and verification flows over an injected store
// and SMS sender.
type OTPService struct {
	store  storage.Store
	sender SMSSender
}

func NewOTPService(store storage.Store, sender SMSSender) *OTPService {
	return &OTPService{store: store, sender: sender}
}

// SendOTP issues a fresh code for phone+purpose and delivers it by SMS.
// Returns the code lifetime for the response's expiry hint.
func (s *OTPService) SendOTP(phone, purpose string) (time.Duration, error) {
	now := time.Now()
	expiryMins := utils.OTPExpiryMinutes()

	// Anti-spam cooldown: an unexpired unverified record created within the
	// last minute blocks a resend. Distinct from the global rate limiter.
	existing, err := s.store.GetLatestUnverifiedOTP(phone, purpose)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if existing != nil && !utils.IsExpired(existing.ExpiresAt, now) &&
		now.Sub(existing.CreatedAt) < ResendCooldown {
		return 0, ErrCooldownActive
	}

	code, err := utils.GenerateOTPCode(utils.OTPCodeLength())
	if err != nil {
		return 0, fmt.Errorf("failed to generate OTP: %w", err)
	}

	// Supersede any older unverified challenges for this key.
	if err := s.store.DeleteUnverifiedOTPs(phone, purpose); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	record := &models.OTP{
		Phone:       phone,
		Purpose:     purpose,
		CodeHash:    utils.HashOTPCode(code),
		ExpiresAt:   utils.ComputeExpiry(now, expiryMins),
		Attempts:    0,
		MaxAttempts: utils.OTPMaxAttempts(),
		Verified:    false,
	}

	record, err = s.store.CreateOTP(record)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	message := fmt.Sprintf(smsTemplates[purpose], code, expiryMins)
	if err := s.sender.SendSMS(phone, message); err != nil {
		if utils.IsProduction() {
			// The user can never receive this code; roll the record back.
			if delErr := s.store.DeleteOTP(record.ID); delErr != nil {
				log.Printf("Failed to roll back undeliverable OTP %d: %v", record.ID, delErr)
			}
			return 0, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
		}
		log.Printf("⚠️  SMS delivery failed in development mode, OTP for %s (%s): %s", phone, purpose, code)
	}

	return time.Duration(expiryMins) * time.Minute, nil
}

// VerifyOTP checks a candidate code against the most recent unverified
// challenge for phone+purpose.
func (s *OTPService) VerifyOTP(phone, purpose, code string) (*VerificationResult, error) {
	now := time.Now()

	record, err := s.store.GetLatestUnverifiedOTP(phone, purpose)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Expiry before attempt-count, so an expired record cannot be brute
	// forced indefinitely.
	if utils.IsExpired(record.ExpiresAt, now) {
		if err := s.store.DeleteOTP(record.ID); err != nil {
			log.Printf("Failed to delete expired OTP %d: %v", record.ID, err)
		}
		return nil, ErrOTPExpired
	}

	if record.Attempts >= record.MaxAttempts {
		if err := s.store.DeleteOTP(record.ID); err != nil {
			log.Printf("Failed to delete exhausted OTP %d: %v", record.ID, err)
		}
		return nil, ErrMaxAttemptsExceeded
	}

	if !utils.VerifyOTPCode(code, record.CodeHash) {
		record.Attempts++
		if err := s.store.UpdateOTP(record); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, &InvalidCodeError{Remaining: record.RemainingAttempts()}
	}

	record.Verified = true
	record.VerifiedAt = &now
	if err := s.store.UpdateOTP(record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	token, err := utils.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	return &VerificationResult{
		Verified:  true,
		Token:     token,
		ExpiresAt: now.Add(VerificationFreshness),
		Purpose:   purpose,
	}, nil
}

// RequireVerified checks that phone+purpose carries a verification completed
// within the freshness window. Gated actions call this instead of trusting a
// client-supplied flag.
func (s *OTPService) RequireVerified(phone, purpose string) error {
	since := time.Now().Add(-VerificationFreshness)
	_, err := s.store.GetVerifiedOTP(phone, purpose, since)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrVerificationRequired
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// ConsumeVerification invalidates the verified record after a gated action
// completes, enforcing single-use semantics per verification.
func (s *OTPService) ConsumeVerification(phone, purpose string) {
	since := time.Now().Add(-VerificationFreshness)
	record, err := s.store.GetVerifiedOTP(phone, purpose, since)
	if err != nil {
		return
	}
	if err := s.store.DeleteOTP(record.ID); err != nil {
		log.Printf("Failed to consume verification %d: %v", record.ID, err)
	}
}

// Sweep removes expired challenges and verified records past the freshness
// window. Called periodically by the cleanup job.
func (s *OTPService) Sweep() (int64, error) {
	now := time.Now()

	expired, err := s.store.DeleteExpiredOTPs(now)
	if err != nil {
		return expired, err
	}

	stale, err := s.store.DeleteStaleVerifiedOTPs(now.Add(-VerificationFreshness))
	return expired + stale, err
}
