package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP purposes. Each purpose scopes a challenge to one gated action, so the
// same phone can hold concurrent OTPs for different actions.
const (
	PurposeInquiry    = "inquiry"
	PurposeBooking    = "booking"
	PurposeTestDrive  = "test_drive"
	PurposeReportView = "report_view"
)

// ValidPurpose reports whether the purpose tag is one of the known set.
func ValidPurpose(purpose string) bool {
	switch purpose {
	case PurposeInquiry, PurposeBooking, PurposeTestDrive, PurposeReportView:
		return true
	}
	return false
}

// OTP is one outstanding or resolved phone verification challenge.
// The plaintext code is never persisted, only its hash.
type OTP struct {
	gorm.Model
	Phone       string     `json:"phone" gorm:"not null;index:idx_otp_phone_purpose"`
	Purpose     string     `json:"purpose" gorm:"not null;index:idx_otp_phone_purpose"`
	CodeHash    string     `json:"-" gorm:"not null"`
	ExpiresAt   time.Time  `json:"expires_at" gorm:"not null"`
	Attempts    int        `json:"attempts" gorm:"default:0"`
	MaxAttempts int        `json:"max_attempts" gorm:"default:5"`
	Verified    bool       `json:"verified" gorm:"default:false"`
	VerifiedAt  *time.Time `json:"verified_at"`
}

// RemainingAttempts returns how many failed attempts are left before the
// record is invalidated.
func (o *OTP) RemainingAttempts() int {
	remaining := o.MaxAttempts - o.Attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}
