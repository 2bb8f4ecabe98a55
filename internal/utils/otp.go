package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// Defaults for the OTP configuration, overridable via environment.
const (
	DefaultOTPLength      = 6
	DefaultOTPExpiryMins  = 10
	DefaultOTPMaxAttempts = 5
)

// OTPCodeLength returns the configured number of digits in a code.
func OTPCodeLength() int {
	return GetEnvAsInt("OTP_CODE_LENGTH", DefaultOTPLength)
}

// OTPExpiryMinutes returns the configured code lifetime in minutes.
func OTPExpiryMinutes() int {
	return GetEnvAsInt("OTP_EXPIRY_MINUTES", DefaultOTPExpiryMins)
}

// OTPMaxAttempts returns the configured verification attempt ceiling.
func OTPMaxAttempts() int {
	return GetEnvAsInt("OTP_MAX_ATTEMPTS", DefaultOTPMaxAttempts)
}

// GenerateOTPCode generates a cryptographically secure numeric code of the
// given length. Each digit is drawn independently and uniformly from 0-9.
func GenerateOTPCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid OTP length %d", length)
	}

	digits := make([]byte, length)
	b := make([]byte, 1)
	for i := 0; i < length; i++ {
		for {
			if _, err := rand.Read(b); err != nil {
				return "", fmt.Errorf("failed to read random bytes: %w", err)
			}
			// Reject bytes above 249 so the mod-10 reduction stays uniform.
			if b[0] < 250 {
				break
			}
		}
		digits[i] = '0' + (b[0] % 10)
	}

	return string(digits), nil
}

// HashOTPCode returns the SHA-256 hex digest of a code. Codes are short-lived
// and scoped per phone+purpose, so no salt is used.
func HashOTPCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// VerifyOTPCode checks a candidate code against a stored hash in constant
// time. Both sides are reduced to fixed-length digests before comparing so a
// length mismatch cannot leak through an early exit.
func VerifyOTPCode(code, storedHash string) bool {
	candidate := sha256.Sum256([]byte(HashOTPCode(code)))
	stored := sha256.Sum256([]byte(storedHash))
	return subtle.ConstantTimeCompare(candidate[:], stored[:]) == 1
}

// ComputeExpiry returns now shifted forward by the given number of minutes.
func ComputeExpiry(now time.Time, minutes int) time.Time {
	return now.Add(time.Duration(minutes) * time.Minute)
}

// IsExpired reports whether the expiry timestamp has passed.
func IsExpired(expiresAt, now time.Time) bool {
	return !now.Before(expiresAt)
}

// GenerateVerificationToken returns a 32-byte random token, hex encoded. The
// token is an opaque bearer value handed back after verification; the
// authoritative check downstream is the persisted record state.
func GenerateVerificationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
