package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPCode_LengthAndDigits(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateOTPCode(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit %q", code, r)
		}
	}
}

func TestGenerateOTPCode_InvalidLength(t *testing.T) {
	_, err := GenerateOTPCode(0)
	assert.Error(t, err)

	_, err = GenerateOTPCode(-1)
	assert.Error(t, err)
}

func TestGenerateOTPCode_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateOTPCode(6)
		require.NoError(t, err)
		seen[code] = true
	}
	// 20 identical 6-digit codes would mean the randomness source is broken
	assert.Greater(t, len(seen), 1)
}

func TestHashOTPCode_Deterministic(t *testing.T) {
	assert.Equal(t, HashOTPCode("123456"), HashOTPCode("123456"))
	assert.NotEqual(t, HashOTPCode("123456"), HashOTPCode("123457"))
	assert.Len(t, HashOTPCode("123456"), 64)
}

func TestVerifyOTPCode(t *testing.T) {
	hash := HashOTPCode("482913")

	assert.True(t, VerifyOTPCode("482913", hash))
	assert.False(t, VerifyOTPCode("482914", hash))
	assert.False(t, VerifyOTPCode("", hash))
	assert.False(t, VerifyOTPCode("482913482913", hash))
	assert.False(t, VerifyOTPCode("482913", ""))
	assert.False(t, VerifyOTPCode("482913", "not-a-hash"))
}

func TestComputeExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(10*time.Minute), ComputeExpiry(now, 10))
}

func TestIsExpired(t *testing.T) {
	expiry := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsExpired(expiry, expiry.Add(-time.Second)))
	assert.True(t, IsExpired(expiry, expiry))
	assert.True(t, IsExpired(expiry, expiry.Add(time.Second)))
}

func TestGenerateVerificationToken(t *testing.T) {
	token, err := GenerateVerificationToken()
	require.NoError(t, err)
	assert.Len(t, token, 64) // 32 bytes hex encoded

	other, err := GenerateVerificationToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestOTPConfigDefaults(t *testing.T) {
	assert.Equal(t, 6, OTPCodeLength())
	assert.Equal(t, 10, OTPExpiryMinutes())
	assert.Equal(t, 5, OTPMaxAttempts())
}

func TestOTPConfigFromEnv(t *testing.T) {
	t.Setenv("OTP_CODE_LENGTH", "4")
	t.Setenv("OTP_EXPIRY_MINUTES", "5")
	t.Setenv("OTP_MAX_ATTEMPTS", "3")

	assert.Equal(t, 4, OTPCodeLength())
	assert.Equal(t, 5, OTPExpiryMinutes())
	assert.Equal(t, 3, OTPMaxAttempts())
}

func TestGetEnvAsInt_Unparseable(t *testing.T) {
	t.Setenv("OTP_CODE_LENGTH", "six")
	assert.Equal(t, 6, OTPCodeLength())
}
