package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/axlerator/axlerator-backend/internal/models"
	"github.com/axlerator/axlerator-backend/internal/services"
	"github.com/axlerator/axlerator-backend/internal/utils"
)

// OTPHandler exposes the send and verify endpoints
type OTPHandler struct {
	otpService *services.OTPService
}

func NewOTPHandler(otpService *services.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

type sendOTPRequest struct {
	Phone   string `json:"phone"`
	Purpose string `json:"purpose"`
}

type verifyOTPRequest struct {
	Phone   string `json:"phone"`
	OTP     string `json:"otp"`
	Purpose string `json:"purpose"`
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// SendOTP handles POST /api/otp/send
func (h *OTPHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	details := fiber.Map{}
	if req.Phone == "" {
		details["phone"] = "phone is required"
	}
	if !models.ValidPurpose(req.Purpose) {
		details["purpose"] = "purpose must be one of: inquiry, booking, test_drive, report_view"
	}
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": details,
		})
	}

	validity, err := h.otpService.SendOTP(req.Phone, req.Purpose)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCooldownActive):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please wait before requesting another OTP",
			})
		case errors.Is(err, services.ErrStoreUnavailable), errors.Is(err, services.ErrDeliveryFailed):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Unable to send OTP right now. Please try again later",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "OTP has been sent to your phone number",
		"data": fiber.Map{
			"message":   "OTP sent successfully",
			"expiresIn": fmt.Sprintf("%d minutes", int(validity.Minutes())),
		},
	})
}

// VerifyOTP handles POST /api/otp/verify
func (h *OTPHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	codeLength := utils.OTPCodeLength()
	details := fiber.Map{}
	if req.Phone == "" {
		details["phone"] = "phone is required"
	}
	if !models.ValidPurpose(req.Purpose) {
		details["purpose"] = "purpose must be one of: inquiry, booking, test_drive, report_view"
	}
	if len(req.OTP) != codeLength || !isDigits(req.OTP) {
		details["otp"] = fmt.Sprintf("otp must be exactly %d digits", codeLength)
	}
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": details,
		})
	}

	result, err := h.otpService.VerifyOTP(req.Phone, req.Purpose, req.OTP)
	if err != nil {
		var invalidCode *services.InvalidCodeError
		switch {
		case errors.As(err, &invalidCode):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":              invalidCode.Error(),
				"remaining_attempts": invalidCode.Remaining,
			})
		case errors.Is(err, services.ErrOTPNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No OTP found. Please request a new OTP",
			})
		case errors.Is(err, services.ErrOTPExpired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "OTP has expired. Please request a new OTP",
			})
		case errors.Is(err, services.ErrMaxAttemptsExceeded):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Maximum attempts exceeded. Please request a new OTP",
			})
		case errors.Is(err, services.ErrStoreUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Unable to verify OTP right now. Please try again later",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "OTP verified successfully",
		"data": fiber.Map{
			"verified":  result.Verified,
			"token":     result.Token,
			"expiresAt": result.ExpiresAt.Format(time.RFC3339),
			"purpose":   result.Purpose,
		},
	})
}
