package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/axlerator/axlerator-backend/internal/models"
	"github.com/axlerator/axlerator-backend/internal/services"
	"github.com/axlerator/axlerator-backend/internal/storage"
)

// InquiryHandler creates buyer leads. Submitting an inquiry is gated behind
// phone verification: authority is re-derived from the persisted OTP record,
// never from a client-supplied flag or token.
type InquiryHandler struct {
	store      storage.Store
	otpService *services.OTPService
}

func NewInquiryHandler(store storage.Store, otpService *services.OTPService) *InquiryHandler {
	return &InquiryHandler{
		store:      store,
		otpService: otpService,
	}
}

// Create handles POST /api/inquiries
func (h *InquiryHandler) Create(c *fiber.Ctx) error {
	var req models.InquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	details := fiber.Map{}
	if req.Phone == "" {
		details["phone"] = "phone is required"
	}
	if req.TruckID == "" {
		details["truck_id"] = "truck_id is required"
	}
	if req.Name == "" {
		details["name"] = "name is required"
	}
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": details,
		})
	}

	if err := h.otpService.RequireVerified(req.Phone, models.PurposeInquiry); err != nil {
		if errors.Is(err, services.ErrVerificationRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Phone verification required. Please verify your phone number first",
			})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Unable to check verification right now. Please try again later",
		})
	}

	if _, err := h.store.GetTruck(req.TruckID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Truck not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load truck",
		})
	}

	inquiry := &models.Inquiry{
		TruckID: req.TruckID,
		Name:    req.Name,
		Phone:   req.Phone,
		Message: req.Message,
	}

	created, err := h.store.CreateInquiry(inquiry)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create inquiry",
		})
	}

	// Single-use: the verification is spent once the inquiry is in.
	h.otpService.ConsumeVerification(req.Phone, models.PurposeInquiry)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Inquiry submitted successfully",
		"inquiry": created,
	})
}
