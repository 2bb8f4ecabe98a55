package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/axlerator/axlerator-backend/internal/models"
	"github.com/axlerator/axlerator-backend/internal/storage"
)

// ValuationHandler captures seller valuation leads
type ValuationHandler struct {
	store storage.Store
}

func NewValuationHandler(store storage.Store) *ValuationHandler {
	return &ValuationHandler{store: store}
}

// Create handles POST /api/valuations
func (h *ValuationHandler) Create(c *fiber.Ctx) error {
	var valuation models.Valuation
	if err := c.BodyParser(&valuation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	details := fiber.Map{}
	if valuation.Phone == "" {
		details["phone"] = "phone is required"
	}
	if valuation.Make == "" {
		details["make"] = "make is required"
	}
	if valuation.Year == 0 {
		details["year"] = "year is required"
	}
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": details,
		})
	}

	created, err := h.store.CreateValuation(&valuation)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create valuation request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Valuation request received. Our team will contact you shortly",
		"valuation": created,
	})
}
