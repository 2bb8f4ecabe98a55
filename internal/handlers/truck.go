package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/axlerator/axlerator-backend/internal/models"
	"github.com/axlerator/axlerator-backend/internal/services"
	"github.com/axlerator/axlerator-backend/internal/storage"
)

// TruckHandler serves the truck catalog and seller submissions
type TruckHandler struct {
	store      storage.Store
	otpService *services.OTPService
}

func NewTruckHandler(store storage.Store, otpService *services.OTPService) *TruckHandler {
	return &TruckHandler{
		store:      store,
		otpService: otpService,
	}
}

// List handles GET /api/trucks with query-param filters
func (h *TruckHandler) List(c *fiber.Ctx) error {
	search := &models.TruckSearch{
		Make:          c.Query("make"),
		BodyType:      c.Query("body_type"),
		FuelType:      c.Query("fuel_type"),
		Query:         c.Query("q"),
		CertifiedOnly: c.Query("certified") == "true",
	}
	search.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	search.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)
	search.MinYear, _ = strconv.Atoi(c.Query("min_year"))
	search.MaxYear, _ = strconv.Atoi(c.Query("max_year"))

	trucks, err := h.store.SearchTrucks(search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search trucks",
		})
	}

	return c.JSON(fiber.Map{
		"count":  len(trucks),
		"trucks": trucks,
	})
}

// Featured handles GET /api/trucks/featured
func (h *TruckHandler) Featured(c *fiber.Ctx) error {
	trucks, err := h.store.GetCertifiedTrucks()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load certified trucks",
		})
	}

	return c.JSON(fiber.Map{
		"count":  len(trucks),
		"trucks": trucks,
	})
}

// Get handles GET /api/trucks/:id
func (h *TruckHandler) Get(c *fiber.Ctx) error {
	truck, err := h.store.GetTruck(c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Truck not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load truck",
		})
	}

	return c.JSON(truck)
}

// GetReport handles GET /api/trucks/:id/report. The detailed inspection
// report is only served to a phone that verified an OTP for the report_view
// purpose within the freshness window.
func (h *TruckHandler) GetReport(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": fiber.Map{"phone": "phone is required"},
		})
	}

	truck, err := h.store.GetTruck(c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Truck not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load truck",
		})
	}

	if err := h.otpService.RequireVerified(phone, models.PurposeReportView); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Phone verification required to view the inspection report",
		})
	}

	h.otpService.ConsumeVerification(phone, models.PurposeReportView)

	return c.JSON(fiber.Map{
		"truck_id":         truck.TruckID,
		"certified":        truck.Certified,
		"inspection_score": truck.InspectionScore,
		"report":           truck.ReportSummary,
	})
}

// Submit handles POST /api/trucks/submit, a seller offering a truck for sale
func (h *TruckHandler) Submit(c *fiber.Ctx) error {
	var submission models.Submission
	if err := c.BodyParser(&submission); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	details := fiber.Map{}
	if submission.SellerPhone == "" {
		details["seller_phone"] = "seller_phone is required"
	}
	if submission.Make == "" {
		details["make"] = "make is required"
	}
	if submission.TruckModel == "" {
		details["model"] = "model is required"
	}
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": details,
		})
	}

	created, err := h.store.CreateSubmission(&submission)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit truck",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Truck submitted for review",
		"submission": created,
	})
}
