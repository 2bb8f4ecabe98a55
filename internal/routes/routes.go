package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/axlerator/axlerator-backend/internal/handlers"
	"github.com/axlerator/axlerator-backend/internal/middleware"
	"github.com/axlerator/axlerator-backend/internal/services"
	"github.com/axlerator/axlerator-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, otpService *services.OTPService, limiter *middleware.RateLimiter) {
	truckHandler := handlers.NewTruckHandler(store, otpService)
	inquiryHandler := handlers.NewInquiryHandler(store, otpService)
	valuationHandler := handlers.NewValuationHandler(store)
	otpHandler := handlers.NewOTPHandler(otpService)

	// Rate limiter gates every API route ahead of the handlers; the OTP
	// issuance cooldown is a second, purpose-specific throttle on top.
	api := app.Group("/api", limiter.Handler())

	trucks := api.Group("/trucks")
	trucks.Get("/", truckHandler.List)
	trucks.Get("/featured", truckHandler.Featured)
	trucks.Post("/submit", truckHandler.Submit)
	trucks.Get("/:id", truckHandler.Get)
	trucks.Get("/:id/report", truckHandler.GetReport)

	api.Post("/inquiries", inquiryHandler.Create)
	api.Post("/valuations", valuationHandler.Create)

	otp := api.Group("/otp")
	otp.Post("/send", otpHandler.SendOTP)
	otp.Post("/verify", otpHandler.VerifyOTP)
}
