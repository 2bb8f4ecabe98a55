package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axlerator/axlerator-backend/internal/services"
	"github.com/axlerator/axlerator-backend/internal/storage"
)

var codePattern = regexp.MustCompile(`\d{6}`)

type recordingSender struct {
	messages []string
	fail     bool
}

func (r *recordingSender) SendSMS(to, message string) error {
	if r.fail {
		return errors.New("provider rejected message")
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *recordingSender) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.messages)
	code := codePattern.FindString(r.messages[len(r.messages)-1])
	require.NotEmpty(t, code)
	return code
}

func newTestApp() (*fiber.App, *storage.MemoryStore, *recordingSender) {
	store := storage.NewSeededMemoryStore()
	sender := &recordingSender{}
	otpService := services.NewOTPService(store, sender)

	app := fiber.New()
	otpHandler := NewOTPHandler(otpService)
	truckHandler := NewTruckHandler(store, otpService)
	inquiryHandler := NewInquiryHandler(store, otpService)

	app.Post("/api/otp/send", otpHandler.SendOTP)
	app.Post("/api/otp/verify", otpHandler.VerifyOTP)
	app.Post("/api/inquiries", inquiryHandler.Create)
	app.Get("/api/trucks/:id/report", truckHandler.GetReport)

	return app, store, sender
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestSendOTP_Endpoint(t *testing.T) {
	app, _, sender := newTestApp()

	status, body := postJSON(t, app, "/api/otp/send", fiber.Map{
		"phone":   "9999999999",
		"purpose": "inquiry",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OTP has been sent to your phone number", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "OTP sent successfully", data["message"])
	assert.Equal(t, "10 minutes", data["expiresIn"])

	// The code travels by SMS, never in the response body.
	require.Len(t, sender.messages, 1)
	assert.NotContains(t, body, "otp")
}

func TestSendOTP_InvalidInput(t *testing.T) {
	app, _, _ := newTestApp()

	status, body := postJSON(t, app, "/api/otp/send", fiber.Map{
		"phone":   "",
		"purpose": "password_reset",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	details := body["details"].(map[string]any)
	assert.Contains(t, details, "phone")
	assert.Contains(t, details, "purpose")
}

func TestSendOTP_Cooldown(t *testing.T) {
	app, _, _ := newTestApp()

	payload := fiber.Map{"phone": "9999999999", "purpose": "inquiry"}

	status, _ := postJSON(t, app, "/api/otp/send", payload)
	require.Equal(t, fiber.StatusOK, status)

	status, body := postJSON(t, app, "/api/otp/send", payload)
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Contains(t, body["error"], "wait")
}

func TestVerifyOTP_Endpoint(t *testing.T) {
	app, _, sender := newTestApp()

	status, _ := postJSON(t, app, "/api/otp/send", fiber.Map{
		"phone":   "9999999999",
		"purpose": "inquiry",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, body := postJSON(t, app, "/api/otp/verify", fiber.Map{
		"phone":   "9999999999",
		"otp":     sender.lastCode(t),
		"purpose": "inquiry",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OTP verified successfully", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["verified"])
	assert.Len(t, data["token"], 64)
	assert.Equal(t, "inquiry", data["purpose"])
	assert.NotEmpty(t, data["expiresAt"])
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	app, _, sender := newTestApp()

	status, _ := postJSON(t, app, "/api/otp/send", fiber.Map{
		"phone":   "9999999999",
		"purpose": "inquiry",
	})
	require.Equal(t, fiber.StatusOK, status)

	wrong := "000000"
	if sender.lastCode(t) == wrong {
		wrong = "000001"
	}

	status, body := postJSON(t, app, "/api/otp/verify", fiber.Map{
		"phone":   "9999999999",
		"otp":     wrong,
		"purpose": "inquiry",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, float64(4), body["remaining_attempts"])
}

func TestVerifyOTP_NoRecord(t *testing.T) {
	app, _, _ := newTestApp()

	status, _ := postJSON(t, app, "/api/otp/verify", fiber.Map{
		"phone":   "9999999999",
		"otp":     "123456",
		"purpose": "inquiry",
	})

	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestVerifyOTP_ShapeValidation(t *testing.T) {
	app, _, _ := newTestApp()

	status, body := postJSON(t, app, "/api/otp/verify", fiber.Map{
		"phone":   "9999999999",
		"otp":     "12345", // five digits
		"purpose": "inquiry",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	details := body["details"].(map[string]any)
	assert.Contains(t, details, "otp")
}

func TestInquiry_RequiresVerification(t *testing.T) {
	app, _, _ := newTestApp()

	status, body := postJSON(t, app, "/api/inquiries", fiber.Map{
		"truck_id": "AX-SEED-001",
		"name":     "Ravi",
		"phone":    "9999999999",
		"message":  "Is the price negotiable?",
	})

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body["error"], "verification required")
}

func TestInquiry_VerifiedFlowIsSingleUse(t *testing.T) {
	app, _, sender := newTestApp()

	status, _ := postJSON(t, app, "/api/otp/send", fiber.Map{
		"phone":   "9999999999",
		"purpose": "inquiry",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = postJSON(t, app, "/api/otp/verify", fiber.Map{
		"phone":   "9999999999",
		"otp":     sender.lastCode(t),
		"purpose": "inquiry",
	})
	require.Equal(t, fiber.StatusOK, status)

	inquiry := fiber.Map{
		"truck_id": "AX-SEED-001",
		"name":     "Ravi",
		"phone":    "9999999999",
		"message":  "Is the price negotiable?",
	}

	status, body := postJSON(t, app, "/api/inquiries", inquiry)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Inquiry submitted successfully", body["message"])

	// The verification was consumed; a second inquiry needs a fresh OTP.
	status, _ = postJSON(t, app, "/api/inquiries", inquiry)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestInquiry_UnknownTruck(t *testing.T) {
	app, _, sender := newTestApp()

	status, _ := postJSON(t, app, "/api/otp/send", fiber.Map{
		"phone":   "9999999999",
		"purpose": "inquiry",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = postJSON(t, app, "/api/otp/verify", fiber.Map{
		"phone":   "9999999999",
		"otp":     sender.lastCode(t),
		"purpose": "inquiry",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = postJSON(t, app, "/api/inquiries", fiber.Map{
		"truck_id": "AX-DOES-NOT-EXIST",
		"name":     "Ravi",
		"phone":    "9999999999",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestReport_GatedByVerification(t *testing.T) {
	app, _, sender := newTestApp()

	req := httptest.NewRequest("GET", "/api/trucks/AX-SEED-001/report?phone=9999999999", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	status, _ := postJSON(t, app, "/api/otp/send", fiber.Map{
		"phone":   "9999999999",
		"purpose": "report_view",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = postJSON(t, app, "/api/otp/verify", fiber.Map{
		"phone":   "9999999999",
		"otp":     sender.lastCode(t),
		"purpose": "report_view",
	})
	require.Equal(t, fiber.StatusOK, status)

	req = httptest.NewRequest("GET", "/api/trucks/AX-SEED-001/report?phone=9999999999", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEmpty(t, body["report"])
	assert.Equal(t, "AX-SEED-001", body["truck_id"])
}
