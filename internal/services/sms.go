package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers a human-readable message to a phone number.
type SMSSender interface {
	SendSMS(to string, message string) error
}

// TwilioSender sends SMS through the Twilio REST API
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender creates a Twilio-backed sender from environment credentials
func NewTwilioSender() (*TwilioSender, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")

	if accountSid == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &TwilioSender{
		client: client,
		from:   from,
	}, nil
}

// SendSMS sends a text message via Twilio
func (t *TwilioSender) SendSMS(to string, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(to)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send SMS to %s: %v", to, err)
		return err
	}

	log.Printf("✅ SMS sent! SID: %s", *resp.Sid)
	return nil
}

// ConsoleSender logs messages instead of delivering them. Used when Twilio
// credentials are absent so local development can proceed with logged codes.
type ConsoleSender struct{}

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{}
}

func (c *ConsoleSender) SendSMS(to string, message string) error {
	log.Printf("📱 [console SMS] to=%s body=%q", to, message)
	return nil
}

// NewSMSSender returns a Twilio sender when credentials are configured,
// otherwise the console fallback.
func NewSMSSender() SMSSender {
	sender, err := NewTwilioSender()
	if err != nil {
		log.Println("⚠️  Twilio credentials not found - SMS will be logged to console")
		return NewConsoleSender()
	}
	log.Println("✅ Twilio SMS sender initialized")
	return sender
}
