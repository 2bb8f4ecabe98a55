package models

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

// Inquiry statuses
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// Inquiry is a buyer lead against a truck listing. Creating one requires a
// fresh phone verification for the "inquiry" purpose.
type Inquiry struct {
	gorm.Model
	InquiryID string `json:"inquiry_id" gorm:"uniqueIndex"`
	TruckID   string `json:"truck_id" gorm:"index;not null"`
	Name      string `json:"name"`
	Phone     string `json:"phone" gorm:"index;not null"`
	Message   string `json:"message"`
	Status    string `json:"status" gorm:"default:'new'"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.InquiryID == "" {
		i.InquiryID = "INQ-" + uuid.New().String()
	}
	if i.Status == "" {
		i.Status = InquiryStatusNew
	}
	return nil
}

// InquiryRequest is the inbound payload for creating an inquiry
type InquiryRequest struct {
	TruckID string `json:"truck_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
