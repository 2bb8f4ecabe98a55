package models

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

// Valuation is a seller lead asking what their truck is worth.
type Valuation struct {
	gorm.Model
	ValuationID string  `json:"valuation_id" gorm:"uniqueIndex"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone" gorm:"index;not null"`
	Make        string  `json:"make"`
	TruckModel  string  `json:"model" gorm:"column:truck_model"`
	Year        int     `json:"year"`
	Kilometers  int     `json:"kilometers"`
	Expected    float64 `json:"expected_price"`
	Status      string  `json:"status" gorm:"default:'pending'"` // pending, quoted, closed
}

func (v *Valuation) BeforeCreate(tx *gorm.DB) error {
	if v.ValuationID == "" {
		v.ValuationID = "VAL-" + uuid.New().String()
	}
	if v.Status == "" {
		v.Status = "pending"
	}
	return nil
}
