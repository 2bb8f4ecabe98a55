package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Truck listing statuses
const (
	TruckStatusAvailable = "available"
	TruckStatusReserved  = "reserved"
	TruckStatusSold      = "sold"
)

// Truck represents a listed commercial vehicle in the catalog
type Truck struct {
	gorm.Model
	TruckID string `json:"truck_id" gorm:"uniqueIndex"`

	// Vehicle details
	Make       string  `json:"make" gorm:"index"`
	TruckModel string  `json:"model" gorm:"column:truck_model"`
	Year       int     `json:"year" gorm:"index"`
	Kilometers int     `json:"kilometers"`
	BodyType   string  `json:"body_type" gorm:"index"` // e.g., "container", "tipper", "trailer", "tanker"
	FuelType   string  `json:"fuel_type"`              // "diesel", "cng", "electric"
	Capacity   float64 `json:"capacity"`               // in tons
	Location   string  `json:"location"`

	// Pricing
	Price float64 `json:"price"`

	// Certification
	Certified       bool   `json:"certified" gorm:"default:false"`
	InspectionScore int    `json:"inspection_score"` // 0-100, set by the inspection team
	ReportSummary   string `json:"-"`                // detailed report, served only behind OTP verification

	// Listing state
	Status   string `json:"status" gorm:"default:'available'"`
	ImageURL string `json:"image_url"`
}

// BeforeCreate hook to auto-generate TruckID
func (t *Truck) BeforeCreate(tx *gorm.DB) error {
	if t.TruckID == "" {
		t.TruckID = fmt.Sprintf("AX%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}
	t.Make = strings.TrimSpace(t.Make)
	if t.Status == "" {
		t.Status = TruckStatusAvailable
	}
	return nil
}

// MatchesQuery checks a free-text query against make, model and location.
func (t *Truck) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Make), q) ||
		strings.Contains(strings.ToLower(t.TruckModel), q) ||
		strings.Contains(strings.ToLower(t.Location), q)
}

// TruckSearch holds catalog filter parameters
type TruckSearch struct {
	Make          string  `json:"make"`
	BodyType      string  `json:"body_type"`
	FuelType      string  `json:"fuel_type"`
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	MinYear       int     `json:"min_year"`
	MaxYear       int     `json:"max_year"`
	CertifiedOnly bool    `json:"certified_only"`
	Query         string  `json:"query"`
}

// Matches reports whether a truck satisfies every set filter.
func (s *TruckSearch) Matches(t *Truck) bool {
	if t.Status != TruckStatusAvailable {
		return false
	}
	if s.Make != "" && !strings.EqualFold(s.Make, t.Make) {
		return false
	}
	if s.BodyType != "" && !strings.EqualFold(s.BodyType, t.BodyType) {
		return false
	}
	if s.FuelType != "" && !strings.EqualFold(s.FuelType, t.FuelType) {
		return false
	}
	if s.MinPrice > 0 && t.Price < s.MinPrice {
		return false
	}
	if s.MaxPrice > 0 && t.Price > s.MaxPrice {
		return false
	}
	if s.MinYear > 0 && t.Year < s.MinYear {
		return false
	}
	if s.MaxYear > 0 && t.Year > s.MaxYear {
		return false
	}
	if s.CertifiedOnly && !t.Certified {
		return false
	}
	return t.MatchesQuery(s.Query)
}
