package models

import (
	"time"

	"gorm.io/gorm"
)

// PackageBooking is a chartered trip on one or two vehicles. Money fields
// are in INR.
type PackageBooking struct {
	ID                   string         `json:"_id" gorm:"primaryKey;type:varchar(26)"`
	Vehicle              string         `json:"vehicle"`
	OtherVehicle         string         `json:"otherVehicle"`
	CustomerName         string         `json:"customerName"`
	MobileNumber         string         `json:"mobileNumber"`
	AlternateNumber      string         `json:"alternateNumber"`
	KmStarting           float64        `json:"kmStarting"`
	PerKmRateInINR       float64        `json:"perKmRateInINR"`
	AdvanceAmountInINR   float64        `json:"advanceAmountInINR"`
	RemainingAmountInINR float64        `json:"remainingAmountInINR"`
	DeparturePlace       string         `json:"departurePlace"`
	DestinationPlace     string         `json:"destinationPlace"`
	DepartureDate        time.Time      `json:"departureDate"`
	DepartureTime        time.Time      `json:"departureTime"`
	ReturnDate           time.Time      `json:"returnDate"`
	ReturnTime           time.Time      `json:"returnTime"`
	TollInINR            float64        `json:"tollInINR"`
	OtherStateTaxInINR   float64        `json:"otherStateTaxInINR"`
	Instructions         string         `json:"instructions"`
	Note                 string         `json:"note"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *PackageBooking) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
