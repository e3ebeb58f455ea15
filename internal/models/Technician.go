package models

import (
	"time"

	"gorm.io/gorm"
)

type Technician struct {
	ID              string         `json:"_id" gorm:"primaryKey;type:varchar(26)"`
	TechnicianType  string         `json:"technicianType" gorm:"index"`
	Name            string         `json:"name"`
	City            string         `json:"city"`
	MobileNumber    string         `json:"mobileNumber"`
	AlternateNumber string         `json:"alternateNumber"`
	VehicleType     string         `json:"vehicleType"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (t *Technician) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return nil
}
