// internal/models/driver.go
package models

import "gorm.io/gorm"

// Driver is the profile created by the add-driver form. Login credentials
// live on the linked User; the image fields hold URLs returned by the
// upload storage.
type Driver struct {
	gorm.Model
	UserID       uint   `json:"userId" gorm:"uniqueIndex"`
	Name         string `json:"name"`
	MobileNumber string `json:"mobileNumber" gorm:"index"`
	City         string `json:"city"`
	State        string `json:"state"`
	VehicleType  string `json:"vehicleType"`
	Photo        string `json:"photo"`
	AadharCard   string `json:"aadharCard"`
	License      string `json:"license"`
}
