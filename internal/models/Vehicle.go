// internal/models/vehicle.go
package models

import (
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Purpose selects the marketplace listing a vehicle appears in.
type Purpose string

const (
	PurposeSell Purpose = "SELL"
	PurposeRent Purpose = "RENT"
)

// ParsePurpose accepts the purpose path segment in any case.
func ParsePurpose(raw string) (Purpose, bool) {
	switch p := Purpose(strings.ToUpper(strings.Trim(raw, "/ "))); p {
	case PurposeSell, PurposeRent:
		return p, true
	default:
		return "", false
	}
}

type Vehicle struct {
	ID              string         `json:"_id" gorm:"primaryKey;type:varchar(26)"`
	Number          string         `json:"number" gorm:"uniqueIndex"`
	SeatingCapacity int            `json:"seatingCapacity"`
	Model           string         `json:"model"`
	BodyType        string         `json:"bodyType"`
	ChassisBrand    string         `json:"chassisBrand"`
	Location        string         `json:"location"`
	ContactNumber   string         `json:"contactNumber"`
	Photos          pq.StringArray `json:"photos" gorm:"type:text[]"` // ordered, first photo is the cover
	IsAC            bool           `json:"isAC"`
	IsForRent       bool           `json:"isForRent" gorm:"index"`
	IsForSell       bool           `json:"isForSell" gorm:"index"`
	Type            string         `json:"type"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = NewID()
	}
	return nil
}
