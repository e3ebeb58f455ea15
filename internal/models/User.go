package models

import "gorm.io/gorm"

// Roles accepted by the API.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleDriver   = "driver"
)

type User struct {
	gorm.Model
	UserName string `json:"userName" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`
	Role     string `json:"role"` // "admin", "operator", "driver"

	Driver *Driver `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"driver,omitempty"`
}
