package models

import "gorm.io/gorm"

// Customer is a delivery destination. Identity is the exact name; the
// importer matches uploaded rows against non-deleted customers by name and
// restores a soft-deleted record rather than creating a duplicate.
type Customer struct {
	gorm.Model
	Name      string `json:"name" gorm:"index"`
	GroupCode string `json:"group_code"`
	Email     string `json:"email"`

	Stops []Stop `gorm:"foreignKey:CustomerID" json:"stops,omitempty"`
}
