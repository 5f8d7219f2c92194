package models

import "gorm.io/gorm"

// User is an account that can sign in: office admins and delivery drivers.
// Driver accounts are created automatically during route import when a new
// driver name shows up in the uploaded workbook.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"unique"`
	Password string `json:"-"`
	FullName string `json:"full_name"`
	Role     string `json:"role"` // "admin" or "driver"
}
