package models

import (
	"time"

	"gorm.io/gorm"
)

// SafetyCheck types recorded by the driver at the start and end of a route.
const (
	SafetyCheckStartOfDay = "START_OF_DAY"
	SafetyCheckEndOfDay   = "END_OF_DAY"
)

// SafetyCheck is a driver-submitted vehicle checklist tied to a route.
type SafetyCheck struct {
	gorm.Model
	RouteID   uint      `json:"route_id" gorm:"index"`
	DriverID  uint      `json:"driver_id"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
	Mileage   int       `json:"mileage"`
	CheckedAt time.Time `json:"checked_at"`
}
