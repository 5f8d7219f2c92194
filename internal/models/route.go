package models

import (
	"time"

	"gorm.io/gorm"
)

// Route status state machine. A route is PENDING after upload, moves to
// IN_PROGRESS when the driver starts working it, and COMPLETED when every
// stop is done. Re-importing a workbook must never push an IN_PROGRESS or
// COMPLETED route back to PENDING.
const (
	RouteStatusPending    = "PENDING"
	RouteStatusInProgress = "IN_PROGRESS"
	RouteStatusCompleted  = "COMPLETED"
	RouteStatusCancelled  = "CANCELLED"
)

// Route is one day's delivery route. For reconciliation it is identified by
// (RouteNumber, RouteDate) among non-deleted records, not by primary key.
type Route struct {
	gorm.Model
	RouteNumber string    `json:"route_number" gorm:"index:idx_routes_number_date"`
	RouteDate   time.Time `json:"route_date" gorm:"index:idx_routes_number_date"`
	Status      string    `json:"status"`

	DriverID *uint `json:"driver_id" gorm:"index"`
	Driver   *User `gorm:"foreignKey:DriverID" json:"driver,omitempty"`

	UploadedByID   uint      `json:"uploaded_by_id"`
	SourceFileName string    `json:"source_file_name"`
	UploadedAt     time.Time `json:"uploaded_at"`

	Stops        []Stop        `gorm:"foreignKey:RouteID" json:"stops,omitempty"`
	AdminNotes   []AdminNote   `gorm:"foreignKey:RouteID" json:"admin_notes,omitempty"`
	SafetyChecks []SafetyCheck `gorm:"foreignKey:RouteID" json:"safety_checks,omitempty"`
}

// StatusLocked reports whether driver activity has advanced the route far
// enough that an upload may no longer reset its status.
func (r *Route) StatusLocked() bool {
	return r.Status == RouteStatusInProgress || r.Status == RouteStatusCompleted
}
