package models

import "gorm.io/gorm"

// AdminNote is an office comment attached to a route (optionally to one of
// its stops) after upload. Force-create re-imports wipe these along with the
// route they annotate.
type AdminNote struct {
	gorm.Model
	RouteID  uint   `json:"route_id" gorm:"index"`
	StopID   *uint  `json:"stop_id" gorm:"index"`
	AuthorID uint   `json:"author_id"`
	Note     string `json:"note"`
}
