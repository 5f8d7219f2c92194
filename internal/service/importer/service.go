package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/excel"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/models"
)

// Mode selects how an upload reconciles against an existing route.
type Mode string

const (
	// ModeAuto smart-merges into an existing (routeNumber, date) route,
	// creating one when none exists.
	ModeAuto Mode = "auto"
	// ModeForceCreate deletes any existing route for the key and imports
	// from scratch.
	ModeForceCreate Mode = "force_create"
)

var (
	ErrUploaderNotFound = errors.New("uploading user not found")
	ErrNotAuthorized    = errors.New("uploading user is not an administrator")
)

// Service reconciles parsed workbooks into the store. The db handle is
// injected; nothing in this package reads ambient globals.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// New builds an import service over a gorm handle.
func New(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// SaveResult carries the per-upload warnings produced while resolving
// entities, alongside the persisted route.
type SaveResult struct {
	Route    *models.Route
	IsUpdate bool
	Warnings []string
}

// SaveRoute persists one parsed route inside a single transaction: entity
// resolution, route creation or merge, and stop writes all commit together
// or not at all.
func (s *Service) SaveRoute(ctx context.Context, parsed *excel.ParsedRoute, uploaderID uint,
	fileName string, mode Mode) (*SaveResult, error) {

	if parsed == nil || len(parsed.Stops) == 0 {
		return nil, errors.New("parsed route has no stops")
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}

	result, err := s.saveRouteTx(tx, parsed, uploaderID, fileName, mode)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"route":     result.Route.RouteNumber,
		"date":      result.Route.RouteDate.Format("2006-01-02"),
		"is_update": result.IsUpdate,
		"file":      fileName,
	}).Info("route import committed")
	return result, nil
}

func (s *Service) saveRouteTx(tx *gorm.DB, parsed *excel.ParsedRoute, uploaderID uint,
	fileName string, mode Mode) (*SaveResult, error) {

	var uploader models.User
	if err := tx.First(&uploader, uploaderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploaderNotFound
		}
		return nil, fmt.Errorf("uploader lookup: %w", err)
	}
	if uploader.Role != "admin" {
		return nil, ErrNotAuthorized
	}

	drivers, warnings := s.resolveDrivers(tx, parsed)
	customers, err := s.resolveCustomers(tx, parsed.Stops)
	if err != nil {
		return nil, err
	}

	existing, err := s.findExistingRoute(tx, parsed.RouteNumber, parsed.Date)
	if err != nil {
		return nil, err
	}

	var route *models.Route
	isUpdate := false
	switch {
	case existing == nil:
		route, err = s.createRoute(tx, parsed, uploaderID, fileName, drivers, customers)
	case mode == ModeForceCreate:
		if err = s.purgeRoute(tx, existing); err == nil {
			route, err = s.createRoute(tx, parsed, uploaderID, fileName, drivers, customers)
		}
	default:
		if err = s.mergeRoute(tx, existing, parsed, uploaderID, fileName, drivers, customers); err == nil {
			route = existing
			isUpdate = true
		}
	}
	if err != nil {
		return nil, err
	}

	var final models.Route
	if err := tx.Preload("Stops").Preload("Driver").First(&final, route.ID).Error; err != nil {
		return nil, fmt.Errorf("reload route: %w", err)
	}
	return &SaveResult{Route: &final, IsUpdate: isUpdate, Warnings: warnings}, nil
}
