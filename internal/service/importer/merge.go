package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/excel"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/models"
)

// findExistingRoute locates the non-deleted route for (routeNumber, calendar
// day). parsed dates are already normalized to midnight, so the window is
// [date, date+24h).
func (s *Service) findExistingRoute(tx *gorm.DB, routeNumber string, date time.Time) (*models.Route, error) {
	var route models.Route
	err := tx.Where("route_number = ? AND route_date >= ? AND route_date < ?",
		routeNumber, date, date.AddDate(0, 0, 1)).First(&route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("route lookup: %w", err)
	}
	return &route, nil
}

// purgeRoute deletes a route and everything hanging off it: stops, admin
// notes and safety checks. Used by force-create before re-importing.
func (s *Service) purgeRoute(tx *gorm.DB, route *models.Route) error {
	if err := tx.Where("route_id = ?", route.ID).Delete(&models.Stop{}).Error; err != nil {
		return fmt.Errorf("purge stops: %w", err)
	}
	if err := tx.Where("route_id = ?", route.ID).Delete(&models.AdminNote{}).Error; err != nil {
		return fmt.Errorf("purge admin notes: %w", err)
	}
	if err := tx.Where("route_id = ?", route.ID).Delete(&models.SafetyCheck{}).Error; err != nil {
		return fmt.Errorf("purge safety checks: %w", err)
	}
	if err := tx.Delete(route).Error; err != nil {
		return fmt.Errorf("purge route: %w", err)
	}
	logrus.WithFields(logrus.Fields{"route": route.RouteNumber, "route_id": route.ID}).
		Info("replaced existing route (force create)")
	return nil
}

// createRoute persists a brand-new route with all parsed stops.
func (s *Service) createRoute(tx *gorm.DB, parsed *excel.ParsedRoute, uploaderID uint,
	fileName string, drivers, customers map[string]uint) (*models.Route, error) {

	route := models.Route{
		RouteNumber:    parsed.RouteNumber,
		RouteDate:      parsed.Date,
		Status:         models.RouteStatusPending,
		UploadedByID:   uploaderID,
		SourceFileName: fileName,
		UploadedAt:     s.now(),
	}
	if id, ok := drivers[parsed.DriverName]; ok {
		route.DriverID = &id
	}
	if err := tx.Create(&route).Error; err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}

	for i := range parsed.Stops {
		stop := newStop(&parsed.Stops[i], route.ID, customers)
		if err := tx.Create(stop).Error; err != nil {
			return nil, fmt.Errorf("create stop %d: %w", parsed.Stops[i].Sequence, err)
		}
	}
	return &route, nil
}

// mergeRoute reconciles a fresh upload into a route that already exists,
// preserving anything the driver has entered since the last upload.
func (s *Service) mergeRoute(tx *gorm.DB, route *models.Route, parsed *excel.ParsedRoute,
	uploaderID uint, fileName string, drivers, customers map[string]uint) error {

	route.RouteDate = parsed.Date
	route.SourceFileName = fileName
	route.UploadedByID = uploaderID
	route.UploadedAt = s.now()
	if id, ok := drivers[parsed.DriverName]; ok {
		route.DriverID = &id
	}
	// A re-upload resets a pending route but never winds back one the driver
	// has started or finished.
	if !route.StatusLocked() {
		route.Status = models.RouteStatusPending
	}
	if err := tx.Save(route).Error; err != nil {
		return fmt.Errorf("update route: %w", err)
	}

	var existing []models.Stop
	if err := tx.Where("route_id = ?", route.ID).Find(&existing).Error; err != nil {
		return fmt.Errorf("load existing stops: %w", err)
	}

	matched := make(map[uint]bool, len(existing))
	created, updated := 0, 0
	for i := range parsed.Stops {
		ps := &parsed.Stops[i]
		match := matchStop(existing, matched, ps)
		if match == nil {
			stop := newStop(ps, route.ID, customers)
			if err := tx.Create(stop).Error; err != nil {
				return fmt.Errorf("create stop %d: %w", ps.Sequence, err)
			}
			created++
			continue
		}
		matched[match.ID] = true
		applyStopUpdate(match, ps, customers)
		if err := tx.Save(match).Error; err != nil {
			return fmt.Errorf("update stop %d: %w", match.ID, err)
		}
		updated++
	}

	logrus.WithFields(logrus.Fields{
		"route":   route.RouteNumber,
		"updated": updated,
		"created": created,
	}).Info("smart merge applied")
	return nil
}

// matchStop finds the existing stop a parsed row refers to: exact customer
// name first, then exact sequence number. Each existing stop is consumed at
// most once. This is the documented matching policy for a source with no
// stable stop key; two customers sharing a name will be merged.
func matchStop(existing []models.Stop, matched map[uint]bool, ps *excel.ParsedStop) *models.Stop {
	for i := range existing {
		if !matched[existing[i].ID] && existing[i].CustomerNameFromUpload == ps.CustomerName {
			return &existing[i]
		}
	}
	for i := range existing {
		if !matched[existing[i].ID] && existing[i].Sequence == ps.Sequence {
			return &existing[i]
		}
	}
	return nil
}

// newStop builds a persistent Stop from a parsed row.
func newStop(ps *excel.ParsedStop, routeID uint, customers map[string]uint) *models.Stop {
	return &models.Stop{
		RouteID:                routeID,
		CustomerID:             customers[ps.CustomerName],
		Sequence:               ps.Sequence,
		Status:                 models.StopStatusPending,
		CustomerNameFromUpload: ps.CustomerName,
		DriverNameFromUpload:   ps.DriverName,
		GroupCode:              ps.GroupCode,
		CustomerEmail:          ps.Email,
		WebOrderNumber:         ps.WebOrderNumber,
		InvoiceNumber:          ps.InvoiceNumber,
		DriverNotes:            ps.DriverNotes,
		AdminNotes:             ps.AdminNotes,
		PaymentFlagCash:        ps.PaymentFlagCash,
		PaymentFlagCheck:       ps.PaymentFlagCheck,
		PaymentFlagCC:          ps.PaymentFlagCC,
		PaymentFlagNotPaid:     ps.PaymentFlagNotPaid,
		IsCOD:                  ps.IsCOD,
		HasReturn:              ps.HasReturn,
		InvoiceAmount:          ps.InvoiceAmount,
		PaymentAmountCash:      ps.PaymentAmountCash,
		PaymentAmountCheck:     ps.PaymentAmountCheck,
		PaymentAmountCC:        ps.PaymentAmountCC,
		TotalPaymentAmount:     ps.TotalPaymentAmount,
	}
}

// applyStopUpdate merges a parsed row into its matching existing stop.
// Upload-owned fields are overwritten; identifiers and notes only when the
// new value is non-empty (so an existing invoice number carries forward);
// recorded payment amounts only when the upload actually disagrees with
// what is stored.
func applyStopUpdate(stop *models.Stop, ps *excel.ParsedStop, customers map[string]uint) {
	stop.Sequence = ps.Sequence
	stop.CustomerNameFromUpload = ps.CustomerName
	stop.DriverNameFromUpload = ps.DriverName
	if id, ok := customers[ps.CustomerName]; ok {
		stop.CustomerID = id
	}

	if ps.InvoiceNumber != "" {
		stop.InvoiceNumber = ps.InvoiceNumber
	}
	if ps.WebOrderNumber != "" {
		stop.WebOrderNumber = ps.WebOrderNumber
	}
	if ps.GroupCode != "" {
		stop.GroupCode = ps.GroupCode
	}
	if ps.Email != "" {
		stop.CustomerEmail = ps.Email
	}
	if ps.DriverNotes != "" {
		stop.DriverNotes = ps.DriverNotes
	}
	if ps.AdminNotes != "" {
		stop.AdminNotes = ps.AdminNotes
	}

	stop.PaymentFlagCash = ps.PaymentFlagCash
	stop.PaymentFlagCheck = ps.PaymentFlagCheck
	stop.PaymentFlagCC = ps.PaymentFlagCC
	stop.PaymentFlagNotPaid = ps.PaymentFlagNotPaid
	stop.IsCOD = ps.IsCOD
	stop.HasReturn = ps.HasReturn

	if ps.InvoiceAmount != nil {
		stop.InvoiceAmount = ps.InvoiceAmount
	}

	if paymentAmountsDiffer(stop, ps) {
		stop.PaymentAmountCash = ps.PaymentAmountCash
		stop.PaymentAmountCheck = ps.PaymentAmountCheck
		stop.PaymentAmountCC = ps.PaymentAmountCC
		stop.TotalPaymentAmount = ps.TotalPaymentAmount
	}
}

// paymentAmountsDiffer reports whether the upload carries payment amounts
// that disagree with what is already recorded. An upload with no amounts at
// all never counts as different: an incomplete re-export must not erase
// payments the driver already recorded on the road.
func paymentAmountsDiffer(stop *models.Stop, ps *excel.ParsedStop) bool {
	if ps.PaymentAmountCash == nil && ps.PaymentAmountCheck == nil && ps.PaymentAmountCC == nil {
		return false
	}
	return !amountEqual(stop.PaymentAmountCash, ps.PaymentAmountCash) ||
		!amountEqual(stop.PaymentAmountCheck, ps.PaymentAmountCheck) ||
		!amountEqual(stop.PaymentAmountCC, ps.PaymentAmountCC)
}

// amountEqual compares nullable amounts, treating nil as zero.
func amountEqual(a, b *decimal.Decimal) bool {
	av, bv := decimal.Zero, decimal.Zero
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av.Equal(bv)
}
