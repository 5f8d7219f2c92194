package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/excel"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/models"
)

// defaultDriverPassword derives the initial password for an auto-created
// driver account. Deterministic so the office can tell a new driver their
// login without a reset flow; drivers are required to change it on first
// sign-in.
func defaultDriverPassword(username string) string {
	return strings.ReplaceAll(strings.ToLower(username), " ", "") + "#2024"
}

// isUniqueViolation detects a username collision from the store. Postgres
// reports code 23505; the sqlite driver used in tests reports a constraint
// string; newer gorm translates both.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// resolveDrivers maps every distinct driver name in the parsed route to a
// driver account ID, creating missing accounts. A name that cannot be
// resolved is dropped with a warning; it never aborts the import.
func (s *Service) resolveDrivers(tx *gorm.DB, parsed *excel.ParsedRoute) (map[string]uint, []string) {
	names := make([]string, 0, 4)
	seen := map[string]bool{}
	for _, stop := range parsed.Stops {
		if stop.DriverName != "" && !seen[stop.DriverName] {
			seen[stop.DriverName] = true
			names = append(names, stop.DriverName)
		}
	}
	if len(names) == 0 {
		return map[string]uint{}, nil
	}

	var existing []models.User
	if err := tx.Where("username IN ?", names).Find(&existing).Error; err != nil {
		logrus.WithError(err).Error("driver batch lookup failed")
		return map[string]uint{}, []string{"driver lookup failed: " + err.Error()}
	}

	resolved := make(map[string]uint, len(names))
	for _, u := range existing {
		resolved[u.Username] = u.ID
	}

	var warnings []string
	for _, name := range names {
		if _, ok := resolved[name]; ok {
			continue
		}
		id, err := s.createDriver(tx, name)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("driver %q could not be resolved: %v", name, err))
			logrus.WithField("driver", name).WithError(err).Warn("dropping unresolvable driver")
			continue
		}
		resolved[name] = id
	}
	return resolved, warnings
}

// createDriver creates a driver account for a workbook name. On a username
// collision it falls back to a case-insensitive lookup and reuses that
// account instead of failing the import.
func (s *Service) createDriver(tx *gorm.DB, name string) (uint, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultDriverPassword(name)), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash default password: %w", err)
	}

	user := models.User{
		Username: name,
		Password: string(hash),
		FullName: name,
		Role:     "driver",
	}
	if err := tx.Create(&user).Error; err != nil {
		if !isUniqueViolation(err) {
			return 0, err
		}
		var match models.User
		if lookupErr := tx.Where("LOWER(username) = LOWER(?)", name).First(&match).Error; lookupErr != nil {
			return 0, fmt.Errorf("username conflict and no case-insensitive match: %w", err)
		}
		return match.ID, nil
	}

	logrus.WithFields(logrus.Fields{"driver": name, "user_id": user.ID}).Info("created driver account from upload")
	return user.ID, nil
}

// resolveCustomers maps every distinct customer name to a customer ID.
// Exact-name matches among non-deleted customers win; a soft-deleted record
// with the same name is restored rather than duplicated; otherwise a new
// customer is created. Group code and email are backfilled only when the
// stored value is empty.
func (s *Service) resolveCustomers(tx *gorm.DB, stops []excel.ParsedStop) (map[string]uint, error) {
	type detail struct{ groupCode, email string }
	details := map[string]detail{}
	names := make([]string, 0, len(stops))
	for _, stop := range stops {
		if _, ok := details[stop.CustomerName]; ok {
			continue
		}
		details[stop.CustomerName] = detail{groupCode: stop.GroupCode, email: stop.Email}
		names = append(names, stop.CustomerName)
	}

	var active []models.Customer
	if err := tx.Where("name IN ?", names).Find(&active).Error; err != nil {
		return nil, fmt.Errorf("customer batch lookup: %w", err)
	}

	resolved := make(map[string]uint, len(names))
	for i := range active {
		c := &active[i]
		resolved[c.Name] = c.ID
		if err := s.backfillCustomer(tx, c, details[c.Name].groupCode, details[c.Name].email); err != nil {
			return nil, err
		}
	}

	for _, name := range names {
		if _, ok := resolved[name]; ok {
			continue
		}
		d := details[name]

		// Prefer restoring a soft-deleted customer with the same name over
		// creating a duplicate that would orphan its delivery history.
		var prior models.Customer
		err := tx.Unscoped().Where("name = ?", name).Order("id DESC").First(&prior).Error
		switch {
		case err == nil && prior.DeletedAt.Valid:
			if err := tx.Unscoped().Model(&prior).Update("deleted_at", nil).Error; err != nil {
				return nil, fmt.Errorf("restore customer %q: %w", name, err)
			}
			logrus.WithField("customer", name).Info("restored soft-deleted customer")
			if err := s.backfillCustomer(tx, &prior, d.groupCode, d.email); err != nil {
				return nil, err
			}
			resolved[name] = prior.ID
		case err == nil:
			resolved[name] = prior.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := models.Customer{Name: name, GroupCode: d.groupCode, Email: d.email}
			if err := tx.Create(&created).Error; err != nil {
				return nil, fmt.Errorf("create customer %q: %w", name, err)
			}
			resolved[name] = created.ID
		default:
			return nil, fmt.Errorf("customer lookup %q: %w", name, err)
		}
	}
	return resolved, nil
}

// backfillCustomer fills group code and email first-write-wins: only when
// the stored value is currently empty.
func (s *Service) backfillCustomer(tx *gorm.DB, c *models.Customer, groupCode, email string) error {
	updates := map[string]interface{}{}
	if c.GroupCode == "" && groupCode != "" {
		updates["group_code"] = groupCode
	}
	if c.Email == "" && email != "" {
		updates["email"] = email
	}
	if len(updates) == 0 {
		return nil
	}
	if err := tx.Model(c).Updates(updates).Error; err != nil {
		return fmt.Errorf("backfill customer %q: %w", c.Name, err)
	}
	return nil
}
