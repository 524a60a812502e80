package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// staffIDs returns the caller's user id and barbershop id. Routes using it sit
// behind AuthMiddleware.
func staffIDs(c *gin.Context) (userID uint, barbershopID uint) {
	return c.GetUint(middleware.ContextUserID), c.GetUint(middleware.ContextBarbershopID)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func uintQuery(c *gin.Context, names ...string) (uint, bool, bool) {
	for _, name := range names {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || v == 0 {
			return 0, true, false
		}
		return uint(v), true, true
	}
	return 0, false, false
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func findShopBySlug(db *gorm.DB, slug string) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// barberIDs lists every staff member of a barbershop, used to drop cached
// availability after shop-wide changes.
func barberIDs(db *gorm.DB, barbershopID uint) []uint {
	var ids []uint
	db.Model(&models.User{}).
		Where("barbershop_id = ? AND role IN ?", barbershopID, []string{models.RoleOwner, models.RoleBarber}).
		Pluck("id", &ids)
	return ids
}

// civilDate parses a "YYYY-MM-DD" query or body value into the UTC midnight
// used by date columns.
func civilDate(s string) (time.Time, bool) {
	d, err := time.Parse(timezone.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// dateRange reads optional from/to query values. ok is false when either one
// is present but malformed, or when from is after to.
func dateRange(c *gin.Context) (from, to *time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		d, valid := civilDate(raw)
		if !valid {
			return nil, nil, false
		}
		from = &d
	}
	if raw := c.Query("to"); raw != "" {
		d, valid := civilDate(raw)
		if !valid {
			return nil, nil, false
		}
		to = &d
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, false
	}
	return from, to, true
}

func shopTimezone(db *gorm.DB, barbershopID uint) string {
	var tz string
	db.Model(&models.Barbershop{}).Select("timezone").Where("id = ?", barbershopID).Scan(&tz)
	return tz
}
