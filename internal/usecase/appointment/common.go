package appointment

import (
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// notFoundAs turns a repository miss into the given business code and leaves
// any other failure untouched.
func notFoundAs(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// staleAsInvalidState reports a lost transition race the same way as a
// transition from a final status.
func staleAsInvalidState(err error) error {
	if errors.Is(err, domain.ErrStatusChanged) {
		return httperr.ErrBusiness("invalid_state")
	}
	return err
}

// earliestStart is the first instant a new booking may start at.
func earliestStart(shop *models.Barbershop, now time.Time) time.Time {
	advance := shop.MinAdvanceMinutes
	if advance < 0 {
		advance = 0
	}
	return now.In(timezone.Location(shop.Timezone)).Add(time.Duration(advance) * time.Minute)
}

func granularity(shop *models.Barbershop, fallback int) int {
	if shop.SlotGranularityMin > 0 {
		return shop.SlotGranularityMin
	}
	return fallback
}

func activeService(svc *models.Service) bool {
	return svc.Active && svc.DurationMin > 0
}

func belongsTo(user *models.User, barbershopID uint) bool {
	return user.BarbershopID != nil && *user.BarbershopID == barbershopID
}
