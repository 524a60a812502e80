package appointment

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit audit.Sink
	cache domain.AvailabilityCache
	now   func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	sink audit.Sink,
	cache domain.AvailabilityCache,
) *CompleteAppointment {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	return &CompleteAppointment{
		repo:  repo,
		audit: sink,
		cache: cache,
		now:   time.Now,
	}
}

// Execute marks the appointment as done and books its price as cash income in
// the same transaction.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	var ap *models.Appointment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		found, err := tx.GetAppointmentForBarber(ctx, appointmentID, barberID)
		if err != nil {
			return notFoundAs(err, "appointment_not_found")
		}
		if found.BarbershopID != barbershopID {
			return httperr.ErrBusiness("appointment_not_found")
		}

		from := domain.Status(found.Status)
		if err := domain.Complete(found, uc.now()); err != nil {
			return err
		}

		if err := tx.TransitionAppointment(ctx, found, from); err != nil {
			return staleAsInvalidState(err)
		}

		local := found.StartTime.In(timezone.Location(shop.Timezone))

		entry := &models.CashEntry{
			BarbershopID:  barbershopID,
			UserID:        &barberID,
			AppointmentID: &found.ID,
			Type:          models.CashIncome,
			Category:      "service",
			Description:   fmt.Sprintf("Atendimento #%d - %s", found.ID, found.Service.Name),
			Amount:        found.Service.Price,
			OccurredOn:    datatypes.Date(timezone.CivilDate(local)),
		}
		if err := tx.CreateCashEntry(ctx, entry); err != nil {
			return err
		}

		ap = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, barberID,
		ap.StartTime.In(timezone.Location(shop.Timezone)).Format(timezone.DateLayout))

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_completed",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
