package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type CancelAppointment struct {
	repo      domain.Repository
	audit     audit.Sink
	cache     domain.AvailabilityCache
	reminders domain.ReminderScheduler
	log       *zap.Logger
	now       func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	sink audit.Sink,
	cache domain.AvailabilityCache,
	reminders domain.ReminderScheduler,
	log *zap.Logger,
) *CancelAppointment {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	if reminders == nil {
		reminders = domain.NoopReminders{}
	}
	return &CancelAppointment{
		repo:      repo,
		audit:     sink,
		cache:     cache,
		reminders: reminders,
		log:       log,
		now:       time.Now,
	}
}

// Execute cancels an appointment of the given barber.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, notFoundAs(err, "appointment_not_found")
	}
	if ap.BarbershopID != barbershopID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	return uc.cancel(ctx, ap, &barberID)
}

// ExecuteForClient cancels an appointment booked by a client account.
func (uc *CancelAppointment) ExecuteForClient(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForClientUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, notFoundAs(err, "appointment_not_found")
	}

	return uc.cancel(ctx, ap, &userID)
}

func (uc *CancelAppointment) cancel(
	ctx context.Context,
	ap *models.Appointment,
	actor *uint,
) (*models.Appointment, error) {

	from := domain.Status(ap.Status)
	if err := domain.Cancel(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.TransitionAppointment(ctx, ap, from); err != nil {
		return nil, staleAsInvalidState(err)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, ap.BarbershopID)
	if err == nil {
		day := ap.StartTime.In(timezone.Location(shop.Timezone)).Format(timezone.DateLayout)
		uc.cache.InvalidateDay(ctx, ap.BarberID, day)
	} else {
		uc.cache.InvalidateBarber(ctx, ap.BarberID)
	}

	if err := uc.reminders.CancelReminder(ctx, ap.ID); err != nil {
		uc.log.Warn("cancel reminder failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		UserID:       actor,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
