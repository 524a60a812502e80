package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string
	// Set when the booking comes from a client account.
	ClientUserID *uint

	ServiceID uint

	Date  string
	Time  string
	Notes string

	// Who performed the action, for the audit trail.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	audit     audit.Sink
	cache     domain.AvailabilityCache
	reminders domain.ReminderScheduler
	log       *zap.Logger
	now       func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	sink audit.Sink,
	cache domain.AvailabilityCache,
	reminders domain.ReminderScheduler,
	log *zap.Logger,
) *CreateAppointment {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	if reminders == nil {
		reminders = domain.NoopReminders{}
	}
	return &CreateAppointment{
		repo:      repo,
		audit:     sink,
		cache:     cache,
		reminders: reminders,
		log:       log,
		now:       time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Barbearia e barbeiro
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, "barber_not_found")
	}
	if !belongsTo(barber, shop.ID) {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(shop.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima
	// --------------------------------------------------
	if start.Before(earliestStart(shop, uc.now())) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4️⃣ Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}
	if !activeService(service) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)
	day := timezone.StartOfDay(start)

	ap := &models.Appointment{
		BarbershopID: shop.ID,
		BarberID:     barber.ID,
		ServiceID:    service.ID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	// --------------------------------------------------
	// 5️⃣ Revalidação dentro da transação
	// --------------------------------------------------
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockBarber(ctx, barber.ID); err != nil {
			return notFoundAs(err, "barber_not_found")
		}

		blocked, err := tx.IsDateBlocked(ctx, barber.ID, day)
		if err != nil {
			return err
		}
		if blocked {
			return httperr.ErrBusiness("date_blocked")
		}

		slots, err := tx.ListWorkingSlots(ctx, barber.ID, int(day.Weekday()))
		if err != nil {
			return err
		}

		candidate := availability.Range{
			Start: availability.MinuteOfDay(day, start),
			End:   availability.MinuteOfDay(day, end),
		}
		if !availability.WithinWindows(candidate, domain.WorkingRanges(slots)) {
			return httperr.ErrBusiness("outside_working_hours")
		}

		if err := tx.AssertNoTimeConflict(ctx, barber.ID, start, end); err != nil {
			return err
		}

		client, err := tx.GetOrCreateClient(
			ctx,
			shop.ID,
			in.ClientName,
			in.ClientPhone,
			in.ClientEmail,
			in.ClientUserID,
		)
		if err != nil {
			return err
		}
		ap.ClientID = client.ID
		ap.Client = *client

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	ap.Service = *service

	// --------------------------------------------------
	// 6️⃣ Efeitos pós-commit
	// --------------------------------------------------
	uc.cache.InvalidateDay(ctx, barber.ID, day.Format(timezone.DateLayout))

	if err := uc.reminders.ScheduleReminder(ctx, ap); err != nil {
		uc.log.Warn("schedule reminder failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
	}

	actor := in.ActorID
	if actor == nil {
		actor = in.ClientUserID
	}
	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       actor,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
