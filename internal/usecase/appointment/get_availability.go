package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache domain.AvailabilityCache

	defaultGranularity int
	now                func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	cache domain.AvailabilityCache,
	defaultGranularity int,
) *GetAvailability {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	if defaultGranularity <= 0 {
		defaultGranularity = availability.DefaultGranularity
	}
	return &GetAvailability{
		repo:               repo,
		cache:              cache,
		defaultGranularity: defaultGranularity,
		now:                time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.AvailabilityResult, error) {

	// --------------------------------------------------
	// Barbeiro
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, "barber_not_found")
	}
	if barber.BarbershopID == nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if in.BarbershopID != 0 && *barber.BarbershopID != in.BarbershopID {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// --------------------------------------------------
	// Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, *barber.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}
	if !activeService(service) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, *barber.BarbershopID)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	// --------------------------------------------------
	// Data no timezone da barbearia
	// --------------------------------------------------
	day, err := timezone.ParseDate(shop.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	result := &domain.AvailabilityResult{
		BarberID:  barber.ID,
		ServiceID: service.ID,
		Date:      in.Date,
		Slots:     []string{},
	}

	now := uc.now().In(day.Location())
	today := timezone.StartOfDay(now)

	if day.Before(today) {
		return result, nil
	}

	isToday := day.Equal(today)
	if !isToday {
		if cached, ok := uc.cache.Get(ctx, barber.ID, in.Date, service.ID); ok {
			result.Slots = cached
			return result, nil
		}
	}

	var version string
	if !isToday {
		version = uc.cache.Version(ctx, barber.ID, in.Date)
	}

	notBefore := 0
	if isToday {
		notBefore = availability.MinuteOfDay(day, earliestStart(shop, now))
	}

	slots, err := uc.compute(ctx, barber.ID, day, availability.Input{
		Duration:    service.DurationMin,
		Granularity: granularity(shop, uc.defaultGranularity),
		NotBefore:   notBefore,
	})
	if err != nil {
		return nil, err
	}

	// Today's list shrinks as the clock moves, so it is never cached.
	if !isToday {
		uc.cache.Set(ctx, barber.ID, in.Date, service.ID, version, slots)
	}

	result.Slots = slots
	return result, nil
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	barberID uint,
	day time.Time,
	in availability.Input,
) ([]string, error) {

	blocked, err := uc.repo.IsDateBlocked(ctx, barberID, day)
	if err != nil {
		return nil, err
	}
	if blocked {
		return []string{}, nil
	}

	workingSlots, err := uc.repo.ListWorkingSlots(ctx, barberID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	in.Windows = domain.WorkingRanges(workingSlots)
	if len(in.Windows) == 0 {
		return []string{}, nil
	}

	appointments, err := uc.repo.ListOccupied(ctx, barberID, day, timezone.NextDay(day))
	if err != nil {
		return nil, err
	}
	in.Occupied = domain.OccupiedRanges(day, appointments)

	return availability.FormatAll(availability.Slots(in)), nil
}
