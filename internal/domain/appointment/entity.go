package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// ===============================
// Availability helpers
// ===============================

// OccupiedRanges projects appointments onto day as minute ranges, skipping
// cancelled ones.
func OccupiedRanges(day time.Time, aps []models.Appointment) []availability.Range {
	out := make([]availability.Range, 0, len(aps))
	for _, ap := range aps {
		if !Status(ap.Status).Occupies() {
			continue
		}
		out = append(out, availability.Range{
			Start: availability.MinuteOfDay(day, ap.StartTime),
			End:   availability.MinuteOfDay(day, ap.EndTime),
		})
	}
	return out
}

// WorkingRanges converts active slots into minute ranges. Malformed rows are
// skipped.
func WorkingRanges(slots []models.WorkingSlot) []availability.Range {
	out := make([]availability.Range, 0, len(slots))
	for _, s := range slots {
		if !s.Active {
			continue
		}
		start, err := availability.ParseClock(s.StartTime)
		if err != nil {
			continue
		}
		end, err := availability.ParseClock(s.EndTime)
		if err != nil {
			continue
		}
		r := availability.Range{Start: start, End: end}
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}
