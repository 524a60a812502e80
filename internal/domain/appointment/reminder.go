package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, ap *models.Appointment) error
	CancelReminder(ctx context.Context, appointmentID uint) error
}

type NoopReminders struct{}

func (NoopReminders) ScheduleReminder(context.Context, *models.Appointment) error { return nil }
func (NoopReminders) CancelReminder(context.Context, uint) error                  { return nil }
