package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const (
	TypeAppointmentReminder = "appointment:reminder"
	defaultQueue            = "default"
)

type ReminderPayload struct {
	AppointmentID uint `json:"appointment_id"`
}

func reminderTaskID(appointmentID uint) string {
	return fmt.Sprintf("reminder:%d", appointmentID)
}

func NewReminderTask(appointmentID uint) (*asynq.Task, error) {
	b, err := json.Marshal(ReminderPayload{AppointmentID: appointmentID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAppointmentReminder, b), nil
}

func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// ======================================================
// Producer
// ======================================================

type ReminderQueue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	lead      time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func NewReminderQueue(opt asynq.RedisClientOpt, lead time.Duration, log *zap.Logger) *ReminderQueue {
	return &ReminderQueue{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		lead:      lead,
		log:       log,
		now:       time.Now,
	}
}

// NewReminderScheduler picks the asynq producer when Redis is configured.
func NewReminderScheduler(cfg *config.Config, log *zap.Logger) domain.ReminderScheduler {
	if !cfg.RedisEnabled() {
		return domain.NoopReminders{}
	}
	return NewReminderQueue(RedisOpt(cfg), cfg.ReminderLead, log)
}

func (q *ReminderQueue) fireAt(start time.Time) (time.Time, bool) {
	at := start.Add(-q.lead)
	return at, at.After(q.now())
}

func (q *ReminderQueue) ScheduleReminder(ctx context.Context, ap *models.Appointment) error {
	at, ok := q.fireAt(ap.StartTime)
	if !ok {
		return nil
	}

	task, err := NewReminderTask(ap.ID)
	if err != nil {
		return err
	}

	_, err = q.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(at),
		asynq.TaskID(reminderTaskID(ap.ID)),
		asynq.Queue(defaultQueue),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func (q *ReminderQueue) CancelReminder(_ context.Context, appointmentID uint) error {
	err := q.inspector.DeleteTask(defaultQueue, reminderTaskID(appointmentID))
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return err
}

func (q *ReminderQueue) Close() error {
	_ = q.inspector.Close()
	return q.client.Close()
}

var _ domain.ReminderScheduler = (*ReminderQueue)(nil)

// ======================================================
// Consumer
// ======================================================

type AppointmentLoader interface {
	GetAppointmentByID(ctx context.Context, appointmentID uint) (*models.Appointment, error)
}

type ReminderHandler struct {
	loader AppointmentLoader
	audit  audit.Sink
	log    *zap.Logger
}

func NewReminderHandler(loader AppointmentLoader, sink audit.Sink, log *zap.Logger) *ReminderHandler {
	return &ReminderHandler{loader: loader, audit: sink, log: log}
}

func (h *ReminderHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p ReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	ap, err := h.loader.GetAppointmentByID(ctx, p.AppointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		h.log.Warn("reminder for missing appointment", zap.Uint("appointment_id", p.AppointmentID))
		return nil
	}
	if err != nil {
		return err
	}

	if ap.Status != string(domain.StatusScheduled) {
		h.log.Debug("reminder skipped",
			zap.Uint("appointment_id", ap.ID),
			zap.String("status", ap.Status),
		)
		return nil
	}

	h.log.Info("appointment reminder",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("barbershop_id", ap.BarbershopID),
		zap.String("client", ap.Client.Name),
		zap.String("phone", ap.Client.Phone),
		zap.String("service", ap.Service.Name),
		zap.Time("start_time", ap.StartTime),
	)

	h.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		Action:       "appointment_reminder",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return nil
}

func NewServeMux(h *ReminderHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeAppointmentReminder, h)
	return mux
}
