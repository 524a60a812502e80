package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// ErrStatusChanged is returned when a status transition finds the row no
// longer in the expected status.
var ErrStatusChanged = errors.New("appointment status changed")

type Repository interface {
	// Transaction runs fn against a repository bound to one DB transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Barbershop / staff --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarber(
		ctx context.Context,
		barberID uint,
	) (*models.User, error)

	// LockBarber serializes bookings of one barber until the transaction ends.
	LockBarber(
		ctx context.Context,
		barberID uint,
	) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
		userID *uint,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	GetAppointmentForClientUser(
		ctx context.Context,
		appointmentID uint,
		userID uint,
	) (*models.Appointment, error)

	// TransitionAppointment writes ap's status and timestamps only while the
	// stored row still holds from.
	TransitionAppointment(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	CreateCashEntry(
		ctx context.Context,
		entry *models.CashEntry,
	) error

	// -------- Availability --------
	ListWorkingSlots(
		ctx context.Context,
		barberID uint,
		weekday int,
	) ([]models.WorkingSlot, error)

	IsDateBlocked(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) (bool, error)

	// ListOccupied returns non-cancelled appointments starting in [start, end).
	ListOccupied(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForClientUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)
}
