package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func newMockRepo(t *testing.T) (*AppointmentGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewAppointmentGormRepository(gdb), mock
}

func TestGetBarbershopByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "barbershops"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetBarbershopByID(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBarbershopByID_DatabaseError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "barbershops"`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetBarbershopByID(context.Background(), 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestAssertNoTimeConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2030, 7, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments" WHERE .*status <> 'cancelled'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := repo.AssertNoTimeConflict(context.Background(), 3, start, start.Add(30*time.Minute))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	assert.NoError(t, repo.AssertNoTimeConflict(context.Background(), 3, start, start.Add(30*time.Minute)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWorkingSlots(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "working_slots" WHERE barber_id = \$1 AND weekday = \$2 AND active = \$3 ORDER BY start_time ASC`).
		WithArgs(3, 1, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "barber_id", "weekday", "start_time", "end_time", "active"}).
			AddRow(1, 3, 1, "09:00", "12:00", true).
			AddRow(2, 3, 1, "14:00", "18:00", true))

	slots, err := repo.ListWorkingSlots(context.Background(), 3, 1)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "14:00", slots[1].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDateBlocked(t *testing.T) {
	repo, mock := newMockRepo(t)
	day := time.Date(2030, 7, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "blocked_dates" WHERE barber_id = \$1 AND date = \$2`).
		WithArgs(3, "2030-07-15").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	blocked, err := repo.IsDateBlocked(context.Background(), 3, day)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOccupied_SkipsCancelled(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2030, 7, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT "id","start_time","end_time","status" FROM "appointments" WHERE barber_id = \$1 AND status <> 'cancelled'`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "end_time", "status"}).
			AddRow(9, start.Add(10*time.Hour), start.Add(10*time.Hour+30*time.Minute), "scheduled"))

	apps, err := repo.ListOccupied(context.Background(), 3, start, start.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, uint(9), apps[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionAppointment(t *testing.T) {
	now := time.Date(2030, 7, 15, 20, 0, 0, 0, time.UTC)
	ap := &models.Appointment{ID: 5, Status: "cancelled", CancelledAt: &now}

	t.Run("updates while still scheduled", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE "appointments" SET .* WHERE id = \$5 AND status = \$6`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "cancelled", sqlmock.AnyArg(), 5, "scheduled").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.TransitionAppointment(context.Background(), ap, domain.StatusScheduled))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row already moved on", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE "appointments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.TransitionAppointment(context.Background(), ap, domain.StatusScheduled)
		assert.ErrorIs(t, err, domain.ErrStatusChanged)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
