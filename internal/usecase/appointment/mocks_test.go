package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type mockRepo struct {
	mock.Mock
}

var _ domain.Repository = (*mockRepo)(nil)

func (m *mockRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	return fn(m)
}

func (m *mockRepo) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	args := m.Called(ctx, id)
	shop, _ := args.Get(0).(*models.Barbershop)
	return shop, args.Error(1)
}

func (m *mockRepo) GetBarber(ctx context.Context, barberID uint) (*models.User, error) {
	args := m.Called(ctx, barberID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockRepo) LockBarber(ctx context.Context, barberID uint) error {
	return m.Called(ctx, barberID).Error(0)
}

func (m *mockRepo) GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	args := m.Called(ctx, barbershopID, serviceID)
	s, _ := args.Get(0).(*models.Service)
	return s, args.Error(1)
}

func (m *mockRepo) GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string, userID *uint) (*models.Client, error) {
	args := m.Called(ctx, barbershopID, name, phone, email, userID)
	c, _ := args.Get(0).(*models.Client)
	return c, args.Error(1)
}

func (m *mockRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	if args.Error(0) == nil {
		ap.ID = 99
	}
	return args.Error(0)
}

func (m *mockRepo) AssertNoTimeConflict(ctx context.Context, barberID uint, start, end time.Time) error {
	return m.Called(ctx, barberID, start, end).Error(0)
}

func (m *mockRepo) GetAppointmentForBarber(ctx context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID, barberID)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (m *mockRepo) GetAppointmentForClientUser(ctx context.Context, appointmentID, userID uint) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID, userID)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (m *mockRepo) TransitionAppointment(ctx context.Context, ap *models.Appointment, from domain.Status) error {
	return m.Called(ctx, ap, from).Error(0)
}

func (m *mockRepo) CreateCashEntry(ctx context.Context, entry *models.CashEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockRepo) ListWorkingSlots(ctx context.Context, barberID uint, weekday int) ([]models.WorkingSlot, error) {
	args := m.Called(ctx, barberID, weekday)
	s, _ := args.Get(0).([]models.WorkingSlot)
	return s, args.Error(1)
}

func (m *mockRepo) IsDateBlocked(ctx context.Context, barberID uint, date time.Time) (bool, error) {
	args := m.Called(ctx, barberID, date)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ListOccupied(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, barberID, start, end)
	aps, _ := args.Get(0).([]models.Appointment)
	return aps, args.Error(1)
}

func (m *mockRepo) ListAppointmentsForPeriod(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, barberID, start, end)
	aps, _ := args.Get(0).([]models.Appointment)
	return aps, args.Error(1)
}

func (m *mockRepo) ListAppointmentsForClientUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	args := m.Called(ctx, userID)
	aps, _ := args.Get(0).([]models.Appointment)
	return aps, args.Error(1)
}

// ---- fakes ----

type auditRecorder struct {
	events []audit.Event
}

func (r *auditRecorder) Dispatch(ev audit.Event) {
	r.events = append(r.events, ev)
}

type memoryCache struct {
	entries     map[string][]string
	invalidated []string
	generation  int

	// onVersion runs right after a version is handed out.
	onVersion func()
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]string{}}
}

func cacheKey(barberID uint, date string, serviceID uint) string {
	return fmt.Sprintf("%d:%s:%d", barberID, date, serviceID)
}

func (c *memoryCache) Get(_ context.Context, barberID uint, date string, serviceID uint) ([]string, bool) {
	v, ok := c.entries[cacheKey(barberID, date, serviceID)]
	return v, ok
}

func (c *memoryCache) Version(context.Context, uint, string) string {
	v := fmt.Sprint(c.generation)
	if c.onVersion != nil {
		c.onVersion()
	}
	return v
}

func (c *memoryCache) Set(_ context.Context, barberID uint, date string, serviceID uint, version string, slots []string) {
	if version != fmt.Sprint(c.generation) {
		return
	}
	c.entries[cacheKey(barberID, date, serviceID)] = slots
}

func (c *memoryCache) put(barberID uint, date string, serviceID uint, slots []string) {
	c.entries[cacheKey(barberID, date, serviceID)] = slots
}

func (c *memoryCache) InvalidateDay(_ context.Context, barberID uint, date string) {
	c.generation++
	c.invalidated = append(c.invalidated, date)
	for k := range c.entries {
		if strings.HasPrefix(k, fmt.Sprintf("%d:%s:", barberID, date)) {
			delete(c.entries, k)
		}
	}
}

func (c *memoryCache) InvalidateBarber(_ context.Context, _ uint) {
	c.generation++
	c.invalidated = append(c.invalidated, "*")
	c.entries = map[string][]string{}
}

type reminderRecorder struct {
	scheduled []uint
	cancelled []uint
}

func (r *reminderRecorder) ScheduleReminder(_ context.Context, ap *models.Appointment) error {
	r.scheduled = append(r.scheduled, ap.ID)
	return nil
}

func (r *reminderRecorder) CancelReminder(_ context.Context, id uint) error {
	r.cancelled = append(r.cancelled, id)
	return nil
}

// ---- fixtures ----

const shopTZ = "America/Sao_Paulo"

func uintPtr(v uint) *uint { return &v }

func fixtureShop() *models.Barbershop {
	return &models.Barbershop{
		ID:                 1,
		Name:               "Navalha",
		Slug:               "navalha",
		Timezone:           shopTZ,
		MinAdvanceMinutes:  30,
		SlotGranularityMin: 30,
	}
}

func fixtureBarber() *models.User {
	return &models.User{ID: 3, BarbershopID: uintPtr(1), Name: "Zé", Role: models.RoleBarber}
}

func fixtureService() *models.Service {
	return &models.Service{ID: 8, BarbershopID: 1, Name: "Corte", DurationMin: 30, Active: true}
}

func morning() []models.WorkingSlot {
	return []models.WorkingSlot{{BarberID: 3, Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true}}
}

// shopTime builds an instant from a wall-clock reading in the shop timezone.
func shopTime(y int, mo time.Month, d, h, mi int) time.Time {
	loc, _ := time.LoadLocation(shopTZ)
	return time.Date(y, mo, d, h, mi, 0, 0, loc)
}

func at(t time.Time) any {
	return mock.MatchedBy(func(v time.Time) bool { return v.Equal(t) })
}
