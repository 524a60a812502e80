package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

type stubAvailability struct {
	got domain.AvailabilityInput
	res *domain.AvailabilityResult
	err error
}

func (s *stubAvailability) Execute(_ context.Context, in domain.AvailabilityInput) (*domain.AvailabilityResult, error) {
	s.got = in
	return s.res, s.err
}

type stubCreator struct {
	got ucAppointment.CreateAppointmentInput
	err error
}

func (s *stubCreator) Execute(_ context.Context, in ucAppointment.CreateAppointmentInput) (*models.Appointment, error) {
	s.got = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.Appointment{ID: 99, BarberID: in.BarberID, ServiceID: in.ServiceID, Status: "scheduled"}, nil
}

type stubTransition struct {
	barbershopID, barberID, id uint
	err                        error
}

func (s *stubTransition) Execute(_ context.Context, barbershopID, barberID, id uint) (*models.Appointment, error) {
	s.barbershopID, s.barberID, s.id = barbershopID, barberID, id
	if s.err != nil {
		return nil, s.err
	}
	return &models.Appointment{ID: id, Status: "cancelled"}, nil
}

type stubByDate struct{ date string }

func (s *stubByDate) Execute(_ context.Context, _, _ uint, date string) ([]dto.AppointmentListDTO, error) {
	s.date = date
	if date == "15/07/2030" {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	return []dto.AppointmentListDTO{{ID: 1, ClientName: "João"}}, nil
}

type stubByMonth struct{}

func (stubByMonth) Execute(_ context.Context, _, _ uint, _, month int) ([]dto.AppointmentListDTO, error) {
	if month > 12 {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	return []dto.AppointmentListDTO{}, nil
}

type stubCheckout struct{ err error }

func (s stubCheckout) Execute(_ context.Context, _, _, _ uint) (*domain.Checkout, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Checkout{PreferenceID: "pref-1", InitPoint: "https://mp.test/pref-1"}, nil
}

func availabilityRouter(uc availabilityFinder) *gin.Engine {
	r := gin.New()
	r.GET("/api/availability", NewAvailabilityHandler(uc).Get)
	return r
}

func TestAvailabilityHandler_Get(t *testing.T) {
	uc := &stubAvailability{res: &domain.AvailabilityResult{
		BarberID: 3, ServiceID: 8, Date: "2030-07-15",
		Slots: []string{"09:00", "09:30"},
	}}

	w := doJSON(availabilityRouter(uc), http.MethodGet, "/api/availability?barberId=3&date=2030-07-15&serviceId=8", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out domain.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, []string{"09:00", "09:30"}, out.Slots)
	assert.Equal(t, domain.AvailabilityInput{BarberID: 3, ServiceID: 8, Date: "2030-07-15"}, uc.got)
}

func TestAvailabilityHandler_Validation(t *testing.T) {
	uc := &stubAvailability{}
	r := availabilityRouter(uc)

	cases := map[string]string{
		"/api/availability?barberId=3&serviceId=8":                  "missing_params",
		"/api/availability?barberId=abc&date=2030-07-15&serviceId=8": "invalid_barber_id",
		"/api/availability?barberId=3&date=2030-07-15&serviceId=-1":  "invalid_service_id",
		"/api/availability?barberId=999&date=15-07-2030&serviceId=8":  "invalid_date",
		"/api/availability?barberId=3&date=2030-02-30&serviceId=8":   "invalid_date",
	}

	for path, code := range cases {
		w := doJSON(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, code, decodeError(t, w).Code, path)
	}
	assert.Zero(t, uc.got, "use case must not run on invalid input")
}

func TestAvailabilityHandler_BusinessErrors(t *testing.T) {
	for code, status := range map[string]int{
		"barber_not_found":  http.StatusNotFound,
		"service_not_found": http.StatusNotFound,
		"invalid_date":      http.StatusBadRequest,
	} {
		r := availabilityRouter(&stubAvailability{err: httperr.ErrBusiness(code)})
		w := doJSON(r, http.MethodGet, "/api/availability?barberId=3&date=2030-07-15&serviceId=8", nil)

		assert.Equal(t, status, w.Code, code)
		assert.Equal(t, code, decodeError(t, w).Code)
	}

	r := availabilityRouter(&stubAvailability{err: errors.New("db down")})
	w := doJSON(r, http.MethodGet, "/api/availability?barberId=3&date=2030-07-15&serviceId=8", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "availability_failed", decodeError(t, w).Code)
}

func appointmentRouter(h *AppointmentHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/me", asStaff(3, 1))
	g.POST("/appointments", h.Create)
	g.GET("/appointments", h.ListByDate)
	g.GET("/appointments/month", h.ListByMonth)
	g.PATCH("/appointments/:id/cancel", h.Cancel)
	g.PATCH("/appointments/:id/complete", h.Complete)
	g.POST("/appointments/:id/checkout", h.Checkout)
	return r
}

func newTestAppointmentHandler(create *stubCreator, cancel *stubTransition, checkout stubCheckout) *AppointmentHandler {
	return NewAppointmentHandler(create, &stubTransition{}, cancel, &stubByDate{}, stubByMonth{}, checkout)
}

func TestAppointmentHandler_Create(t *testing.T) {
	create := &stubCreator{}
	r := appointmentRouter(newTestAppointmentHandler(create, &stubTransition{}, stubCheckout{}))

	w := doJSON(r, http.MethodPost, "/api/me/appointments", gin.H{
		"client_name":  "João",
		"client_phone": "11999990000",
		"product_id":   8,
		"date":         "2030-07-15",
		"time":         "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, uint(1), create.got.BarbershopID)
	assert.Equal(t, uint(3), create.got.BarberID, "barber defaults to the caller")
	assert.Equal(t, uint(8), create.got.ServiceID)
	require.NotNil(t, create.got.ActorID)
	assert.Equal(t, uint(3), *create.got.ActorID)
}

func TestAppointmentHandler_CreateErrors(t *testing.T) {
	r := appointmentRouter(newTestAppointmentHandler(&stubCreator{}, &stubTransition{}, stubCheckout{}))
	w := doJSON(r, http.MethodPost, "/api/me/appointments", gin.H{
		"client_name": "João", "client_phone": "1199", "date": "2030-07-15", "time": "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "service is required")

	r = appointmentRouter(newTestAppointmentHandler(
		&stubCreator{err: httperr.ErrBusiness("time_conflict")}, &stubTransition{}, stubCheckout{},
	))
	w = doJSON(r, http.MethodPost, "/api/me/appointments", gin.H{
		"client_name": "João", "client_phone": "1199", "service_id": 8, "date": "2030-07-15", "time": "10:00",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "time_conflict", decodeError(t, w).Code)
}

func TestAppointmentHandler_Lists(t *testing.T) {
	r := appointmentRouter(newTestAppointmentHandler(&stubCreator{}, &stubTransition{}, stubCheckout{}))

	w := doJSON(r, http.MethodGet, "/api/me/appointments?date=2030-07-15", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/me/appointments", nil)
	assert.Equal(t, "missing_date", decodeError(t, w).Code)

	w = doJSON(r, http.MethodGet, "/api/me/appointments?date=15/07/2030", nil)
	assert.Equal(t, "invalid_date", decodeError(t, w).Code)

	w = doJSON(r, http.MethodGet, "/api/me/appointments/month?year=2030&month=7", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/me/appointments/month?year=2030", nil)
	assert.Equal(t, "invalid_period", decodeError(t, w).Code)
}

func TestAppointmentHandler_Cancel(t *testing.T) {
	cancel := &stubTransition{}
	r := appointmentRouter(newTestAppointmentHandler(&stubCreator{}, cancel, stubCheckout{}))

	w := doJSON(r, http.MethodPatch, "/api/me/appointments/42/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [3]uint{1, 3, 42}, [3]uint{cancel.barbershopID, cancel.barberID, cancel.id})

	w = doJSON(r, http.MethodPatch, "/api/me/appointments/x/cancel", nil)
	assert.Equal(t, "invalid_id", decodeError(t, w).Code)

	cancel.err = httperr.ErrBusiness("invalid_state")
	w = doJSON(r, http.MethodPatch, "/api/me/appointments/42/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_state", decodeError(t, w).Code)
}

func TestAppointmentHandler_Checkout(t *testing.T) {
	r := appointmentRouter(newTestAppointmentHandler(&stubCreator{}, &stubTransition{}, stubCheckout{}))

	w := doJSON(r, http.MethodPost, "/api/me/appointments/42/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "pref-1")

	r = appointmentRouter(newTestAppointmentHandler(
		&stubCreator{}, &stubTransition{}, stubCheckout{err: httperr.ErrBusiness("payments_disabled")},
	))
	w = doJSON(r, http.MethodPost, "/api/me/appointments/42/checkout", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
