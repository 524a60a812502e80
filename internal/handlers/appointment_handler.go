package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

// ======================================================
// USE CASE PORTS
// ======================================================

type appointmentCreator interface {
	Execute(ctx context.Context, in ucAppointment.CreateAppointmentInput) (*models.Appointment, error)
}

type appointmentTransition interface {
	Execute(ctx context.Context, barbershopID, barberID, appointmentID uint) (*models.Appointment, error)
}

type appointmentsByDate interface {
	Execute(ctx context.Context, barberID, barbershopID uint, date string) ([]dto.AppointmentListDTO, error)
}

type appointmentsByMonth interface {
	Execute(ctx context.Context, barberID, barbershopID uint, year, month int) ([]dto.AppointmentListDTO, error)
}

type checkoutCreator interface {
	Execute(ctx context.Context, barbershopID, barberID, appointmentID uint) (*domain.Checkout, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   appointmentCreator
	complete appointmentTransition
	cancel   appointmentTransition
	byDate   appointmentsByDate
	byMonth  appointmentsByMonth
	checkout checkoutCreator
}

func NewAppointmentHandler(
	create appointmentCreator,
	complete appointmentTransition,
	cancel appointmentTransition,
	byDate appointmentsByDate,
	byMonth appointmentsByMonth,
	checkout checkoutCreator,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		complete: complete,
		cancel:   cancel,
		byDate:   byDate,
		byMonth:  byMonth,
		checkout: checkout,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	// Defaults to the authenticated barber.
	BarberID uint `json:"barber_id"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	ServiceID uint `json:"service_id"`
	// Accepted for older clients.
	ProductID uint `json:"product_id"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

func (r CreateAppointmentRequest) service() uint {
	if r.ServiceID != 0 {
		return r.ServiceID
	}
	return r.ProductID
}

// ======================================================
// CREATE
// ======================================================

// @Summary Book an appointment (walk-in or phone)
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAppointmentRequest true "Booking"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} httperr.HTTPError
// @Failure 409 {object} httperr.HTTPError
// @Router /me/appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, barbershopID := staffIDs(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.service() == 0 {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barberID := req.BarberID
	if barberID == 0 {
		barberID = userID
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ServiceID:    req.service(),
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		ActorID:      &userID,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

// @Summary Agenda of the authenticated barber for one date
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {array} dto.AppointmentListDTO
// @Router /me/appointments [get]
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	userID, barbershopID := staffIDs(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	out, err := h.byDate.Execute(c.Request.Context(), userID, barbershopID, date)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	userID, barbershopID := staffIDs(c)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_period", "Ano e mês obrigatórios.")
		return
	}

	out, err := h.byMonth.Execute(c.Request.Context(), userID, barbershopID, year, month)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// COMPLETE / CANCEL
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.complete, "failed_to_complete_appointment")
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancel, "failed_to_cancel_appointment")
}

func (h *AppointmentHandler) transition(c *gin.Context, uc appointmentTransition, fallback string) {
	userID, barbershopID := staffIDs(c)

	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := uc.Execute(c.Request.Context(), barbershopID, userID, id)
	if err != nil {
		httperr.FromError(c, err, fallback)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CHECKOUT
// ======================================================

// @Summary Payment link for an appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 201 {object} appointment.Checkout
// @Failure 503 {object} httperr.HTTPError
// @Router /me/appointments/{id}/checkout [post]
func (h *AppointmentHandler) Checkout(c *gin.Context) {
	userID, barbershopID := staffIDs(c)

	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	out, err := h.checkout.Execute(c.Request.Context(), barbershopID, userID, id)
	if err != nil {
		httperr.FromError(c, err, "checkout_failed")
		return
	}

	c.JSON(http.StatusCreated, out)
}
