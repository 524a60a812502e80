package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

type clientAppointmentLister interface {
	Execute(ctx context.Context, userID uint) ([]dto.AppointmentListDTO, error)
}

type clientAppointmentCanceller interface {
	ExecuteForClient(ctx context.Context, userID, appointmentID uint) (*models.Appointment, error)
}

// ClientAppointmentHandler serves bookings made from a client account.
type ClientAppointmentHandler struct {
	db     *gorm.DB
	create appointmentCreator
	list   clientAppointmentLister
	cancel clientAppointmentCanceller
}

func NewClientAppointmentHandler(
	db *gorm.DB,
	create appointmentCreator,
	list clientAppointmentLister,
	cancel clientAppointmentCanceller,
) *ClientAppointmentHandler {
	return &ClientAppointmentHandler{db: db, create: create, list: list, cancel: cancel}
}

type ClientCreateAppointmentRequest struct {
	BarbershopSlug string `json:"barbershop_slug" binding:"required"`
	// Defaults to the barbershop owner.
	BarberID  uint   `json:"barber_id"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

func (h *ClientAppointmentHandler) Create(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var req ClientCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if isNotFound(err) {
			httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Erro ao buscar usuário.")
		return
	}

	shop, err := findShopBySlug(h.db, req.BarbershopSlug)
	if err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar barbearia.")
		return
	}

	barberID := req.BarberID
	if barberID == 0 {
		owner, err := shopOwner(h.db, shop.ID)
		if err != nil {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		barberID = owner.ID
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: shop.ID,
		BarberID:     barberID,
		ClientName:   user.Name,
		ClientPhone:  user.Phone,
		ClientEmail:  user.Email,
		ClientUserID: &user.ID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *ClientAppointmentHandler) List(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context(), c.GetUint(middleware.ContextUserID))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ClientAppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.cancel.ExecuteForClient(c.Request.Context(), c.GetUint(middleware.ContextUserID), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_cancel_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func shopOwner(db *gorm.DB, barbershopID uint) (*models.User, error) {
	var owner models.User
	if err := db.
		Where("barbershop_id = ? AND role = ?", barbershopID, models.RoleOwner).
		Order("id ASC").
		First(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}
