package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ReviewHandler struct {
	db    *gorm.DB
	audit audit.Sink
}

func NewReviewHandler(db *gorm.DB, sink audit.Sink) *ReviewHandler {
	return &ReviewHandler{db: db, audit: sink}
}

type CreateReviewRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment" binding:"max=500"`
}

// Create lets a client rate one of their own completed appointments, once.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos. A nota deve ser de 1 a 5.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Where("appointments.id = ? AND clients.user_id = ?", req.AppointmentID, userID).
		First(&ap).Error; err != nil {

		if isNotFound(err) {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Erro ao buscar agendamento.")
		return
	}

	if domain.Status(ap.Status) != domain.StatusCompleted {
		httperr.BadRequest(c, "appointment_not_completed", "Só é possível avaliar atendimentos concluídos.")
		return
	}

	review := models.Review{
		BarbershopID:  ap.BarbershopID,
		BarberID:      ap.BarberID,
		UserID:        userID,
		AppointmentID: ap.ID,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
	}

	if err := h.db.Create(&review).Error; err != nil {
		if httperr.IsConflict(err) {
			httperr.Conflict(c, "already_reviewed", "Esse atendimento já foi avaliado.")
			return
		}
		httperr.Internal(c, "failed_to_create_review", "Erro ao registrar avaliação.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		UserID:       &userID,
		Action:       "review_created",
		Entity:       "review",
		EntityID:     &review.ID,
		Metadata:     gin.H{"rating": review.Rating},
	})

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var review models.Review
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&review).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "review_not_found", "Avaliação não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_review", "Erro ao buscar avaliação.")
		return
	}

	if err := h.db.Delete(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_review", "Erro ao remover avaliação.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: review.BarbershopID,
		UserID:       &userID,
		Action:       "review_deleted",
		Entity:       "review",
		EntityID:     &review.ID,
	})

	c.Status(http.StatusNoContent)
}
