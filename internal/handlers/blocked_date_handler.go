package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type BlockedDateHandler struct {
	db    *gorm.DB
	cache domain.AvailabilityCache
	audit audit.Sink
}

func NewBlockedDateHandler(db *gorm.DB, cache domain.AvailabilityCache, sink audit.Sink) *BlockedDateHandler {
	return &BlockedDateHandler{db: db, cache: cache, audit: sink}
}

type CreateBlockedDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

func (h *BlockedDateHandler) List(c *gin.Context) {
	barberID, _ := staffIDs(c)

	from, to, ok := dateRange(c)
	if !ok {
		httperr.BadRequest(c, "invalid_date_range", "Período inválido. Use YYYY-MM-DD.")
		return
	}

	q := h.db.Where("barber_id = ?", barberID)
	if from != nil {
		q = q.Where("date >= ?", from.Format(timezone.DateLayout))
	}
	if to != nil {
		q = q.Where("date <= ?", to.Format(timezone.DateLayout))
	}

	var dates []models.BlockedDate
	if err := q.Order("date ASC").Find(&dates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocked_dates", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, dates)
}

func (h *BlockedDateHandler) Create(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	var req CreateBlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	day, ok := civilDate(req.Date)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "Data inválida. Use YYYY-MM-DD.")
		return
	}

	blocked := models.BlockedDate{
		BarberID: barberID,
		Date:     datatypes.Date(day),
		Reason:   strings.TrimSpace(req.Reason),
	}

	if err := h.db.Create(&blocked).Error; err != nil {
		if httperr.IsConflict(err) {
			httperr.Conflict(c, "date_already_blocked", "Essa data já está bloqueada.")
			return
		}
		httperr.Internal(c, "failed_to_block_date", "Erro ao bloquear data.")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), barberID, req.Date)

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "date_blocked",
		Entity:       "blocked_date",
		EntityID:     &blocked.ID,
		Metadata:     gin.H{"date": req.Date},
	})

	c.JSON(http.StatusCreated, blocked)
}

func (h *BlockedDateHandler) Delete(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var blocked models.BlockedDate
	if err := h.db.Where("id = ? AND barber_id = ?", id, barberID).First(&blocked).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "blocked_date_not_found", "Bloqueio não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_blocked_date", "Erro ao buscar bloqueio.")
		return
	}

	if err := h.db.Delete(&blocked).Error; err != nil {
		httperr.Internal(c, "failed_to_unblock_date", "Erro ao remover bloqueio.")
		return
	}

	date := timezone.CivilDate(time.Time(blocked.Date)).Format(timezone.DateLayout)
	h.cache.InvalidateDay(c.Request.Context(), barberID, date)

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "date_unblocked",
		Entity:       "blocked_date",
		EntityID:     &blocked.ID,
		Metadata:     gin.H{"date": date},
	})

	c.Status(http.StatusNoContent)
}
