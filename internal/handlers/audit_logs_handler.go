package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditPageSize)))
	if limit <= 0 || limit > maxAuditPageSize {
		limit = defaultAuditPageSize
	}
	return page, limit
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	_, barbershopID := staffIDs(c)

	from, to, ok := dateRange(c)
	if !ok {
		httperr.BadRequest(c, "invalid_date_range", "Período inválido. Use YYYY-MM-DD.")
		return
	}

	page, limit := pagination(c)

	// --------------------------------------------------
	// Query base (sempre protegido por barbershop)
	// --------------------------------------------------

	q := h.db.
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", barbershopID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	// Dias do filtro são lidos no fuso da barbearia.
	if from != nil || to != nil {
		tz := shopTimezone(h.db, barbershopID)
		if from != nil {
			start, _ := timezone.ParseDate(tz, from.Format(timezone.DateLayout))
			q = q.Where("created_at >= ?", start)
		}
		if to != nil {
			end, _ := timezone.ParseDate(tz, to.Format(timezone.DateLayout))
			q = q.Where("created_at < ?", timezone.NextDay(end))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Paged(c, logs, page, limit, total)
}
