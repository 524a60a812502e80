package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// CashEntryHandler exposes the barbershop cash-flow ledger.
type CashEntryHandler struct {
	db    *gorm.DB
	audit audit.Sink
}

func NewCashEntryHandler(db *gorm.DB, sink audit.Sink) *CashEntryHandler {
	return &CashEntryHandler{db: db, audit: sink}
}

// --------- Requests ---------

type CreateCashEntryRequest struct {
	Type        string           `json:"type" binding:"required"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	OccurredOn  string           `json:"occurred_on"`
}

type UpdateCashEntryRequest struct {
	Type        *string          `json:"type,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	OccurredOn  *string          `json:"occurred_on,omitempty"`
}

func validCashType(t string) bool {
	return t == models.CashIncome || t == models.CashExpense
}

// --------- Handlers ---------

func (h *CashEntryHandler) List(c *gin.Context) {
	_, barbershopID := staffIDs(c)

	from, to, ok := dateRange(c)
	if !ok {
		httperr.BadRequest(c, "invalid_date_range", "Período inválido. Use YYYY-MM-DD.")
		return
	}

	entryType := strings.ToLower(strings.TrimSpace(c.Query("type")))
	if entryType != "" && !validCashType(entryType) {
		httperr.BadRequest(c, "invalid_type", "Tipo deve ser income ou expense.")
		return
	}

	q := h.scoped(barbershopID, from, to)
	if entryType != "" {
		q = q.Where("type = ?", entryType)
	}

	var entries []models.CashEntry
	if err := q.Order("occurred_on DESC, id DESC").Find(&entries).Error; err != nil {
		httperr.Internal(c, "failed_to_list_cash_entries", "Erro ao listar lançamentos.")
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *CashEntryHandler) Create(c *gin.Context) {
	userID, barbershopID := staffIDs(c)

	var req CreateCashEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entryType := strings.ToLower(strings.TrimSpace(req.Type))
	if !validCashType(entryType) {
		httperr.BadRequest(c, "invalid_type", "Tipo deve ser income ou expense.")
		return
	}
	if !req.Amount.IsPositive() {
		httperr.BadRequest(c, "invalid_amount", "Valor deve ser maior que zero.")
		return
	}

	var occurred time.Time
	if req.OccurredOn == "" {
		occurred = timezone.CivilDate(timezone.NowIn(shopTimezone(h.db, barbershopID)))
	} else {
		d, ok := civilDate(req.OccurredOn)
		if !ok {
			httperr.BadRequest(c, "invalid_date", "Data inválida. Use YYYY-MM-DD.")
			return
		}
		occurred = d
	}

	entry := models.CashEntry{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Type:         entryType,
		Category:     strings.ToLower(strings.TrimSpace(req.Category)),
		Description:  strings.TrimSpace(req.Description),
		Amount:       req.Amount.Round(2),
		OccurredOn:   datatypes.Date(occurred),
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_cash_entry", "Erro ao registrar lançamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "cash_entry_created",
		Entity:       "cash_entry",
		EntityID:     &entry.ID,
	})

	c.JSON(http.StatusCreated, entry)
}

func (h *CashEntryHandler) Update(c *gin.Context) {
	userID, barbershopID := staffIDs(c)

	entry, ok := h.load(c, barbershopID)
	if !ok {
		return
	}

	var req UpdateCashEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Type != nil {
		t := strings.ToLower(strings.TrimSpace(*req.Type))
		if !validCashType(t) {
			httperr.BadRequest(c, "invalid_type", "Tipo deve ser income ou expense.")
			return
		}
		entry.Type = t
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			httperr.BadRequest(c, "invalid_amount", "Valor deve ser maior que zero.")
			return
		}
		entry.Amount = req.Amount.Round(2)
	}
	if req.OccurredOn != nil {
		d, ok := civilDate(*req.OccurredOn)
		if !ok {
			httperr.BadRequest(c, "invalid_date", "Data inválida. Use YYYY-MM-DD.")
			return
		}
		entry.OccurredOn = datatypes.Date(d)
	}
	if req.Category != nil {
		entry.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Description != nil {
		entry.Description = strings.TrimSpace(*req.Description)
	}

	if err := h.db.Save(entry).Error; err != nil {
		httperr.Internal(c, "failed_to_update_cash_entry", "Erro ao atualizar lançamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "cash_entry_updated",
		Entity:       "cash_entry",
		EntityID:     &entry.ID,
		Metadata:     req,
	})

	c.JSON(http.StatusOK, entry)
}

func (h *CashEntryHandler) Delete(c *gin.Context) {
	userID, barbershopID := staffIDs(c)

	entry, ok := h.load(c, barbershopID)
	if !ok {
		return
	}

	if err := h.db.Delete(entry).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_cash_entry", "Erro ao remover lançamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "cash_entry_deleted",
		Entity:       "cash_entry",
		EntityID:     &entry.ID,
	})

	c.Status(http.StatusNoContent)
}

// Summary totals the ledger per type for the requested period.
func (h *CashEntryHandler) Summary(c *gin.Context) {
	_, barbershopID := staffIDs(c)

	from, to, ok := dateRange(c)
	if !ok {
		httperr.BadRequest(c, "invalid_date_range", "Período inválido. Use YYYY-MM-DD.")
		return
	}

	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	if err := h.scoped(barbershopID, from, to).
		Model(&models.CashEntry{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_summarize_cash", "Erro ao calcular o caixa.")
		return
	}

	out := dto.CashSummaryDTO{Income: decimal.Zero, Expense: decimal.Zero}
	if from != nil {
		out.From = from.Format(timezone.DateLayout)
	}
	if to != nil {
		out.To = to.Format(timezone.DateLayout)
	}

	for _, r := range rows {
		switch r.Type {
		case models.CashIncome:
			out.Income = r.Total
		case models.CashExpense:
			out.Expense = r.Total
		}
	}
	out.Balance = out.Income.Sub(out.Expense)

	c.JSON(http.StatusOK, out)
}

func (h *CashEntryHandler) scoped(barbershopID uint, from, to *time.Time) *gorm.DB {
	q := h.db.Where("barbershop_id = ?", barbershopID)
	if from != nil {
		q = q.Where("occurred_on >= ?", from.Format(timezone.DateLayout))
	}
	if to != nil {
		q = q.Where("occurred_on <= ?", to.Format(timezone.DateLayout))
	}
	return q
}

func (h *CashEntryHandler) load(c *gin.Context, barbershopID uint) (*models.CashEntry, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var entry models.CashEntry
	if err := h.db.Where("id = ? AND barbershop_id = ?", id, barbershopID).First(&entry).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "cash_entry_not_found", "Lançamento não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_cash_entry", "Erro ao buscar lançamento.")
		return nil, false
	}
	return &entry, true
}
