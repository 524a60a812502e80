package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

const (
	minSlotGranularity = 5
	maxSlotGranularity = 240
)

type BarbershopHandler struct {
	db    *gorm.DB
	cache domain.AvailabilityCache
	audit audit.Sink
}

func NewBarbershopHandler(db *gorm.DB, cache domain.AvailabilityCache, sink audit.Sink) *BarbershopHandler {
	return &BarbershopHandler{db: db, cache: cache, audit: sink}
}

type UpdateBarbershopRequest struct {
	Name               *string `json:"name"`
	Phone              *string `json:"phone"`
	Address            *string `json:"address"`
	Timezone           *string `json:"timezone"`
	MinAdvanceMinutes  *int    `json:"min_advance_minutes"`
	SlotGranularityMin *int    `json:"slot_granularity_min"`
}

func (h *BarbershopHandler) load(c *gin.Context) (*models.Barbershop, bool) {
	_, barbershopID := staffIDs(c)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return nil, false
	}
	return &shop, true
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	// Mudanças de agenda (fuso, antecedência, intervalo) invalidam o cache.
	scheduleChanged := false

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome da barbearia obrigatório.")
			return
		}
		shop.Name = name
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		scheduleChanged = scheduleChanged || shop.Timezone != *req.Timezone
		shop.Timezone = *req.Timezone
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		scheduleChanged = scheduleChanged || shop.MinAdvanceMinutes != *req.MinAdvanceMinutes
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.SlotGranularityMin != nil {
		g := *req.SlotGranularityMin
		if g < minSlotGranularity || g > maxSlotGranularity {
			httperr.BadRequest(c, "invalid_slot_granularity", "Intervalo entre horários deve ficar entre 5 e 240 minutos.")
			return
		}
		scheduleChanged = scheduleChanged || shop.SlotGranularityMin != g
		shop.SlotGranularityMin = g
	}

	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	if scheduleChanged {
		for _, id := range barberIDs(h.db, shop.ID) {
			h.cache.InvalidateBarber(c.Request.Context(), id)
		}
	}

	userID, _ := staffIDs(c)
	h.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       &userID,
		Action:       "barbershop_updated",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
		Metadata:     req,
	})

	c.JSON(http.StatusOK, shop)
}
