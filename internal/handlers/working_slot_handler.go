package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type WorkingSlotHandler struct {
	db    *gorm.DB
	cache domain.AvailabilityCache
	audit audit.Sink
}

func NewWorkingSlotHandler(db *gorm.DB, cache domain.AvailabilityCache, sink audit.Sink) *WorkingSlotHandler {
	return &WorkingSlotHandler{db: db, cache: cache, audit: sink}
}

type WorkingSlotInput struct {
	Weekday   *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    *bool  `json:"active"`
}

type WorkingSlotsUpdateRequest struct {
	Slots []WorkingSlotInput `json:"slots" binding:"dive"`
}

func (h *WorkingSlotHandler) Get(c *gin.Context) {
	barberID, _ := staffIDs(c)

	var slots []models.WorkingSlot
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&slots).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_slots", "Erro ao buscar horários de trabalho.")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// Update replaces the caller's whole week.
func (h *WorkingSlotHandler) Update(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	var req WorkingSlotsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	toCreate, code, err := buildWorkingSlots(barberID, req.Slots)
	if err != nil {
		httperr.BadRequest(c, code, err.Error())
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingSlot{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_slots", "Erro ao salvar horários de trabalho.")
		return
	}

	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "working_slots_updated",
		Entity:       "working_slot",
		Metadata:     gin.H{"count": len(toCreate)},
	})

	c.JSON(http.StatusOK, toCreate)
}

// buildWorkingSlots validates the submitted week: "HH:MM" bounds, start before
// end and no two active slots overlapping on the same weekday.
func buildWorkingSlots(barberID uint, in []WorkingSlotInput) ([]models.WorkingSlot, string, error) {
	byDay := make(map[int][]availability.Range)
	out := make([]models.WorkingSlot, 0, len(in))

	for _, s := range in {
		start, err := availability.ParseClock(s.StartTime)
		if err != nil {
			return nil, "invalid_time", fmt.Errorf("Horário inválido: %s", s.StartTime)
		}
		end, err := availability.ParseClock(s.EndTime)
		if err != nil {
			return nil, "invalid_time", fmt.Errorf("Horário inválido: %s", s.EndTime)
		}

		r := availability.Range{Start: start, End: end}
		if !r.Valid() {
			return nil, "invalid_range", fmt.Errorf("Início deve ser antes do fim (%s-%s).", s.StartTime, s.EndTime)
		}

		active := s.Active == nil || *s.Active
		if active {
			byDay[*s.Weekday] = append(byDay[*s.Weekday], r)
		}

		out = append(out, models.WorkingSlot{
			BarberID:  barberID,
			Weekday:   *s.Weekday,
			StartTime: availability.FormatClock(start),
			EndTime:   availability.FormatClock(end),
			Active:    active,
		})
	}

	for day, ranges := range byDay {
		if availability.HasOverlaps(ranges) {
			return nil, "overlapping_slots", fmt.Errorf("Horários sobrepostos no dia %d.", day)
		}
	}

	return out, "", nil
}
