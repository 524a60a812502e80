package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS (BARBEIRO)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	_, barbershopID := staffIDs(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("barbershop_id = ?", barbershopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?)",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// History lists every appointment of one client, newest first.
func (h *ClientHandler) History(c *gin.Context) {
	_, barbershopID := staffIDs(c)

	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var client models.Client
	if err := h.db.Where("id = ? AND barbershop_id = ?", id, barbershopID).First(&client).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Service").
		Where("client_id = ? AND barbershop_id = ?", client.ID, barbershopID).
		Order("start_time DESC").
		Find(&appointments).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	appointmentsOut := make([]gin.H, 0, len(appointments))
	for _, ap := range appointments {
		appointmentsOut = append(appointmentsOut, gin.H{
			"id":           ap.ID,
			"barber_id":    ap.BarberID,
			"start_time":   ap.StartTime,
			"end_time":     ap.EndTime,
			"status":       ap.Status,
			"service_name": ap.Service.Name,
			"notes":        ap.Notes,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"client":       client,
		"appointments": appointmentsOut,
	})
}
