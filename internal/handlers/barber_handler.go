package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// BarberHandler manages the staff of the caller's barbershop.
type BarberHandler struct {
	db    *gorm.DB
	audit audit.Sink
}

func NewBarberHandler(db *gorm.DB, sink audit.Sink) *BarberHandler {
	return &BarberHandler{db: db, audit: sink}
}

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

func (h *BarberHandler) List(c *gin.Context) {
	_, barbershopID := staffIDs(c)

	var barbers []models.User
	if err := h.db.
		Where("barbershop_id = ? AND role IN ?", barbershopID, []string{models.RoleOwner, models.RoleBarber}).
		Order("name ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	out := make([]gin.H, 0, len(barbers))
	for i := range barbers {
		out = append(out, userPayload(&barbers[i]))
	}

	c.JSON(http.StatusOK, out)
}

func (h *BarberHandler) Create(c *gin.Context) {
	ownerID, barbershopID := staffIDs(c)

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro interno.")
		return
	}

	barber := models.User{
		BarbershopID: &barbershopID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleBarber,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		if httperr.IsConflict(err) {
			httperr.BadRequest(c, "email_already_exists", "E-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_barber", "Erro ao cadastrar barbeiro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &ownerID,
		Action:       "barber_created",
		Entity:       "user",
		EntityID:     &barber.ID,
	})

	c.JSON(http.StatusCreated, userPayload(&barber))
}
