package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func (h *MeHandler) load(c *gin.Context) (*models.User, bool) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.Preload("Barbershop").First(&user, userID).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_user", "Erro ao buscar usuário.")
		return nil, false
	}
	return &user, true
}

func (h *MeHandler) respond(c *gin.Context, user *models.User) {
	body := gin.H{"user": userPayload(user)}
	if user.Barbershop != nil {
		body["barbershop"] = barbershopPayload(user.Barbershop)
	}
	c.JSON(http.StatusOK, body)
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}
	h.respond(c, user)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
			return
		}
		updates["name"] = name
		user.Name = name
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	if len(updates) > 0 {
		if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar perfil.")
			return
		}
	}

	h.respond(c, user)
}
