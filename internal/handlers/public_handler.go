package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	availability availabilityFinder
	create       appointmentCreator
}

func NewPublicHandler(
	db *gorm.DB,
	availability availabilityFinder,
	create appointmentCreator,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id"`
	ProductID   uint   `json:"product_id"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

// shopFromSlug writes the error response itself and returns nil on failure.
func (h *PublicHandler) shopFromSlug(c *gin.Context) *models.Barbershop {
	shop, err := findShopBySlug(h.db, c.Param("slug"))
	if err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return nil
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar barbearia.")
		return nil
	}
	return shop
}

// barberForShop resolves an explicit barber id or falls back to the owner.
func (h *PublicHandler) barberForShop(c *gin.Context, shop *models.Barbershop, requested uint) (uint, bool) {
	if requested != 0 {
		return requested, true
	}
	owner, err := shopOwner(h.db, shop.ID)
	if err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return 0, false
	}
	return owner.ID, true
}

////////////////////////////////////////////////////////
// BARBERSHOPS
////////////////////////////////////////////////////////

// @Summary Browse barbershops
// @Tags Public
// @Produce json
// @Param query query string false "Name filter"
// @Success 200 {array} dto.PublicBarbershopDTO
// @Router /public/barbershops [get]
func (h *PublicHandler) ListBarbershops(c *gin.Context) {
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Table("barbershops").
		Select(`barbershops.id, barbershops.name, barbershops.slug, barbershops.phone, barbershops.address,
			COALESCE(AVG(reviews.rating), 0) AS average_rating,
			COUNT(reviews.id) AS review_count`).
		Joins("LEFT JOIN reviews ON reviews.barbershop_id = barbershops.id").
		Group("barbershops.id")

	if query != "" {
		q = q.Where("LOWER(barbershops.name) LIKE ?", "%"+query+"%")
	}

	var out []dto.PublicBarbershopDTO
	if err := q.Order("barbershops.name ASC").Scan(&out).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbershops", "Erro ao listar barbearias.")
		return
	}
	if out == nil {
		out = []dto.PublicBarbershopDTO{}
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop := h.shopFromSlug(c)
	if shop == nil {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("barbershop_id = ? AND active = ?", shop.ID, true)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	services := []models.Service{}
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"products":   services,
	})
}

////////////////////////////////////////////////////////
// BARBERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop := h.shopFromSlug(c)
	if shop == nil {
		return
	}

	var users []models.User
	if err := h.db.
		Where("barbershop_id = ? AND role IN ?", shop.ID, []string{models.RoleOwner, models.RoleBarber}).
		Order("id ASC").
		Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	out := make([]dto.PublicBarberDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.PublicBarberDTO{ID: u.ID, Name: u.Name, Role: u.Role})
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// @Summary Free start times by barbershop slug
// @Tags Public
// @Produce json
// @Param slug path string true "Barbershop slug"
// @Param date query string true "YYYY-MM-DD"
// @Param service_id query int false "Service ID (or product_id)"
// @Param barber_id query int false "Barber ID, defaults to the owner"
// @Success 200 {object} appointment.AvailabilityResult
// @Router /public/{slug}/availability [get]
func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	serviceID, present, ok := uintQuery(c, "service_id", "product_id")
	if date == "" || !present {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}
	if _, ok := civilDate(date); !ok {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	requestedBarber, present, ok := uintQuery(c, "barber_id")
	if present && !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	shop := h.shopFromSlug(c)
	if shop == nil {
		return
	}

	barberID, ok := h.barberForShop(c, shop, requestedBarber)
	if !ok {
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     barberID,
		ServiceID:    serviceID,
		Date:         date,
	})
	if err != nil {
		httperr.FromError(c, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, res)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (GUEST)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	serviceID := req.ServiceID
	if serviceID == 0 {
		serviceID = req.ProductID
	}
	if serviceID == 0 {
		httperr.BadRequest(c, "invalid_request", "Serviço obrigatório.")
		return
	}

	shop := h.shopFromSlug(c)
	if shop == nil {
		return
	}

	barberID, ok := h.barberForShop(c, shop, req.BarberID)
	if !ok {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: shop.ID,
		BarberID:     barberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ServiceID:    serviceID,
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

////////////////////////////////////////////////////////
// REVIEWS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListReviews(c *gin.Context) {
	shop := h.shopFromSlug(c)
	if shop == nil {
		return
	}

	reviews := []models.Review{}
	if err := h.db.
		Where("barbershop_id = ?", shop.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Erro ao listar avaliações.")
		return
	}

	c.JSON(http.StatusOK, reviews)
}
