package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
)

type availabilityFinder interface {
	Execute(ctx context.Context, in domain.AvailabilityInput) (*domain.AvailabilityResult, error)
}

type AvailabilityHandler struct {
	availability availabilityFinder
}

func NewAvailabilityHandler(uc availabilityFinder) *AvailabilityHandler {
	return &AvailabilityHandler{availability: uc}
}

// @Summary Free start times of a barber
// @Description Start times ("HH:MM") at which the service fits the barber's agenda on the date
// @Tags Availability
// @Produce json
// @Param barberId query int true "Barber ID"
// @Param serviceId query int true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD) in the barbershop timezone"
// @Success 200 {object} appointment.AvailabilityResult
// @Failure 400 {object} httperr.HTTPError
// @Failure 404 {object} httperr.HTTPError
// @Failure 500 {object} httperr.HTTPError
// @Router /availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	date := c.Query("date")
	if date == "" || c.Query("barberId") == "" || c.Query("serviceId") == "" {
		httperr.BadRequest(c, "missing_params", "Barbeiro, serviço e data são obrigatórios.")
		return
	}

	if _, ok := civilDate(date); !ok {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	barberID, _, ok := uintQuery(c, "barberId")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	serviceID, _, ok := uintQuery(c, "serviceId")
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, res)
}
