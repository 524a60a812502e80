package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type Checkout struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

// PaymentGateway creates a hosted checkout for an appointment's service.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, ap *models.Appointment) (*Checkout, error)
}
