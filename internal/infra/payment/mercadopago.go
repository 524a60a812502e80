package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const currencyBRL = "BRL"

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type MercadoPagoGateway struct {
	client preferenceCreator
}

// NewMercadoPagoGateway returns nil when no access token is configured; the
// checkout use case answers payments_disabled in that case.
func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoGateway{client: preference.NewClient(cfg)}, nil
}

func buildPreference(ap *models.Appointment) preference.Request {
	price, _ := ap.Service.Price.Float64()

	return preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         strconv.FormatUint(uint64(ap.ServiceID), 10),
				Title:      ap.Service.Name,
				Quantity:   1,
				UnitPrice:  price,
				CurrencyID: currencyBRL,
			},
		},
		ExternalReference: fmt.Sprintf("appointment:%d", ap.ID),
	}
}

func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, ap *models.Appointment) (*domain.Checkout, error) {
	res, err := g.client.Create(ctx, buildPreference(ap))
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &domain.Checkout{
		PreferenceID: res.ID,
		InitPoint:    res.InitPoint,
	}, nil
}

var _ domain.PaymentGateway = (*MercadoPagoGateway)(nil)
