package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type fakeCreator struct {
	got preference.Request
	err error
}

func (f *fakeCreator) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &preference.Response{ID: "pref-1", InitPoint: "https://mp.test/checkout/pref-1"}, nil
}

func appointmentWithService() *models.Appointment {
	return &models.Appointment{
		ID:        12,
		ServiceID: 3,
		Service:   models.Service{ID: 3, Name: "Corte", Price: decimal.RequireFromString("45.50")},
	}
}

func TestNewMercadoPagoGateway_Disabled(t *testing.T) {
	g, err := NewMercadoPagoGateway("")
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestCreateCheckout(t *testing.T) {
	fc := &fakeCreator{}
	g := &MercadoPagoGateway{client: fc}

	out, err := g.CreateCheckout(context.Background(), appointmentWithService())
	require.NoError(t, err)

	assert.Equal(t, "pref-1", out.PreferenceID)
	assert.Equal(t, "https://mp.test/checkout/pref-1", out.InitPoint)

	require.Len(t, fc.got.Items, 1)
	assert.Equal(t, "Corte", fc.got.Items[0].Title)
	assert.Equal(t, 45.5, fc.got.Items[0].UnitPrice)
	assert.Equal(t, "BRL", fc.got.Items[0].CurrencyID)
	assert.Equal(t, "appointment:12", fc.got.ExternalReference)
}

func TestCreateCheckout_Error(t *testing.T) {
	g := &MercadoPagoGateway{client: &fakeCreator{err: errors.New("401")}}

	_, err := g.CreateCheckout(context.Background(), appointmentWithService())
	assert.Error(t, err)
}
