package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
)

type CreateCheckout struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
	log     *zap.Logger
}

// NewCreateCheckout accepts a nil gateway; every call then fails with
// payments_disabled.
func NewCreateCheckout(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	log *zap.Logger,
) *CreateCheckout {
	return &CreateCheckout{repo: repo, gateway: gateway, log: log}
}

func (uc *CreateCheckout) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*domain.Checkout, error) {

	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, notFoundAs(err, "appointment_not_found")
	}
	if ap.BarbershopID != barbershopID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if ap.Status == string(domain.StatusCancelled) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	checkout, err := uc.gateway.CreateCheckout(ctx, ap)
	if err != nil {
		uc.log.Error("checkout failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
		return nil, httperr.ErrBusiness("checkout_failed")
	}

	return checkout, nil
}
