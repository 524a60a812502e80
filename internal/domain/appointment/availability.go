package appointment

import "context"

type AvailabilityInput struct {
	// Optional tenant guard; zero accepts any barbershop.
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	Date         string // YYYY-MM-DD, naive, read in the barbershop timezone
}

type AvailabilityResult struct {
	BarberID  uint     `json:"barber_id"`
	ServiceID uint     `json:"service_id"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
}

// AvailabilityCache stores computed slot lists. Implementations swallow their
// own failures: a cache problem must never fail a request.
//
// Version returns a token that changes on every invalidation touching the
// barber's day. Set stores slots only while that token is still current, so a
// list computed before a booking never outlives the booking's invalidation.
type AvailabilityCache interface {
	Get(ctx context.Context, barberID uint, date string, serviceID uint) ([]string, bool)
	Version(ctx context.Context, barberID uint, date string) string
	Set(ctx context.Context, barberID uint, date string, serviceID uint, version string, slots []string)
	InvalidateDay(ctx context.Context, barberID uint, date string)
	InvalidateBarber(ctx context.Context, barberID uint)
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, uint, string, uint) ([]string, bool) { return nil, false }
func (NoopCache) Version(context.Context, uint, string) string { return "" }
func (NoopCache) Set(context.Context, uint, string, uint, string, []string) {}
func (NoopCache) InvalidateDay(context.Context, uint, string) {}
func (NoopCache) InvalidateBarber(context.Context, uint) {}
