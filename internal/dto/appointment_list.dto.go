package dto

import (
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	BarbershopID uint      `json:"barbershop_id"`
	BarberID     uint      `json:"barber_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	ClientName   string    `json:"client_name"`
	ServiceName  string    `json:"service_name"`
}

func NewAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:           ap.ID,
			BarbershopID: ap.BarbershopID,
			BarberID:     ap.BarberID,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			ClientName:   ap.Client.Name,
			ServiceName:  ap.Service.Name,
		})
	}
	return out
}
